// Package model defines the core value types shared by every relcore
// component: objects, subjects, relations, and the tuples that connect
// them.
package model

import "fmt"

// ObjectType names a namespace of objects, e.g. "document" or "patient".
type ObjectType string

// Relation names a permission or role within an object type, e.g.
// "viewer" or "editor".
type Relation string

// Object identifies a single resource: a type plus an opaque ID.
type Object struct {
	Type ObjectType
	ID   string
}

// NewObject constructs an Object from a type and ID.
func NewObject(objectType ObjectType, id string) Object {
	return Object{Type: objectType, ID: id}
}

func (o Object) String() string {
	return fmt.Sprintf("%s:%s", o.Type, o.ID)
}

// Subject identifies the entity on the left side of a tuple. A subject is
// either a concrete object (SubjectRelation empty) or a userset reference
// ("document:doc1#editor", SubjectRelation == "editor").
type Subject struct {
	Object          Object
	SubjectRelation Relation
}

// NewSubject constructs a concrete (non-userset) subject.
func NewSubject(objectType ObjectType, id string) Subject {
	return Subject{Object: NewObject(objectType, id)}
}

// NewUsersetSubject constructs a subject that refers to all members of a
// relation on another object, e.g. "group:eng#member".
func NewUsersetSubject(objectType ObjectType, id string, relation Relation) Subject {
	return Subject{Object: NewObject(objectType, id), SubjectRelation: relation}
}

// IsUserset reports whether this subject references a relation on another
// object rather than naming a concrete subject directly.
func (s Subject) IsUserset() bool {
	return s.SubjectRelation != ""
}

func (s Subject) String() string {
	if s.IsUserset() {
		return fmt.Sprintf("%s#%s", s.Object, s.SubjectRelation)
	}
	return s.Object.String()
}

// Tuple is a single relationship statement: subject has relation to object.
type Tuple struct {
	Subject  Subject
	Relation Relation
	Object   Object
}

// NewTuple constructs a Tuple.
func NewTuple(subject Subject, relation Relation, object Object) Tuple {
	return Tuple{Subject: subject, Relation: relation, Object: object}
}

func (t Tuple) String() string {
	return fmt.Sprintf("%s %s %s", t.Subject, t.Relation, t.Object)
}

// Key returns a canonical string uniquely identifying this tuple, used as
// the in-memory store's map key. The Checker's visited set builds its keys
// in the same format with its own helper.
func (t Tuple) Key() string {
	return fmt.Sprintf("%s_%s_%s", t.Subject, t.Relation, t.Object)
}

// ConsistencyToken is a placeholder for Zanzibar-style read-after-write
// consistency tokens. relcore does not implement snapshot reads; the type
// exists so callers can thread a token through their own code without the
// core needing to change shape later. No component interprets its value.
type ConsistencyToken struct {
	Token string
}
