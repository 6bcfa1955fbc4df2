// Command relcore is a CLI for evaluating and managing relcore
// authorization data: checking permissions, expanding subject trees,
// writing tuples, and applying the Postgres store's schema.
//
// Usage:
//
//	relcore [flags] <command>
//
// Commands that touch the database (check, expand, write, migrate) need
// --db or database.* config/env values. validate works on the schema
// file alone.
package main

func main() {
	Execute()
}
