package engine

import "context"

// Decision lets a caller force Check's outcome without consulting the
// store, for admin tooling and tests that need to bypass authorization
// entirely.
type Decision int

const (
	// DecisionUnset means no override is active; Check runs normally.
	DecisionUnset Decision = iota
	DecisionAllow
	DecisionDeny
)

type decisionContextKey struct{}

// WithDecisionContext attaches a per-request Decision override to ctx.
// It only takes effect if the Engine was constructed WithContextDecision;
// otherwise it is ignored, so a caller can't silently bypass
// authorization just by setting a context value the Engine never opted
// into honoring.
func WithDecisionContext(ctx context.Context, d Decision) context.Context {
	return context.WithValue(ctx, decisionContextKey{}, d)
}

// GetDecisionContext reads a Decision previously attached by
// WithDecisionContext.
func GetDecisionContext(ctx context.Context) (Decision, bool) {
	d, ok := ctx.Value(decisionContextKey{}).(Decision)
	return d, ok
}
