package llm

import "context"

// Purpose labels a request with the feature that made it. It is stored on
// every request event and groups `mastermind llm usage`.
type Purpose string

const (
	PurposeStudyPlan Purpose = "study-plan"
	PurposeQuiz      Purpose = "quiz"
	PurposeUnknown   Purpose = "unknown"
)

type purposeKey struct{}

// WithPurpose tags ctx so LoggingProvider can attribute the request.
// An empty purpose leaves ctx untouched.
func WithPurpose(ctx context.Context, p Purpose) context.Context {
	if p == "" {
		return ctx
	}
	return context.WithValue(ctx, purposeKey{}, p)
}

// PurposeFrom returns the purpose set by WithPurpose, or PurposeUnknown.
func PurposeFrom(ctx context.Context) Purpose {
	if p, ok := ctx.Value(purposeKey{}).(Purpose); ok {
		return p
	}
	return PurposeUnknown
}
