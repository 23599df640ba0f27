package llm

import (
	"context"
	"fmt"
)

// Purpose says what a request was for. It is stored with every LLM event
// and drives the per-purpose usage table.
type Purpose string

const (
	PurposeAnalysis Purpose = "analysis"
	PurposeBrief    Purpose = "brief"
	PurposeUnknown  Purpose = "unknown"
)

// Purposes lists the purposes the application sends.
func Purposes() []Purpose { return []Purpose{PurposeAnalysis, PurposeBrief} }

// ParsePurpose accepts one of Purposes.
func ParsePurpose(s string) (Purpose, error) {
	for _, p := range Purposes() {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown purpose %q (want %s or %s)", s, PurposeAnalysis, PurposeBrief)
}

type purposeKey struct{}

// WithPurpose tags ctx so the logging decorator can label the request.
func WithPurpose(ctx context.Context, p Purpose) context.Context {
	return context.WithValue(ctx, purposeKey{}, p)
}

// PurposeFrom returns the tag set by WithPurpose, or PurposeUnknown.
func PurposeFrom(ctx context.Context) Purpose {
	if p, ok := ctx.Value(purposeKey{}).(Purpose); ok {
		return p
	}
	return PurposeUnknown
}
