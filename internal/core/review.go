// Package core defines the data structures, interfaces and error taxonomy shared
// by the submission gateway and the review client. They are kept abstract so the
// provider integration can be swapped or faked without touching the gateway.
package core

import (
	"context"
	"time"
	"unicode/utf16"
)

//go:generate go run go.uber.org/mock/mockgen -source=review.go -destination=../../mocks/review_client.go -package=mocks

// MaxPromptLength is the largest prompt, in characters, accepted for review.
const MaxPromptLength = 10_000

// ReviewRequest is the validated input of a single review exchange.
type ReviewRequest struct {
	Prompt string
}

// ReviewResult is the outcome of a successful review. It is built once per
// request and never retained.
type ReviewResult struct {
	Review       string
	Timestamp    time.Time
	PromptLength int
	ReviewLength int
}

// ReviewPromptData is the data rendered into the review prompt template.
type ReviewPromptData struct {
	Code string
}

// ReviewClient defines the contract for a component that turns source code
// into a Markdown critique by calling an external generative-language provider.
type ReviewClient interface {
	// GenerateReview returns the provider's review text verbatim. Failures are
	// reported as *Error values tagged with an ErrorKind.
	GenerateReview(ctx context.Context, prompt string) (string, error)
}

// CharCount returns the length of s in UTF-16 code units, the unit browsers
// use for string length. Characters outside the Basic Multilingual Plane,
// such as most emoji, count as two.
func CharCount(s string) int {
	n := 0
	for _, r := range s {
		if l := utf16.RuneLen(r); l > 0 {
			n += l
		} else {
			n++
		}
	}
	return n
}
