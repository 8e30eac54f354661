// Package llm abstracts the cover-letter generation providers.
package llm

import (
	"context"
	"errors"
)

// Client generates a French cover letter for one offer. cvText carries the
// extracted text of the candidate's uploaded CV and may be empty.
type Client interface {
	GenerateLetter(ctx context.Context, company, title, description, cvText string) (string, error)
}

// ErrNotConfigured is returned by the placeholder client.
var ErrNotConfigured = errors.New("LLM provider not configured")

// PlaceholderClient is the stub wired when no provider credentials are set.
type PlaceholderClient struct{}

// GenerateLetter returns ErrNotConfigured.
func (PlaceholderClient) GenerateLetter(ctx context.Context, company, title, description, cvText string) (string, error) {
	_ = ctx
	_ = company
	_ = title
	_ = description
	_ = cvText
	return "", ErrNotConfigured
}
