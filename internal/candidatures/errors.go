package candidatures

import "errors"

var (
	// ErrNotFound indicates the candidature id does not resolve.
	ErrNotFound = errors.New("candidature not found")

	// ErrInvalidInput indicates validation or bad input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrDuplicateURL indicates the unique-URL constraint was violated.
	ErrDuplicateURL = errors.New("candidature url already exists")

	// ErrLetterMissing indicates a send was attempted before a letter exists.
	ErrLetterMissing = errors.New("cover letter not generated yet")
)
