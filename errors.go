package nlorm

import "fmt"

// SyntaxError reports that a generated query failed syntax validation. It
// carries the parser diagnostic and the full candidate text so that
// prompt/response drift can be debugged from the error alone.
type SyntaxError struct {
	// Candidate is the extracted reply text that failed to parse.
	Candidate string

	// Err is the underlying parser error.
	Err error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("invalid query syntax: %v\nquery: %s", e.Err, e.Candidate)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}
