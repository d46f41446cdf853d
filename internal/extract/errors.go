package extract

import "fmt"

// ExtractionError means the input as a whole could not be read. It is
// terminal for a run; per-image failures are handled inline instead.
type ExtractionError struct {
	Path string
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("cannot extract from '%s': %v", e.Path, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }
