package walker

import (
	"errors"
	"fmt"
)

var errNotDir = errors.New("not a directory")

type invalidPatternError struct {
	pattern string
}

func (e *invalidPatternError) Error() string {
	return fmt.Sprintf("invalid exclude pattern %q", e.pattern)
}
