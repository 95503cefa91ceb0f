package section

import (
	"errors"
	"fmt"
)

// Sentinel error kinds for this package. These allow errors.Is from callers.
var (
	ErrUnknownSection   = errors.New("unknown section")
	ErrDuplicateSection = errors.New("duplicate section id")
	ErrSectionOrder     = errors.New("section anchors out of document order")
)

// UnknownSectionError is returned by NavigateTo for ids that are not in the
// current section set.
type UnknownSectionError struct {
	ID ID
}

func (e *UnknownSectionError) Error() string {
	return fmt.Sprintf("unknown section %q", string(e.ID))
}

// Is matches ErrUnknownSection.
func (e *UnknownSectionError) Is(target error) bool {
	return target == ErrUnknownSection
}
