package history

import "fmt"

// HistoryError reports a usage error or corrupt stored history.
type HistoryError struct {
	Msg string
}

func (e *HistoryError) Error() string { return e.Msg }

func corruptKey(s string) error {
	return &HistoryError{Msg: fmt.Sprintf("corrupt history key %q", s)}
}

// SizeLimitError reports an encoded history that exceeds the
// destination format's metadata ceiling even after compression.
// The write is abandoned whole; a truncated lineage is worse than none.
type SizeLimitError struct {
	Size   int
	Format string
	Limit  int
}

func (e *SizeLimitError) Error() string {
	return fmt.Sprintf("processing history size (compressed) = %d bytes: %s format is limited to %d",
		e.Size, e.Format, e.Limit)
}

// MissingComponentError reports a composite file whose declared
// component is absent from the filesystem. A composite is defined by
// its components, so an absent component makes its content unknown.
type MissingComponentError struct {
	Container string
	Component string
}

func (e *MissingComponentError) Error() string {
	return fmt.Sprintf("component %s of composite file %s does not exist",
		e.Component, e.Container)
}

// AmbiguousAncestorError lists every key matching an ancestor lookup
// that could not be resolved to a single file version.
type AmbiguousAncestorError struct {
	Ancestor string
	Matches  []Key
}

func (e *AmbiguousAncestorError) Error() string {
	return fmt.Sprintf("ancestor %q matches %d keys; specify a full key literal",
		e.Ancestor, len(e.Matches))
}
