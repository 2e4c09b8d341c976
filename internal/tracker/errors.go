package tracker

import "fmt"

// FormatError reports a malformed line in a tracker file. It is not
// recoverable: a tracker that cannot be parsed in full must not be acted on.
type FormatError struct {
	Line   int
	Text   string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("tracker format error on line %d (%q): %s", e.Line, e.Text, e.Reason)
}

// VersionError reports a tracker file whose declared format version is newer
// than this implementation writes, or a whole major step or more behind it.
type VersionError struct {
	Declared float64
	Expected float64
}

func (e *VersionError) Error() string {
	return fmt.Sprintf("tracker file is version %g, which is incompatible with the current version %g",
		e.Declared, e.Expected)
}
