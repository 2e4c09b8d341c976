package archiver

import "fmt"

// TargetNotFoundError means the file to archive does not exist. Nothing has
// been mutated when it is returned.
type TargetNotFoundError struct {
	Path string
}

func (e *TargetNotFoundError) Error() string {
	return fmt.Sprintf("target file %q not found", e.Path)
}

// TooSmallError means the target is below the configured minimum size gate.
// The run stops before any state mutation.
type TooSmallError struct {
	Path    string
	Size    int64
	MinSize int64
}

func (e *TooSmallError) Error() string {
	return fmt.Sprintf("target file %q smaller than minimum size (%d < %d)",
		e.Path, e.Size, e.MinSize)
}

// NotTrackedError means the tracker file or the group within it has never
// been seen. First-time targets must be archived with the explicit new-group
// intent so a mistyped path is not silently adopted.
type NotTrackedError struct {
	TrackerPath string
	Group       string
}

func (e *NotTrackedError) Error() string {
	if e.Group == "" {
		return fmt.Sprintf("tracker not found at %q; if this target has never been archived, pass the new-group flag",
			e.TrackerPath)
	}
	return fmt.Sprintf("group %q not found in tracker %q; if this target has never been archived, pass the new-group flag",
		e.Group, e.TrackerPath)
}
