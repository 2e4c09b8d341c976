// Package executor materializes planned archive copies and removes the files
// the plan no longer references.
package executor

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"

	akfs "github.com/agekeep/agekeep/internal/fs"
	"github.com/agekeep/agekeep/internal/logging"
	"github.com/agekeep/agekeep/internal/planner"
	"github.com/agekeep/agekeep/internal/tracker"
)

// Target describes the file being archived for one run.
type Target struct {
	Path string
	// Ext is an optional explicit extension, matched as a literal trailing
	// substring so multi-part suffixes like ".tar.gz" stay together.
	Ext string
	// GroupMode means the target already carries a unique name and is
	// registered as the archive directly, without copying or renaming.
	GroupMode bool
}

// DeletionError reports a file that exists but could not be removed. It is
// fatal: leaving files around that the tracker no longer references, or vice
// versa, are both inconsistent states.
type DeletionError struct {
	Path string
	Err  error
}

func (e *DeletionError) Error() string {
	return fmt.Sprintf("could not delete file %q: %v", e.Path, e.Err)
}

func (e *DeletionError) Unwrap() error { return e.Err }

// Executor carries out the filesystem side of a plan against one destination
// directory.
type Executor struct {
	fs   akfs.FS
	dest string
	log  logging.Logger
}

func New(filesystem akfs.FS, dest string, log logging.Logger) *Executor {
	return &Executor{fs: filesystem, dest: dest, log: log}
}

// Execute materializes one new archive if wanted is non-empty and registers
// it into every wanted slot: a single copy event can satisfy several
// periods' needs in the same run. It returns the final section and the
// filenames referenced by old but not by the final section.
//
// planned must be the planner's freshly built section; Execute folds the new
// archive into it in place.
func (e *Executor) Execute(ctx context.Context, target Target, wanted []planner.Request,
	old, planned tracker.Section, now int64) (tracker.Section, []string, error) {

	if len(wanted) > 0 {
		var name string
		if target.GroupMode {
			name = filepath.Base(target.Path)
		} else {
			derived, err := ArchiveName(filepath.Base(target.Path), target.Ext, now)
			if err != nil {
				return nil, nil, err
			}
			name = derived
			dst := filepath.Join(e.dest, name)
			e.log.Info("copying target to archive", "target", target.Path, "archive", dst)
			if err := e.fs.CopyFile(ctx, target.Path, dst); err != nil {
				return nil, nil, fmt.Errorf("archiving %s: %w", target.Path, err)
			}
		}

		archive := tracker.Archive{Timestamp: now, Filename: name}
		for _, w := range wanted {
			e.log.Debug("registering archive", "period", w.Period, "copy", w.Copy, "file", name)
			planned.SetSlot(w.Period, w.Copy, archive)
		}
	}

	return planned, FilesToDelete(old, planned), nil
}

// FilesToDelete returns the filenames referenced anywhere in old but nowhere
// in final, sorted. A filename still referenced by final is never returned.
func FilesToDelete(old, final tracker.Section) []string {
	keep := final.Filenames()

	var orphaned []string
	for name := range old.Filenames() {
		if _, ok := keep[name]; !ok {
			orphaned = append(orphaned, name)
		}
	}
	sort.Strings(orphaned)
	return orphaned
}

// DeleteFiles removes orphaned archive files from the destination. A file
// that is already gone is only a warning; failing to remove one that exists
// aborts the run.
func (e *Executor) DeleteFiles(names []string) error {
	if len(names) > 0 {
		e.log.Info("deleting old archive files", "files", names)
	}
	for _, name := range names {
		path := filepath.Join(e.dest, name)
		err := e.fs.Remove(path)
		if err == nil {
			continue
		}
		if errors.Is(err, fs.ErrNotExist) {
			e.log.Warn("old archive file already gone", "file", path)
			continue
		}
		return &DeletionError{Path: path, Err: err}
	}
	return nil
}
