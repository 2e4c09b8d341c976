// Package archiver runs one full archive cycle: load the tracker, plan
// retention, materialize and register a new copy if one is needed, persist
// the tracker, then remove orphaned archive files.
package archiver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/agekeep/agekeep/internal/executor"
	akfs "github.com/agekeep/agekeep/internal/fs"
	"github.com/agekeep/agekeep/internal/logging"
	"github.com/agekeep/agekeep/internal/planner"
	"github.com/agekeep/agekeep/internal/tracker"
)

// DefaultTrackerName is the tracker filename used when none is given,
// resolved inside the destination directory.
const DefaultTrackerName = ".archive-tracker"

// DefaultCopies is the default number of copies kept per period.
const DefaultCopies = 2

// Options describes one archive invocation.
type Options struct {
	// Target is the file to archive.
	Target string
	// Group is the tracker group name. Empty means the target's basename.
	// A non-empty value also switches to group mode: the target already has
	// a unique name and is registered as-is, without copying.
	Group string
	// New declares that this target/group has never been archived before.
	New bool
	// Destination is where archives live. Empty means the target's directory.
	Destination string
	// TrackerPath overrides the tracker file location.
	TrackerPath string
	// Ext is an explicit extension for archive naming (multi-part suffixes).
	Ext string
	// Copies is the number of copies to keep per period. Zero means
	// DefaultCopies.
	Copies int
	// MinSize skips the run entirely when the target is smaller, in bytes.
	MinSize int64
	// Now is the unix timestamp all planning is anchored to. Callers pass
	// time.Now().Unix() outside of tests.
	Now int64
}

// Result summarizes what one run did.
type Result struct {
	Group   string
	Wanted  []planner.Request
	Created string   // filename of the archive created this run, if any
	Deleted []string // orphaned archive files that were removed
}

// Archiver executes archive cycles against a filesystem.
type Archiver struct {
	fs  akfs.FS
	log logging.Logger
}

func New(filesystem akfs.FS, log logging.Logger) *Archiver {
	if filesystem == nil {
		filesystem = akfs.New()
	}
	return &Archiver{fs: filesystem, log: log}
}

// Run performs one load-plan-execute-persist cycle. The whole cycle holds an
// advisory lock next to the tracker file, and the tracker is persisted
// before any archive file is deleted, so a crash at any point leaves either
// the old consistent state or the new one.
func (a *Archiver) Run(ctx context.Context, opts Options) (*Result, error) {
	target, err := a.fs.Stat(opts.Target)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &TargetNotFoundError{Path: opts.Target}
		}
		return nil, fmt.Errorf("checking target: %w", err)
	}
	if opts.MinSize > 0 && target.Size < opts.MinSize {
		return nil, &TooSmallError{Path: opts.Target, Size: target.Size, MinSize: opts.MinSize}
	}

	groupMode := opts.Group != ""
	group := opts.Group
	if group == "" {
		group = filepath.Base(opts.Target)
	}
	dest := opts.Destination
	explicitDest := dest != ""
	if dest == "" {
		dest = filepath.Dir(opts.Target)
	}
	if _, err := a.fs.Stat(dest); err != nil {
		// A configured destination is created on demand; the target's own
		// directory obviously exists, so anything else is a real error.
		if !explicitDest || !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("checking destination %q: %w", dest, err)
		}
		if err := a.fs.MkdirAll(dest); err != nil {
			return nil, fmt.Errorf("creating destination %q: %w", dest, err)
		}
	}
	trackerPath := opts.TrackerPath
	if trackerPath == "" {
		trackerPath = filepath.Join(dest, DefaultTrackerName)
	}
	copies := opts.Copies
	if copies == 0 {
		copies = DefaultCopies
	}

	release, err := a.fs.Lock(trackerPath + ".lock")
	if err != nil {
		return nil, fmt.Errorf("locking tracker: %w", err)
	}
	defer func() {
		if err := release(); err != nil {
			a.log.Warn("releasing tracker lock failed", "error", err)
		}
	}()

	t, section, err := a.loadSection(trackerPath, group, opts.New)
	if err != nil {
		return nil, err
	}

	check := destChecker{fs: a.fs, dest: dest}
	planned, wanted := planner.New(check, a.log).Plan(section, planner.Policy{
		Copies: copies,
		Now:    opts.Now,
	})

	exec := executor.New(a.fs, dest, a.log)
	final, toDelete, err := exec.Execute(ctx, executor.Target{
		Path:      opts.Target,
		Ext:       opts.Ext,
		GroupMode: groupMode,
	}, wanted, section, planned, opts.Now)
	if err != nil {
		return nil, err
	}

	// Persist before deleting: a crash in between leaves extra files on
	// disk, never a tracker that references deleted ones.
	t.Groups[group] = final
	if err := a.persist(t, trackerPath); err != nil {
		return nil, err
	}

	if err := exec.DeleteFiles(toDelete); err != nil {
		return nil, err
	}

	res := &Result{Group: group, Wanted: wanted, Deleted: toDelete}
	if len(wanted) > 0 {
		if groupMode {
			res.Created = filepath.Base(opts.Target)
		} else {
			res.Created, _ = executor.ArchiveName(filepath.Base(opts.Target), opts.Ext, opts.Now)
		}
	}
	return res, nil
}

// loadSection reads the tracker and pulls out the group's section. Unknown
// trackers and groups are only created when the caller declared the
// new-group intent.
func (a *Archiver) loadSection(trackerPath, group string, isNew bool) (tracker.Tracker, tracker.Section, error) {
	f, err := os.Open(trackerPath)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return tracker.Tracker{}, nil, fmt.Errorf("opening tracker: %w", err)
		}
		if !isNew {
			return tracker.Tracker{}, nil, &NotTrackedError{TrackerPath: trackerPath}
		}
		t := tracker.New()
		t.Groups[group] = make(tracker.Section)
		return t, t.Groups[group], nil
	}
	defer f.Close()

	t, err := tracker.Read(f)
	if err != nil {
		return tracker.Tracker{}, nil, err
	}

	section, ok := t.Groups[group]
	if !ok {
		if !isNew {
			return tracker.Tracker{}, nil, &NotTrackedError{TrackerPath: trackerPath, Group: group}
		}
		section = make(tracker.Section)
		t.Groups[group] = section
	}
	return t, section, nil
}

func (a *Archiver) persist(t tracker.Tracker, trackerPath string) error {
	var buf bytes.Buffer
	if err := tracker.Write(t, &buf); err != nil {
		return err
	}
	if err := a.fs.WriteFileAtomic(trackerPath, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("persisting tracker: %w", err)
	}
	return nil
}

// destChecker resolves archive filenames against the destination directory.
type destChecker struct {
	fs   akfs.FS
	dest string
}

func (c destChecker) ArchiveExists(filename string) bool {
	_, err := c.fs.Stat(filepath.Join(c.dest, filename))
	return err == nil
}
