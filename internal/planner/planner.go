// Package planner decides which existing archives satisfy which retention
// slots and which slots need a freshly created archive.
package planner

import (
	"sort"

	"github.com/agekeep/agekeep/internal/logging"
	"github.com/agekeep/agekeep/internal/tracker"
)

// Checker answers whether an archive file is still present in the
// destination directory. Referenced-but-missing files are skipped as
// candidates, never fatal.
type Checker interface {
	ArchiveExists(filename string) bool
}

// Policy is the retention policy for one planning run. It is supplied per
// invocation and never persisted.
type Policy struct {
	// Periods to plan, in order. Nil means every known period.
	Periods []tracker.Period
	// Copies is the required number of slots per period.
	Copies int
	// Now is the clock anchor for all window math. Always explicit so runs
	// are reproducible.
	Now int64
}

// Request identifies one slot that needs a freshly created archive.
type Request struct {
	Period tracker.Period
	Copy   int
}

// Planner computes retention plans against a filesystem checker.
type Planner struct {
	check Checker
	log   logging.Logger
}

func New(check Checker, log logging.Logger) *Planner {
	return &Planner{check: check, log: log}
}

// Plan computes the new section and the wanted list for one run.
//
// For each period of length L, slot i covers the half-open age window
// (now-i*L, now-(i-1)*L]: slot 1 is the most recent window and higher slots
// reach further back. Every archive referenced anywhere in old, regardless
// of period, is a candidate for every slot whose window contains its
// timestamp. When several qualify the oldest wins, so the slot keeps its
// longest-lived satisfying copy and stays valid as long as possible.
//
// An empty slot is requested only at copy 1. Creating a fresh archive for a
// higher slot would put a younger archive in an older generation; gaps
// beyond copy 1 self-heal as new copies age through the windows.
//
// old is never mutated and the returned section shares no slot lists with it.
func (p *Planner) Plan(old tracker.Section, pol Policy) (tracker.Section, []Request) {
	periods := pol.Periods
	if periods == nil {
		periods = tracker.Periods()
	}

	pool := poolArchives(old)

	planned := make(tracker.Section, len(periods))
	var wanted []Request

	for _, period := range periods {
		length := period.Seconds(pol.Now)
		slots := make([]tracker.Slot, 0, pol.Copies)

		for i := 1; i <= pol.Copies; i++ {
			windowStart := pol.Now - int64(i)*length
			windowEnd := pol.Now - int64(i-1)*length

			var candidates []tracker.Archive
			for _, a := range pool {
				if a.Timestamp <= windowStart || a.Timestamp > windowEnd {
					continue
				}
				if !p.check.ArchiveExists(a.Filename) {
					p.log.Warn("archive file is missing",
						"period", period, "file", a.Filename)
					continue
				}
				candidates = append(candidates, a)
			}

			if len(candidates) == 0 {
				p.log.Debug("no existing archive can serve slot",
					"period", period, "copy", i)
				if i == 1 {
					wanted = append(wanted, Request{Period: period, Copy: 1})
				}
				slots = append(slots, tracker.Slot{})
				continue
			}

			sort.Slice(candidates, func(x, y int) bool {
				if candidates[x].Timestamp != candidates[y].Timestamp {
					return candidates[x].Timestamp < candidates[y].Timestamp
				}
				return candidates[x].Filename < candidates[y].Filename
			})
			slots = append(slots, tracker.Filled(candidates[0]))
		}

		planned[period] = slots
	}

	return planned, wanted
}

// poolArchives gathers every archive referenced in any period of the section
// into one deduplicated list. An archive referenced from several periods
// counts once.
func poolArchives(s tracker.Section) []tracker.Archive {
	var pool []tracker.Archive
	seen := make(map[tracker.Archive]struct{})
	for _, period := range tracker.Periods() {
		for _, slot := range s[period] {
			if !slot.Occupied {
				continue
			}
			if _, ok := seen[slot.Archive]; ok {
				continue
			}
			seen[slot.Archive] = struct{}{}
			pool = append(pool, slot.Archive)
		}
	}
	return pool
}
