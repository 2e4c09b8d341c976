// Package tracker holds the persistent retention state: which archive copies
// exist for each tracked group, bucketed by period and copy number, plus the
// text format they are stored in between runs.
package tracker

// Archive is one timestamped reference to a physical archive file. Filename
// is relative to the destination directory, which is supplied per invocation
// and never persisted. The same file may be referenced from several periods.
type Archive struct {
	Timestamp int64
	Filename  string
}

// Slot is one numbered retention position within a period. It is either
// empty or holds exactly one archive reference.
type Slot struct {
	Occupied bool
	Archive  Archive
}

// Filled returns an occupied slot holding a.
func Filled(a Archive) Slot {
	return Slot{Occupied: true, Archive: a}
}

// Section maps each period to its slot list, indexed from copy 1 at position
// 0. Lists are dense: a gap between occupied copies is an explicit empty
// slot, never a missing element.
type Section map[Period][]Slot

// SetSlot places a at the given 1-based copy position, growing the slot list
// with empty slots as needed.
func (s Section) SetSlot(p Period, copy int, a Archive) {
	slots := s[p]
	for len(slots) < copy {
		slots = append(slots, Slot{})
	}
	slots[copy-1] = Filled(a)
	s[p] = slots
}

// Filenames returns the set of archive filenames referenced anywhere in the
// section.
func (s Section) Filenames() map[string]struct{} {
	files := make(map[string]struct{})
	for _, slots := range s {
		for _, slot := range slots {
			if slot.Occupied {
				files[slot.Archive.Filename] = struct{}{}
			}
		}
	}
	return files
}

// Tracker is the whole persisted state: one section per tracked group.
type Tracker struct {
	Groups map[string]Section
}

// New returns an empty tracker.
func New() Tracker {
	return Tracker{Groups: make(map[string]Section)}
}
