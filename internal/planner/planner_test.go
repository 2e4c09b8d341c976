package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agekeep/agekeep/internal/logging"
	"github.com/agekeep/agekeep/internal/tracker"
)

// fakeChecker reports every known filename as present unless listed missing.
type fakeChecker struct {
	missing map[string]bool
}

func (c fakeChecker) ArchiveExists(filename string) bool {
	return !c.missing[filename]
}

func newPlanner(missing ...string) *Planner {
	m := make(map[string]bool)
	for _, name := range missing {
		m[name] = true
	}
	return New(fakeChecker{missing: m}, logging.Nop())
}

func TestPlanColdStart(t *testing.T) {
	planned, wanted := newPlanner().Plan(tracker.Section{}, Policy{
		Periods: []tracker.Period{tracker.Hourly, tracker.Daily},
		Copies:  1,
		Now:     1_000_000,
	})

	assert.Equal(t, []Request{
		{Period: tracker.Hourly, Copy: 1},
		{Period: tracker.Daily, Copy: 1},
	}, wanted)

	for _, period := range []tracker.Period{tracker.Hourly, tracker.Daily} {
		require.Len(t, planned[period], 1)
		assert.False(t, planned[period][0].Occupied)
	}
}

func TestPlanSlotCountInvariant(t *testing.T) {
	old := tracker.Section{}
	old.SetSlot(tracker.Daily, 1, tracker.Archive{Timestamp: 999_000, Filename: "a.txt"})

	planned, _ := newPlanner().Plan(old, Policy{Copies: 3, Now: 1_000_000})

	for _, period := range tracker.Periods() {
		assert.Len(t, planned[period], 3, "period %s", period)
	}
}

func TestPlanSatisfiedAndStale(t *testing.T) {
	// One archive created at 1_000_000, planned an hour later: the hourly
	// window (1_000_000, 1_003_600] no longer contains it, the daily window
	// (917_200, 1_003_600] still does.
	old := tracker.Section{}
	old.SetSlot(tracker.Hourly, 1, tracker.Archive{Timestamp: 1_000_000, Filename: "a.txt"})
	old.SetSlot(tracker.Daily, 1, tracker.Archive{Timestamp: 1_000_000, Filename: "a.txt"})

	planned, wanted := newPlanner().Plan(old, Policy{
		Periods: []tracker.Period{tracker.Hourly, tracker.Daily},
		Copies:  1,
		Now:     1_003_600,
	})

	assert.Equal(t, []Request{{Period: tracker.Hourly, Copy: 1}}, wanted)
	assert.False(t, planned[tracker.Hourly][0].Occupied)
	assert.Equal(t, tracker.Filled(tracker.Archive{Timestamp: 1_000_000, Filename: "a.txt"}), planned[tracker.Daily][0])
}

func TestPlanWindowBoundaries(t *testing.T) {
	// The slot window is half-open: (now-L, now]. A timestamp exactly at
	// now-L belongs to the next older slot; one exactly at now belongs to
	// slot 1.
	old := tracker.Section{}
	old.SetSlot(tracker.Hourly, 1, tracker.Archive{Timestamp: 996_400, Filename: "edge.txt"}) // == now-L

	planned, wanted := newPlanner().Plan(old, Policy{
		Periods: []tracker.Period{tracker.Hourly},
		Copies:  2,
		Now:     1_000_000,
	})

	assert.Equal(t, []Request{{Period: tracker.Hourly, Copy: 1}}, wanted)
	assert.False(t, planned[tracker.Hourly][0].Occupied)
	assert.Equal(t, tracker.Filled(tracker.Archive{Timestamp: 996_400, Filename: "edge.txt"}), planned[tracker.Hourly][1])
}

func TestPlanOldestCandidateWins(t *testing.T) {
	old := tracker.Section{}
	old.SetSlot(tracker.Daily, 1, tracker.Archive{Timestamp: 999_000, Filename: "newer.txt"})
	old.SetSlot(tracker.Daily, 2, tracker.Archive{Timestamp: 950_000, Filename: "older.txt"})

	planned, wanted := newPlanner().Plan(old, Policy{
		Periods: []tracker.Period{tracker.Daily},
		Copies:  1,
		Now:     1_000_000,
	})

	assert.Empty(t, wanted)
	assert.Equal(t, tracker.Filled(tracker.Archive{Timestamp: 950_000, Filename: "older.txt"}), planned[tracker.Daily][0])
}

func TestPlanPoolsAcrossPeriods(t *testing.T) {
	// An archive referenced only under daily can still serve the hourly
	// slot when its timestamp fits the hourly window.
	old := tracker.Section{}
	old.SetSlot(tracker.Daily, 1, tracker.Archive{Timestamp: 999_500, Filename: "recent.txt"})

	planned, wanted := newPlanner().Plan(old, Policy{
		Periods: []tracker.Period{tracker.Hourly, tracker.Daily},
		Copies:  1,
		Now:     1_000_000,
	})

	assert.Empty(t, wanted)
	assert.Equal(t, tracker.Filled(tracker.Archive{Timestamp: 999_500, Filename: "recent.txt"}), planned[tracker.Hourly][0])
	assert.Equal(t, tracker.Filled(tracker.Archive{Timestamp: 999_500, Filename: "recent.txt"}), planned[tracker.Daily][0])
}

func TestPlanMissingFileSkipped(t *testing.T) {
	old := tracker.Section{}
	old.SetSlot(tracker.Daily, 1, tracker.Archive{Timestamp: 999_000, Filename: "gone.txt"})

	planned, wanted := newPlanner("gone.txt").Plan(old, Policy{
		Periods: []tracker.Period{tracker.Daily},
		Copies:  1,
		Now:     1_000_000,
	})

	assert.Equal(t, []Request{{Period: tracker.Daily, Copy: 1}}, wanted)
	assert.False(t, planned[tracker.Daily][0].Occupied)
}

func TestPlanNeverWantsHigherSlots(t *testing.T) {
	planned, wanted := newPlanner().Plan(tracker.Section{}, Policy{Copies: 2, Now: 1_000_000})

	for _, w := range wanted {
		assert.Equal(t, 1, w.Copy, "period %s", w.Period)
	}
	assert.Len(t, wanted, len(tracker.Periods()))
	for _, period := range tracker.Periods() {
		assert.Len(t, planned[period], 2)
	}
}

func TestPlanGapAtSlotOneOnly(t *testing.T) {
	// Daily copy 2 is satisfiable but copy 1 is not: only copy 1 may be
	// requested, and the old archive keeps serving copy 2.
	old := tracker.Section{}
	old.SetSlot(tracker.Daily, 1, tracker.Archive{Timestamp: 900_000, Filename: "aging.txt"}) // 100_000s old

	planned, wanted := newPlanner().Plan(old, Policy{
		Periods: []tracker.Period{tracker.Daily},
		Copies:  2,
		Now:     1_000_000,
	})

	assert.Equal(t, []Request{{Period: tracker.Daily, Copy: 1}}, wanted)
	assert.False(t, planned[tracker.Daily][0].Occupied)
	assert.Equal(t, tracker.Filled(tracker.Archive{Timestamp: 900_000, Filename: "aging.txt"}), planned[tracker.Daily][1])
}

func TestPlanDoesNotMutateOrAliasInput(t *testing.T) {
	old := tracker.Section{}
	old.SetSlot(tracker.Daily, 1, tracker.Archive{Timestamp: 999_000, Filename: "a.txt"})
	old.SetSlot(tracker.Daily, 2, tracker.Archive{Timestamp: 950_000, Filename: "b.txt"})

	planned, _ := newPlanner().Plan(old, Policy{
		Periods: []tracker.Period{tracker.Daily},
		Copies:  2,
		Now:     1_000_000,
	})

	planned[tracker.Daily][0] = tracker.Filled(tracker.Archive{Timestamp: 1, Filename: "clobbered.txt"})
	planned[tracker.Daily][1] = tracker.Slot{}

	assert.Equal(t, tracker.Filled(tracker.Archive{Timestamp: 999_000, Filename: "a.txt"}), old[tracker.Daily][0])
	assert.Equal(t, tracker.Filled(tracker.Archive{Timestamp: 950_000, Filename: "b.txt"}), old[tracker.Daily][1])
}

func TestPlanForeverAlwaysSatisfiedOnceCreated(t *testing.T) {
	old := tracker.Section{}
	old.SetSlot(tracker.Forever, 1, tracker.Archive{Timestamp: 2, Filename: "ancient.txt"})

	planned, wanted := newPlanner().Plan(old, Policy{
		Periods: []tracker.Period{tracker.Forever},
		Copies:  1,
		Now:     1_000_000_000,
	})

	assert.Empty(t, wanted)
	assert.Equal(t, tracker.Filled(tracker.Archive{Timestamp: 2, Filename: "ancient.txt"}), planned[tracker.Forever][0])
}
