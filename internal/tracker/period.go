package tracker

import "sort"

// Period is a named retention bucket with a fixed window length.
type Period int

const (
	Hourly Period = iota
	Daily
	Weekly
	Monthly
	Yearly
	Forever
)

const (
	monthSeconds = int64(60 * 60 * 24 * 365.2425 / 12)
	yearSeconds  = int64(60 * 60 * 24 * 365.2425)
)

var periodNames = map[Period]string{
	Hourly:  "hourly",
	Daily:   "daily",
	Weekly:  "weekly",
	Monthly: "monthly",
	Yearly:  "yearly",
	Forever: "forever",
}

var periodsByName = map[string]Period{
	"hourly":  Hourly,
	"daily":   Daily,
	"weekly":  Weekly,
	"monthly": Monthly,
	"yearly":  Yearly,
	"forever": Forever,
}

func (p Period) String() string {
	name, ok := periodNames[p]
	if !ok {
		return "unknown"
	}
	return name
}

// ParsePeriod maps a period token from the tracker file to its Period.
func ParsePeriod(name string) (Period, bool) {
	p, ok := periodsByName[name]
	return p, ok
}

// Seconds returns the length of one retention window for the period.
// Forever has no fixed length: its window reaches back to the epoch, so any
// archive created after second 1 satisfies it. That makes its length depend
// on the clock anchor, which is why now is a parameter here.
func (p Period) Seconds(now int64) int64 {
	switch p {
	case Hourly:
		return 60 * 60
	case Daily:
		return 24 * 60 * 60
	case Weekly:
		return 7 * 24 * 60 * 60
	case Monthly:
		return monthSeconds
	case Yearly:
		return yearSeconds
	case Forever:
		return now - 1
	}
	return 0
}

// rank orders periods by window length. Forever always sorts last since its
// window outlasts every fixed period for any realistic clock.
func (p Period) rank() int64 {
	if p == Forever {
		return int64(1)<<62 - 1
	}
	return p.Seconds(0)
}

// Periods returns every known period in ascending window-length order.
func Periods() []Period {
	ps := []Period{Hourly, Daily, Weekly, Monthly, Yearly, Forever}
	sort.Slice(ps, func(i, j int) bool { return ps[i].rank() < ps[j].rank() })
	return ps
}
