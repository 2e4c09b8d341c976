package tracker

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
)

// Write serializes a tracker in its text format: one version header, then
// each group's section with periods in ascending window-length order. Only
// occupied slots produce lines; positions are recorded as explicit copy
// numbers so sparse lists survive a round trip. Groups are written in sorted
// order to keep the persisted form deterministic.
func Write(t Tracker, w io.Writer) error {
	bw := bufio.NewWriter(w)

	version := strconv.FormatFloat(FormatVersion, 'f', 1, 64)
	if _, err := fmt.Fprintf(bw, ">version=%s\n", version); err != nil {
		return fmt.Errorf("writing tracker: %w", err)
	}

	groups := make([]string, 0, len(t.Groups))
	for group := range t.Groups {
		groups = append(groups, group)
	}
	sort.Strings(groups)

	for _, group := range groups {
		if _, err := fmt.Fprintln(bw, group); err != nil {
			return fmt.Errorf("writing tracker: %w", err)
		}
		section := t.Groups[group]
		for _, period := range Periods() {
			for i, slot := range section[period] {
				if !slot.Occupied {
					continue
				}
				_, err := fmt.Fprintf(bw, "\t%s\t%d\t%d\t%s\n",
					period, i+1, slot.Archive.Timestamp, slot.Archive.Filename)
				if err != nil {
					return fmt.Errorf("writing tracker: %w", err)
				}
			}
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing tracker: %w", err)
	}
	return nil
}
