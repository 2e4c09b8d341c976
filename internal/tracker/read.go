package tracker

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// FormatVersion is the tracker format version this implementation reads and
// writes.
const FormatVersion = 2.0

// maxCopyNumber is a sanity bound on copy numbers in data lines. Anything
// larger is a corrupt file, not a plausible retention policy.
const maxCopyNumber = 2000

const versionPrefix = ">version="

// Read parses a tracker stream into its in-memory form.
//
// The format is line oriented and tab delimited:
//
//	>version=2.0
//	some-file.tar.gz
//		daily	1	1380426100	some-file-2013-09-28.tar.gz
//		weekly	2	1376366288	some-file-2013-08-12.tar.gz
//
// A non-indented line starts a new group section; indented lines are data
// lines for the current group. Slot positions come from each line's explicit
// copy number, so sections may list copies sparsely and in any order.
func Read(r io.Reader) (Tracker, error) {
	t := New()
	versionSeen := false
	var group string
	lineNum := 0

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		raw := scanner.Text()
		lineNum++

		header := strings.HasPrefix(raw, ">")
		sectionHeader := !strings.HasPrefix(raw, "\t")

		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if header {
			if strings.HasPrefix(line, versionPrefix) {
				declared, err := strconv.ParseFloat(line[len(versionPrefix):], 64)
				if err != nil {
					return Tracker{}, &FormatError{lineNum, raw, "invalid version number"}
				}
				if declared > FormatVersion || FormatVersion-declared >= 1.0 {
					return Tracker{}, &VersionError{Declared: declared, Expected: FormatVersion}
				}
				versionSeen = true
			}
			continue
		}

		if !versionSeen {
			return Tracker{}, &FormatError{lineNum, raw, "no version specified in tracker file"}
		}

		if sectionHeader {
			group = line
			if _, ok := t.Groups[group]; !ok {
				t.Groups[group] = make(Section)
			}
			continue
		}

		if group == "" {
			return Tracker{}, &FormatError{lineNum, raw, "data line before any group header"}
		}

		fields := strings.Split(line, "\t")
		if len(fields) != 4 {
			return Tracker{}, &FormatError{lineNum, raw,
				fmt.Sprintf("wrong number of fields (%d)", len(fields))}
		}

		period, ok := ParsePeriod(strings.ToLower(fields[0]))
		if !ok {
			return Tracker{}, &FormatError{lineNum, raw,
				fmt.Sprintf("invalid period %q", fields[0])}
		}
		copyNum, err := strconv.Atoi(fields[1])
		if err != nil {
			return Tracker{}, &FormatError{lineNum, raw,
				fmt.Sprintf("invalid copy number %q", fields[1])}
		}
		if copyNum < 1 || copyNum > maxCopyNumber {
			return Tracker{}, &FormatError{lineNum, raw,
				fmt.Sprintf("copy number out of range (%d)", copyNum)}
		}
		timestamp, err := strconv.ParseInt(fields[2], 10, 64)
		if err != nil {
			return Tracker{}, &FormatError{lineNum, raw,
				fmt.Sprintf("invalid timestamp %q", fields[2])}
		}

		t.Groups[group].SetSlot(period, copyNum, Archive{
			Timestamp: timestamp,
			Filename:  fields[3],
		})
	}
	if err := scanner.Err(); err != nil {
		return Tracker{}, fmt.Errorf("reading tracker: %w", err)
	}

	return t, nil
}
