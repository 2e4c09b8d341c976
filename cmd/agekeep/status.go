package main

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/agekeep/agekeep/internal/tracker"
)

var statusNow int64

var statusCmd = &cobra.Command{
	Use:   "status <tracker-file>",
	Short: "Show the archives a tracker file currently holds",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		t, err := tracker.Read(f)
		if err != nil {
			return err
		}

		now := statusNow
		if now == 0 {
			now = time.Now().Unix()
		}

		groups := make([]string, 0, len(t.Groups))
		for g := range t.Groups {
			groups = append(groups, g)
		}
		sort.Strings(groups)

		out := cmd.OutOrStdout()
		for _, g := range groups {
			fmt.Fprintln(out, g)
			section := t.Groups[g]
			for _, period := range tracker.Periods() {
				for i, slot := range section[period] {
					if !slot.Occupied {
						continue
					}
					fmt.Fprintf(out, "  %-8s copy %d  %s  (%s old)  %s\n",
						period, i+1,
						time.Unix(slot.Archive.Timestamp, 0).Format("2006-01-02 15:04:05"),
						formatAge(now-slot.Archive.Timestamp),
						slot.Archive.Filename)
				}
			}
		}
		return nil
	},
}

// formatAge renders an age in seconds using its largest sensible unit.
func formatAge(seconds int64) string {
	d := time.Duration(seconds) * time.Second
	switch {
	case d >= 24*time.Hour:
		return fmt.Sprintf("%.1fd", d.Hours()/24)
	case d >= time.Hour:
		return fmt.Sprintf("%.1fh", d.Hours())
	case d >= time.Minute:
		return fmt.Sprintf("%.1fm", d.Minutes())
	default:
		return fmt.Sprintf("%ds", seconds)
	}
}

func init() {
	statusCmd.Flags().Int64Var(&statusNow, "now", 0,
		"unix timestamp to compute ages against, for deterministic output")
	rootCmd.AddCommand(statusCmd)
}
