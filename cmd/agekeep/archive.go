package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/agekeep/agekeep/internal/archiver"
)

var archiveOpts struct {
	group       string
	isNew       bool
	destination string
	tracker     string
	ext         string
	copies      int
	minSize     int64
	now         int64
}

var archiveCmd = &cobra.Command{
	Use:   "archive <file>",
	Short: "Run one archive cycle for a target file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		now := archiveOpts.now
		if now == 0 {
			now = time.Now().Unix()
		}

		log := newLogger()
		res, err := archiver.New(nil, log).Run(cmd.Context(), archiver.Options{
			Target:      args[0],
			Group:       archiveOpts.group,
			New:         archiveOpts.isNew,
			Destination: archiveOpts.destination,
			TrackerPath: archiveOpts.tracker,
			Ext:         archiveOpts.ext,
			Copies:      archiveOpts.copies,
			MinSize:     archiveOpts.minSize,
			Now:         now,
		})
		if err != nil {
			return err
		}

		if res.Created != "" {
			slots := make([]string, 0, len(res.Wanted))
			for _, w := range res.Wanted {
				slots = append(slots, fmt.Sprintf("%s copy %d", w.Period, w.Copy))
			}
			log.Info("saved new archive", "file", res.Created, "slots", slots)
		}
		return nil
	},
}

func init() {
	f := archiveCmd.Flags()
	f.StringVarP(&archiveOpts.group, "group", "g", "",
		"track the file under this group name; use when the filename varies between runs. "+
			"Files are not renamed when archived, so they must have unique names")
	f.BoolVarP(&archiveOpts.isNew, "new", "n", false,
		"this is a new file that has not been archived before")
	f.StringVarP(&archiveOpts.destination, "destination", "d", "",
		"directory the archive is stored in (default: the target's directory)")
	f.StringVarP(&archiveOpts.tracker, "tracker", "t", "",
		"tracker file path (default: "+archiver.DefaultTrackerName+" in the destination)")
	f.StringVarP(&archiveOpts.ext, "ext", "e", "",
		"explicit file extension, so archives of example.tar.gz are named like "+
			"example-2017-03-23-121700.tar.gz instead of example.tar-2017-03-23-121700.gz")
	f.IntVarP(&archiveOpts.copies, "copies", "c", archiver.DefaultCopies,
		"how many copies to keep per time period")
	f.Int64VarP(&archiveOpts.minSize, "min-size", "m", 0,
		"skip the run if the target file is smaller than this many bytes")
	f.Int64Var(&archiveOpts.now, "now", 0,
		"unix timestamp to use as \"now\", for deterministic runs")

	rootCmd.AddCommand(archiveCmd)
}
