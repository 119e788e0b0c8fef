package main

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/llehouerou/flick/internal/errmsg"
	"github.com/llehouerou/flick/internal/state"
	"github.com/llehouerou/flick/internal/ui/playerbar"
	"github.com/llehouerou/flick/internal/ui/render"
)

func newRecentCmd() *cobra.Command {
	var limit int
	var forget string
	cmd := &cobra.Command{
		Use:   "recent",
		Short: "List movies with a saved resume position",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			mgr, err := state.Open()
			if err != nil {
				return errors.New(errmsg.Format(errmsg.OpStateOpen, err))
			}
			defer mgr.Close()

			if forget != "" {
				if err := mgr.ClearResume(forget); err != nil {
					return errors.New(errmsg.Format(errmsg.OpResumeClear, err))
				}
				return nil
			}

			resumes, err := mgr.RecentResumes(limit)
			if err != nil {
				return errors.New(errmsg.Format(errmsg.OpResumeLoad, err))
			}
			out := cmd.OutOrStdout()
			for _, r := range resumes {
				fmt.Fprintln(out, formatResume(r))
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Number of entries to list")
	cmd.Flags().StringVar(&forget, "forget", "", "Forget the position saved for this path")
	return cmd
}

func formatResume(r state.Resume) string {
	pos := playerbar.FormatSeconds(r.Position)
	if r.Length > 0 {
		pos += " / " + playerbar.FormatSeconds(r.Length)
	}
	title := r.Title
	if title == "" {
		title = r.Path
	}
	return fmt.Sprintf("%s  %s  %s  %s",
		render.Pad(pos, 17),
		render.Pad(humanize.Time(r.UpdatedAt), 16),
		render.Truncate(title, 40),
		r.Path)
}
