package cli

import (
	"github.com/spf13/cobra"

	"github.com/evcraddock/trip-planner/internal/itinerary"
)

func newHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List saved itineraries",
		Long:  "List saved itineraries, newest first.",
		Args:  cobra.NoArgs,
		RunE:  runHistory,
	}
}

func runHistory(cmd *cobra.Command, args []string) error {
	repo, release, err := newSavedStore()
	if err != nil {
		return err
	}
	defer release()

	saved, err := repo.List()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if isJSON() {
		if saved == nil {
			saved = make([]*itinerary.Saved, 0)
		}
		return printJSON(out, saved)
	}
	return printSavedTable(out, saved)
}
