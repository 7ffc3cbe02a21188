package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a saved itinerary",
		Long:  "Show a saved itinerary day by day, with its note.",
		Args:  cobra.ExactArgs(1),
		RunE:  runShow,
	}
}

func runShow(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid itinerary ID: %s", args[0])
	}

	repo, release, err := newSavedStore()
	if err != nil {
		return err
	}
	defer release()

	saved, err := repo.GetByID(id)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if isJSON() {
		return printJSON(out, saved)
	}

	fmt.Fprintf(out, "Saved #%d on %s\n", saved.ID, saved.CreatedAt.Format("2006-01-02 15:04"))
	if saved.Note != "" {
		fmt.Fprintf(out, "Note: %s\n", saved.Note)
	}
	fmt.Fprintln(out)
	printItinerary(out, saved.Itinerary)
	return nil
}
