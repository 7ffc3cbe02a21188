package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/evcraddock/trip-planner/internal/catalog"
	"github.com/evcraddock/trip-planner/internal/client"
	"github.com/evcraddock/trip-planner/internal/config"
)

func newDestinationsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "destinations [name]",
		Short: "List catalog destinations",
		Long: `List every destination in the catalog with how many activities, stays
and food options it has. With a name, show that destination's items.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runDestinations,
	}
}

type destinationRow struct {
	Name           string `json:"name"`
	Activities     int    `json:"activities"`
	Accommodations int    `json:"accommodations"`
	Food           int    `json:"food"`
	Complete       bool   `json:"complete"`
}

func runDestinations(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}
	if len(args) == 1 {
		return runDestination(cmd, cfg, args[0])
	}

	var rows []destinationRow
	if cfg.ServerURL != "" {
		rows, err = remoteDestinations(cfg.ServerURL)
	} else {
		rows, err = localDestinations(cfg)
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if isJSON() {
		return printJSON(out, rows)
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(w, "DESTINATION\tACTIVITIES\tSTAYS\tFOOD"); err != nil {
		return fmt.Errorf("writing table header: %w", err)
	}
	for _, r := range rows {
		name := r.Name
		if !r.Complete {
			name += " (incomplete)"
		}
		if _, err := fmt.Fprintf(w, "%s\t%d\t%d\t%d\n", name, r.Activities, r.Accommodations, r.Food); err != nil {
			return fmt.Errorf("writing table row: %w", err)
		}
	}
	return w.Flush()
}

func localDestinations(cfg config.Config) ([]destinationRow, error) {
	svc, err := newPlanner(cfg)
	if err != nil {
		return nil, err
	}

	store := svc.Catalog()
	rows := make([]destinationRow, 0)
	for _, name := range store.Destinations() {
		d, err := store.Lookup(name)
		if err != nil {
			return nil, err
		}
		rows = append(rows, destinationRow{
			Name:           name,
			Activities:     len(d.Activities),
			Accommodations: len(d.Accommodations),
			Food:           len(d.Food),
			Complete:       d.Complete(),
		})
	}
	return rows, nil
}

func remoteDestinations(serverURL string) ([]destinationRow, error) {
	summaries, err := client.New(serverURL).ListDestinations()
	if err != nil {
		return nil, err
	}

	rows := make([]destinationRow, 0, len(summaries))
	for _, d := range summaries {
		rows = append(rows, destinationRow{
			Name:           d.Name,
			Activities:     d.Activities,
			Accommodations: d.Accommodations,
			Food:           d.Food,
			Complete:       d.Activities > 0 && d.Accommodations > 0 && d.Food > 0,
		})
	}
	return rows, nil
}

// runDestination shows the catalog entry for one destination.
func runDestination(cmd *cobra.Command, cfg config.Config, name string) error {
	var (
		d   *catalog.Destination
		err error
	)
	if cfg.ServerURL != "" {
		d, err = client.New(cfg.ServerURL).GetDestination(name)
	} else {
		var store *catalog.Store
		store, err = catalog.Open(cfg.CatalogPath)
		if err == nil {
			d, err = store.Lookup(name)
		}
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if isJSON() {
		return printJSON(out, d)
	}
	return printDestination(out, catalog.Normalize(name), d)
}
