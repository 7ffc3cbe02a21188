package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evcraddock/trip-planner/internal/client"
	"github.com/evcraddock/trip-planner/internal/config"
	"github.com/evcraddock/trip-planner/internal/itinerary"
	"github.com/evcraddock/trip-planner/internal/planner"
)

// planFlags holds the flags shared by generate and book.
type planFlags struct {
	budget float64
	days   int
	count  int
	single bool
}

func (f *planFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.budget, "budget", 0, "total trip budget in dollars (0 means no budget)")
	cmd.Flags().IntVar(&f.days, "days", planner.DefaultDays, "number of days")
	cmd.Flags().IntVar(&f.count, "count", planner.DefaultCount, "number of itineraries to generate")
	cmd.Flags().BoolVar(&f.single, "single", false, "generate one itinerary with a random ID")
}

func (f *planFlags) request(destination string) planner.Request {
	return planner.Request{
		Destination: destination,
		Budget:      f.budget,
		Days:        f.days,
		Count:       f.count,
		Single:      f.single,
	}
}

func newGenerateCmd() *cobra.Command {
	var (
		flags planFlags
		save  bool
		note  string
	)

	cmd := &cobra.Command{
		Use:   "generate <destination>",
		Short: "Generate random itineraries",
		Long:  "Generate random day-by-day itineraries for a destination, optionally within a budget.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, flags.request(args[0]), save, note)
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&save, "save", false, "save the generated itineraries")
	cmd.Flags().StringVar(&note, "note", "", "note stored with saved itineraries")

	return cmd
}

func runGenerate(cmd *cobra.Command, req planner.Request, save bool, note string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}

	var (
		plan     *planner.Plan
		savedIDs []int64
	)
	if cfg.ServerURL != "" {
		resp, err := client.New(cfg.ServerURL).Plan(req, save, note)
		if err != nil {
			return err
		}
		plan, savedIDs = &resp.Plan, resp.SavedIDs
	} else {
		plan, savedIDs, err = planLocally(cfg, req, save, note)
		if err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	if isJSON() {
		return printJSON(out, map[string]interface{}{
			"itineraries": plan.Itineraries,
			"saved_ids":   savedIDs,
		})
	}

	for _, it := range plan.Itineraries {
		printItinerary(out, it)
	}
	for i, id := range savedIDs {
		fmt.Fprintf(out, "Saved %s as #%d.\n", plan.Itineraries[i].ID, id)
	}
	return nil
}

// planLocally plans against the local catalog and saves to the local database.
func planLocally(cfg config.Config, req planner.Request, save bool, note string) (*planner.Plan, []int64, error) {
	svc, err := newPlanner(cfg)
	if err != nil {
		return nil, nil, err
	}

	plan, err := svc.Plan(req)
	if err != nil {
		return nil, nil, err
	}
	if !save {
		return plan, nil, nil
	}

	database, err := openDB(cfg)
	if err != nil {
		return nil, nil, err
	}
	defer closeDB(database)

	repo := itinerary.NewRepository(database)
	savedIDs := make([]int64, 0, len(plan.Itineraries))
	for _, it := range plan.Itineraries {
		s, err := repo.Save(it, note)
		if err != nil {
			return nil, nil, err
		}
		savedIDs = append(savedIDs, s.ID)
	}
	return plan, savedIDs, nil
}
