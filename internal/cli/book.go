package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/evcraddock/trip-planner/internal/booking"
	"github.com/evcraddock/trip-planner/internal/planner"
)

const selectPrompt = "Enter the numbers of the items to book (comma-separated), or 'done': "

func newBookCmd() *cobra.Command {
	var (
		flags  planFlags
		preset string
	)

	cmd := &cobra.Command{
		Use:   "book <destination>",
		Short: "Generate itineraries and book from them",
		Long: `Generate itineraries, list their stays and activities ranked by rating,
then choose which ones to book. Without --select the choice is read
from stdin; typing 'done' ends without booking.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBook(cmd, flags.request(args[0]), preset)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&preset, "select", "", `selection to submit without prompting, e.g. "1,3"`)

	return cmd
}

func runBook(cmd *cobra.Command, req planner.Request, preset string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}
	tp, err := newTripPlanner(cfg)
	if err != nil {
		return err
	}

	plan, err := tp.Plan(req)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	prompts := out
	if isJSON() {
		prompts = cmd.ErrOrStderr()
	} else {
		for _, it := range plan.Itineraries {
			printItinerary(out, it)
		}
		fmt.Fprintln(out, "Booking options (highest rated first):")
		if err := printOptionTable(out, plan.Options); err != nil {
			return err
		}
		fmt.Fprintln(out)
	}

	sel := booking.NewSelector(plan.Options)
	if preset != "" {
		_, err = sel.Submit(preset)
	} else {
		err = selectOptions(cmd.InOrStdin(), prompts, sel)
	}
	if err != nil {
		return err
	}

	var c *booking.Confirmation
	if len(sel.Confirmed()) > 0 {
		c, err = tp.Confirm(plan.Options, sel.Selection())
		if err != nil {
			return err
		}
	}

	if isJSON() {
		return printJSON(out, map[string]interface{}{
			"itineraries":  plan.Itineraries,
			"options":      plan.Options,
			"confirmation": c,
		})
	}

	printConfirmation(out, c)
	return nil
}

// selectOptions prompts until the user books at least one available option,
// types done, or input ends. Invalid input prompts again.
func selectOptions(in io.Reader, prompts io.Writer, sel *booking.Selector) error {
	scanner := bufio.NewScanner(in)

	for sel.State() == booking.Selecting {
		fmt.Fprint(prompts, selectPrompt)
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("reading selection: %w", err)
			}
			fmt.Fprintln(prompts)
			return nil
		}

		_, err := sel.Submit(scanner.Text())
		switch {
		case errors.Is(err, booking.ErrInvalidSelection):
			fmt.Fprintln(prompts, "Invalid input. Enter numbers separated by commas or 'done'.")
		case errors.Is(err, booking.ErrNothingConfirmed):
			fmt.Fprintln(prompts, "No valid or available items selected. Try again.")
		case err != nil:
			return err
		}
	}

	return nil
}
