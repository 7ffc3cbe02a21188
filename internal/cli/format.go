package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/evcraddock/trip-planner/internal/booking"
	"github.com/evcraddock/trip-planner/internal/catalog"
	"github.com/evcraddock/trip-planner/internal/itinerary"
)

// printJSON marshals v as indented JSON and writes it to out.
func printJSON(out io.Writer, v interface{}) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printItinerary prints one itinerary day by day.
func printItinerary(out io.Writer, it *itinerary.Itinerary) {
	fmt.Fprintf(out, "--- Itinerary %s: %s, %d days", it.ID, it.Destination, it.NumDays)
	if it.Budget > 0 {
		fmt.Fprintf(out, ", budget %s", formatMoney(it.Budget))
	}
	fmt.Fprintln(out, " ---")

	for _, day := range it.Days {
		fmt.Fprintf(out, "\nDay %d\n", day.Day)
		fmt.Fprintf(out, "  Stay:  %s (rating %s, %s/night)\n",
			day.Accommodation.Name, formatRating(day.Accommodation.Rating), formatMoney(day.Accommodation.PricePerNight))
		fmt.Fprintln(out, "  Activities:")
		for _, a := range day.Activities {
			fmt.Fprintf(out, "    - %s (rating %s, %s)\n", a.Name, formatRating(a.Rating), formatMoney(a.Cost))
		}
		fmt.Fprintln(out, "  Food:")
		for _, f := range day.Food {
			fmt.Fprintf(out, "    - %s (rating %s, avg %s)\n", f.Name, formatRating(f.Rating), formatMoney(f.AvgCost))
		}
	}
	fmt.Fprintln(out)
}

// printDestination prints every catalog item of one destination as a table.
func printDestination(out io.Writer, name string, d *catalog.Destination) error {
	fmt.Fprintf(out, "%s\n\n", name)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(w, "KIND\tNAME\tRATING\tCOST"); err != nil {
		return fmt.Errorf("writing table header: %w", err)
	}

	rows := make([][4]string, 0, len(d.Activities)+len(d.Accommodations)+len(d.Food))
	for _, a := range d.Accommodations {
		rows = append(rows, [4]string{"stay", a.Name, formatRating(a.Rating), formatMoney(a.PricePerNight) + "/night"})
	}
	for _, a := range d.Activities {
		rows = append(rows, [4]string{"activity", a.Name, formatRating(a.Rating), formatMoney(a.Cost)})
	}
	for _, f := range d.Food {
		rows = append(rows, [4]string{"food", f.Name, formatRating(f.Rating), formatMoney(f.AvgCost)})
	}

	for _, r := range rows {
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r[0], truncate(r[1], 40), r[2], r[3]); err != nil {
			return fmt.Errorf("writing table row: %w", err)
		}
	}
	return w.Flush()
}

// printOptionTable prints ranked booking options with their 1-based selection numbers.
func printOptionTable(out io.Writer, options []booking.Option) error {
	if len(options) == 0 {
		fmt.Fprintln(out, "No booking options.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(w, "#\tITINERARY\tTYPE\tNAME\tRATING\tPRICE\tAVAILABLE"); err != nil {
		return fmt.Errorf("writing table header: %w", err)
	}
	if _, err := fmt.Fprintln(w, "-\t---------\t----\t----\t------\t-----\t---------"); err != nil {
		return fmt.Errorf("writing table separator: %w", err)
	}

	for i, o := range options {
		available := "yes"
		if !o.Available {
			available = "no"
		}
		if _, err := fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			i+1, o.ItineraryID, o.Type.Label(), truncate(o.Name, 40),
			o.RatingLabel(), formatMoney(o.Price), available); err != nil {
			return fmt.Errorf("writing table row: %w", err)
		}
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing table: %w", err)
	}
	return nil
}

// printConfirmation prints the booked items under their confirmation reference.
func printConfirmation(out io.Writer, c *booking.Confirmation) {
	if c == nil || len(c.Bookings) == 0 {
		fmt.Fprintln(out, "Nothing booked.")
		return
	}

	fmt.Fprintf(out, "Booking confirmed (ref %s):\n", c.Reference)
	var total float64
	for _, o := range c.Bookings {
		fmt.Fprintf(out, "  - %s: %s (rating %s, %s)\n", o.Type.Label(), o.Name, o.RatingLabel(), formatMoney(o.Price))
		total += o.Price
	}
	fmt.Fprintf(out, "Total: %s\n", formatMoney(total))
}

// printSavedTable prints saved itineraries as a table.
func printSavedTable(out io.Writer, saved []*itinerary.Saved) error {
	if len(saved) == 0 {
		fmt.Fprintln(out, "No saved itineraries.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(w, "ID\tITINERARY\tDESTINATION\tDAYS\tBUDGET\tSAVED\tNOTE"); err != nil {
		return fmt.Errorf("writing table header: %w", err)
	}
	if _, err := fmt.Fprintln(w, "--\t---------\t-----------\t----\t------\t-----\t----"); err != nil {
		return fmt.Errorf("writing table separator: %w", err)
	}

	for _, s := range saved {
		budget := "-"
		if s.Itinerary.Budget > 0 {
			budget = formatMoney(s.Itinerary.Budget)
		}
		if _, err := fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\t%s\t%s\n",
			s.ID, s.Itinerary.ID, s.Itinerary.Destination, s.Itinerary.NumDays, budget,
			s.CreatedAt.Format("2006-01-02 15:04"), truncate(s.Note, 30)); err != nil {
			return fmt.Errorf("writing table row: %w", err)
		}
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing table: %w", err)
	}

	fmt.Fprintf(out, "\nTotal: %d itineraries\n", len(saved))
	return nil
}

// formatMoney formats a dollar amount with thousands separators and cents.
func formatMoney(v float64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}

	s := fmt.Sprintf("%.2f", v)
	whole, cents := s[:len(s)-3], s[len(s)-3:]

	var parts []string
	for len(whole) > 3 {
		parts = append([]string{whole[len(whole)-3:]}, parts...)
		whole = whole[:len(whole)-3]
	}
	parts = append([]string{whole}, parts...)

	return sign + "$" + strings.Join(parts, ",") + cents
}

// formatRating returns the rating, or "N/A" for unrated items.
func formatRating(r *float64) string {
	if r == nil {
		return "N/A"
	}
	return fmt.Sprintf("%g", *r)
}

// truncate shortens a string to maxLen, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
