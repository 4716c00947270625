package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"atc-cli/api"
	"atc-cli/booking"

	"golang.org/x/term"
)

func parseDateInput(input string) (time.Time, error) {
	if input == "" {
		return time.Time{}, fmt.Errorf("date is required")
	}
	now := time.Now().UTC()
	switch strings.ToLower(input) {
	case "today":
		return booking.StartOfDay(now), nil
	case "tomorrow":
		return booking.StartOfDay(now.AddDate(0, 0, 1)), nil
	}
	parsed, err := time.ParseInLocation(booking.DateLayout, input, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", input)
	}
	return parsed, nil
}

func writeJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// requireVID returns the session VID or tells the user how to set one.
func requireVID() (string, error) {
	vid := client.VID()
	if vid == "" {
		return "", fmt.Errorf("no VID set. Run 'atc vid set <vid>' first")
	}
	return vid, nil
}

// fetchAll pulls the full upcoming list into the store, keeping the
// loading flag honest on every exit path.
func fetchAll(ctx context.Context) error {
	store.SetLoading(true)
	defer store.SetLoading(false)

	bookings, err := client.ListBookings(ctx)
	if err != nil {
		store.SetError(err)
		return err
	}
	store.SetAll(bookings)
	return nil
}

func fetchByDate(ctx context.Context, date time.Time) error {
	store.SetLoading(true)
	defer store.SetLoading(false)

	bookings, err := client.ListBookingsByDate(ctx, date)
	if err != nil {
		store.SetError(err)
		return err
	}
	store.SetAll(bookings)
	return nil
}

func fetchMine(ctx context.Context, vid string) error {
	store.SetLoading(true)
	defer store.SetLoading(false)

	bookings, err := client.ListBookingsByUser(ctx, vid)
	if err != nil {
		store.SetError(err)
		return err
	}
	store.SetAll(bookings)
	return nil
}

// remoteError renders a normalized API error with a retry hint where
// re-issuing the same command could help. Nothing retries on its own.
func remoteError(err error) error {
	if api.IsRetryable(err) {
		return fmt.Errorf("%v (re-run the command to retry)", err)
	}
	return err
}

func renderBookings(bookings []booking.Booking, now time.Time) error {
	if outputJSON {
		return writeJSON(bookings)
	}

	if len(bookings) == 0 {
		fmt.Println("No bookings found.")
		return nil
	}

	writer := tabwriter.NewWriter(os.Stdout, 2, 2, 2, ' ', 0)
	if !outputCompact {
		fmt.Fprintln(writer, "ID\tPOSITION\tVID\tFROM\tTO\tDURATION\tSTATUS")
	}
	for _, b := range bookings {
		fmt.Fprintf(writer, "%s\t%s\t%s\t%s\t%s\t%dm\t%s\n",
			b.ID,
			b.Position,
			b.VID,
			booking.FormatDateTime(b.From),
			booking.FormatDateTime(b.To),
			b.DurationMinutes(),
			booking.StatusOf(b, now),
		)
	}
	return writer.Flush()
}

func renderBooking(b booking.Booking, now time.Time) error {
	if outputJSON {
		return writeJSON(b)
	}

	fmt.Printf("ID:       %s\n", b.ID)
	fmt.Printf("Position: %s\n", b.Position)
	fmt.Printf("VID:      %s\n", b.VID)
	fmt.Printf("From:     %s\n", booking.FormatDateTime(b.From))
	fmt.Printf("To:       %s\n", booking.FormatDateTime(b.To))
	fmt.Printf("Duration: %dm\n", b.DurationMinutes())
	if b.Kind != "" {
		fmt.Printf("Kind:     %s\n", b.Kind)
	}
	fmt.Printf("Status:   %s\n", booking.StatusOf(b, now))
	return nil
}

// confirm prompts for a y/N answer when stdin is a terminal. In
// non-interactive use there is nobody to ask, so it refuses rather
// than deleting silently.
func confirm(prompt string) (bool, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return false, fmt.Errorf("refusing to proceed without confirmation; pass --yes in non-interactive use")
	}
	fmt.Printf("%s [y/N]: ", prompt)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false, err
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes", nil
}
