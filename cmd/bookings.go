package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"atc-cli/booking"
	"atc-cli/storage"

	"github.com/spf13/cobra"
)

func bookingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bookings",
		Short: "Browse and manage ATC bookings",
	}

	cmd.AddCommand(bookingsListCmd())
	cmd.AddCommand(bookingsMineCmd())
	cmd.AddCommand(bookingsGetCmd())
	cmd.AddCommand(bookingsCreateCmd())
	cmd.AddCommand(bookingsUpdateCmd())
	cmd.AddCommand(bookingsDeleteCmd())
	cmd.AddCommand(bookingsSyncCmd())
	cmd.AddCommand(bookingsCacheCmd())
	return cmd
}

func bookingsListCmd() *cobra.Command {
	var date string
	var offline bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List upcoming bookings",
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now().UTC()

			if offline {
				return listOffline(date, now)
			}

			ctx := context.Background()
			if date != "" {
				day, err := parseDateInput(date)
				if err != nil {
					return err
				}
				if err := fetchByDate(ctx, day); err != nil {
					return remoteError(err)
				}
				return renderBookings(store.OnDate(day), now)
			}

			if err := fetchAll(ctx); err != nil {
				return remoteError(err)
			}
			return renderBookings(store.Upcoming(now), now)
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Only bookings on this date (YYYY-MM-DD, today, tomorrow)")
	cmd.Flags().BoolVar(&offline, "offline", false, "Read from the local cache instead of the API")
	return cmd
}

func listOffline(date string, now time.Time) error {
	filter := storage.CacheFilter{}
	if date != "" {
		day, err := parseDateInput(date)
		if err != nil {
			return err
		}
		filter.From = day.Format(booking.DateLayout)
		filter.To = filter.From
	}

	db, err := storage.OpenCacheDB()
	if err != nil {
		return err
	}
	defer db.Close()

	bookings, err := storage.ListCachedBookings(db, filter)
	if err != nil {
		return err
	}
	return renderBookings(bookings, now)
}

func bookingsMineCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mine",
		Short: "List your upcoming bookings",
		RunE: func(cmd *cobra.Command, args []string) error {
			vid, err := requireVID()
			if err != nil {
				return err
			}

			ctx := context.Background()
			if err := fetchMine(ctx, vid); err != nil {
				return remoteError(err)
			}

			now := time.Now().UTC()
			return renderBookings(store.Mine(vid, now), now)
		},
	}

	return cmd
}

func bookingsGetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show a single booking",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			b, err := client.GetBooking(ctx, strings.TrimSpace(args[0]))
			if err != nil {
				return remoteError(err)
			}
			return renderBooking(b, time.Now().UTC())
		},
	}

	return cmd
}

func bookingsCreateCmd() *cobra.Command {
	var position string
	var fromDate string
	var fromTime string
	var toDate string
	var toTime string
	var kind string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a booking",
		RunE: func(cmd *cobra.Command, args []string) error {
			vid, err := requireVID()
			if err != nil {
				return err
			}

			if strings.TrimSpace(position) == "" {
				return fmt.Errorf("--position is required")
			}
			if !booking.IsValidPosition(position) {
				return fmt.Errorf("invalid position format %q (use ICAO_TYPE, e.g. SBGR_APP, SBBR_TWR)", position)
			}
			if fromDate == "" || fromTime == "" {
				return fmt.Errorf("--from-date and --from-time are required")
			}
			if toDate == "" || toTime == "" {
				return fmt.Errorf("--to-date and --to-time are required")
			}
			if kind != "" && !booking.ValidKind(kind) {
				return fmt.Errorf("invalid kind %q (normal, training, event, exam)", kind)
			}

			from, err := booking.CombineDateTime(fromDate, fromTime)
			if err != nil {
				return err
			}
			to, err := booking.CombineDateTime(toDate, toTime)
			if err != nil {
				return err
			}
			if err := booking.ValidateTimeRange(from, to); err != nil {
				return err
			}
			if !from.After(time.Now().UTC()) {
				return fmt.Errorf("booking must be in the future")
			}

			draft := booking.Draft{
				Position: booking.NormalizePosition(position),
				VID:      vid,
				From:     from,
				To:       to,
				Kind:     kind,
			}

			ctx := context.Background()
			created, err := client.CreateBooking(ctx, draft)
			if err != nil {
				return remoteError(err)
			}
			store.Add(created)

			if outputJSON {
				return writeJSON(created)
			}
			fmt.Printf("Created booking %s for %s, %s - %s.\n",
				created.ID,
				created.Position,
				booking.FormatDateTime(created.From),
				booking.FormatDateTime(created.To),
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&position, "position", "", "Position (ICAO_TYPE, e.g. SBGR_APP)")
	cmd.Flags().StringVar(&fromDate, "from-date", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&fromTime, "from-time", "", "Start time (HH:MM, UTC)")
	cmd.Flags().StringVar(&toDate, "to-date", "", "End date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&toTime, "to-time", "", "End time (HH:MM, UTC)")
	cmd.Flags().StringVar(&kind, "kind", "", "Booking kind (normal, training, event, exam)")
	return cmd
}

func bookingsUpdateCmd() *cobra.Command {
	var position string
	var fromDate string
	var fromTime string
	var toDate string
	var toTime string
	var kind string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update one of your bookings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := requireVID(); err != nil {
				return err
			}
			id := strings.TrimSpace(args[0])

			ctx := context.Background()
			existing, err := client.GetBooking(ctx, id)
			if err != nil {
				return remoteError(err)
			}
			if err := client.EnsureOwned(existing); err != nil {
				return err
			}
			now := time.Now().UTC()
			if !existing.From.After(now) {
				return fmt.Errorf("only future bookings can be edited")
			}

			// Flags override the stored values; anything omitted
			// keeps what the server has.
			from := existing.From
			to := existing.To
			if fromDate != "" || fromTime != "" {
				if fromDate == "" || fromTime == "" {
					return fmt.Errorf("--from-date and --from-time must be given together")
				}
				from, err = booking.CombineDateTime(fromDate, fromTime)
				if err != nil {
					return err
				}
			}
			if toDate != "" || toTime != "" {
				if toDate == "" || toTime == "" {
					return fmt.Errorf("--to-date and --to-time must be given together")
				}
				to, err = booking.CombineDateTime(toDate, toTime)
				if err != nil {
					return err
				}
			}

			newPosition := existing.Position
			if position != "" {
				if !booking.IsValidPosition(position) {
					return fmt.Errorf("invalid position format %q (use ICAO_TYPE, e.g. SBGR_APP, SBBR_TWR)", position)
				}
				newPosition = booking.NormalizePosition(position)
			}
			newKind := existing.Kind
			if kind != "" {
				if !booking.ValidKind(kind) {
					return fmt.Errorf("invalid kind %q (normal, training, event, exam)", kind)
				}
				newKind = kind
			}

			if err := booking.ValidateTimeRange(from, to); err != nil {
				return err
			}

			draft := booking.Draft{
				Position: newPosition,
				VID:      existing.VID,
				From:     from,
				To:       to,
				Kind:     newKind,
			}

			updated, err := client.UpdateBooking(ctx, id, draft)
			if err != nil {
				return remoteError(err)
			}
			store.Put(updated)

			if outputJSON {
				return writeJSON(updated)
			}
			fmt.Printf("Updated booking %s: %s, %s - %s.\n",
				updated.ID,
				updated.Position,
				booking.FormatDateTime(updated.From),
				booking.FormatDateTime(updated.To),
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&position, "position", "", "Position (ICAO_TYPE, e.g. SBGR_APP)")
	cmd.Flags().StringVar(&fromDate, "from-date", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&fromTime, "from-time", "", "Start time (HH:MM, UTC)")
	cmd.Flags().StringVar(&toDate, "to-date", "", "End date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&toTime, "to-time", "", "End time (HH:MM, UTC)")
	cmd.Flags().StringVar(&kind, "kind", "", "Booking kind (normal, training, event, exam)")
	return cmd
}

func bookingsDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete one of your bookings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := requireVID(); err != nil {
				return err
			}
			id := strings.TrimSpace(args[0])

			ctx := context.Background()
			existing, err := client.GetBooking(ctx, id)
			if err != nil {
				return remoteError(err)
			}
			if err := client.EnsureOwned(existing); err != nil {
				return err
			}

			if !yes {
				ok, err := confirm(fmt.Sprintf("Delete the booking for %s on %s?",
					existing.Position, booking.FormatDateTime(existing.From)))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Println("Aborted.")
					return nil
				}
			}

			if err := client.DeleteBooking(ctx, id); err != nil {
				return remoteError(err)
			}
			store.Remove(id)

			fmt.Printf("Deleted booking %s.\n", id)
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Skip the confirmation prompt")
	return cmd
}

func bookingsSyncCmd() *cobra.Command {
	var mine bool

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Refresh the local booking cache from the API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			var bookings []booking.Booking
			var err error
			if mine {
				vid, vidErr := requireVID()
				if vidErr != nil {
					return vidErr
				}
				bookings, err = client.ListBookingsByUser(ctx, vid)
			} else {
				bookings, err = client.ListBookings(ctx)
			}
			if err != nil {
				return remoteError(err)
			}

			db, err := storage.OpenCacheDB()
			if err != nil {
				return err
			}
			defer db.Close()

			if err := storage.ReplaceCachedBookings(db, bookings, time.Now()); err != nil {
				return err
			}

			if outputJSON {
				return writeJSON(map[string]int{"synced": len(bookings)})
			}
			fmt.Printf("Sync complete. Cached %d bookings.\n", len(bookings))
			return nil
		},
	}

	cmd.Flags().BoolVar(&mine, "mine", false, "Only cache your own bookings")
	return cmd
}

func bookingsCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Show local cache status",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := storage.OpenCacheDB()
			if err != nil {
				return err
			}
			defer db.Close()

			info, err := storage.GetCacheInfo(db)
			if err != nil {
				return err
			}

			if outputJSON {
				return writeJSON(info)
			}
			fmt.Printf("Cached bookings: %d\n", info.Bookings)
			if info.LastSynced != "" {
				fmt.Printf("Last synced: %s\n", info.LastSynced)
			} else {
				fmt.Println("Never synced. Run 'atc bookings sync'.")
			}
			return nil
		},
	}

	return cmd
}
