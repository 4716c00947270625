package cmd

import (
	"fmt"
	"strings"

	"atc-cli/booking"
	"atc-cli/storage"

	"github.com/spf13/cobra"
)

func vidCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vid",
		Short: "Manage your VID",
	}

	cmd.AddCommand(vidSetCmd())
	cmd.AddCommand(vidShowCmd())
	cmd.AddCommand(vidClearCmd())
	return cmd
}

func vidSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <vid>",
		Short: "Set your VID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			vid := strings.TrimSpace(args[0])
			if err := booking.VIDError(vid); err != nil {
				return err
			}
			if err := storage.SaveIdentity(vid); err != nil {
				return err
			}
			client.SetVID(vid)

			fmt.Printf("VID set to %s.\n", vid)
			return nil
		},
	}

	return cmd
}

func vidShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the current VID",
		RunE: func(cmd *cobra.Command, args []string) error {
			ident, err := storage.LoadIdentity()
			if err != nil {
				return err
			}
			if ident == nil || ident.VID == "" {
				fmt.Println("No VID set. Run 'atc vid set <vid>'.")
				return nil
			}

			if outputJSON {
				return writeJSON(ident)
			}
			fmt.Printf("Current VID: %s\n", ident.VID)
			if ident.SavedAt != "" {
				fmt.Printf("Saved at: %s\n", ident.SavedAt)
			}
			return nil
		},
	}

	return cmd
}

func vidClearCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear the stored VID",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := storage.ClearIdentity(); err != nil {
				return err
			}
			client.SetVID("")

			fmt.Println("VID cleared.")
			return nil
		},
	}

	return cmd
}
