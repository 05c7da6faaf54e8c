package main

import (
	"encoding/json"
	"fmt"
	"os"

	"medsaver/internal/auth"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// migrateCmd creates or updates the schema
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		// connecting runs every idempotent schema statement
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		fmt.Fprintln(cmd.OutOrStdout(), "schema up to date")
		return nil
	},
}

var medicinesCmd = &cobra.Command{
	Use:   "medicines",
	Short: "Manage the medicine catalogue",
}

var medicinesImportCmd = &cobra.Command{
	Use:   "import <csv>",
	Short: "Bulk-load catalogue rows from a CSV file",
	Long: `Load medicines from a CSV file into the catalogue.

The header row names the columns:
  name,manufacturer_name,price,type,pack_size_label,short_composition1,short_composition2,is_discontinued

Only "name" is required. Rows with a blank name are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		n, err := a.Medicines.ImportCSV(cmd.Context(), f)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "imported %d medicines from %s\n", n, args[0])
		return nil
	},
}

var remindersCmd = &cobra.Command{
	Use:   "reminders",
	Short: "Reminder operations",
}

var remindersDispatchCmd = &cobra.Command{
	Use:   "dispatch",
	Short: "Fire the reminders due this minute",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		res, err := a.Dispatcher.Dispatch(cmd.Context())
		if err != nil {
			return err
		}

		log.Debug("dispatch finished", zap.Int("processed", res.ProcessedReminders))

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	},
}

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Account administration",
}

var usersPromoteCmd = &cobra.Command{
	Use:   "promote <email>",
	Short: "Grant the ADMIN role to an account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Auth.SetRole(cmd.Context(), args[0], auth.RoleAdmin); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", args[0], auth.RoleAdmin)
		return nil
	},
}
