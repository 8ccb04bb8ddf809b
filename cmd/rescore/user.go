package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/Havertz69/rental-app/internal/services"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage API accounts",
}

var userCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an account that can request bearer tokens",
	Example: `  rescore user create --email manager@example.com --password 's3cret!' --staff`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")
		fullName, _ := cmd.Flags().GetString("full-name")
		staff, _ := cmd.Flags().GetBool("staff")

		db, err := openDatabase(ctx)
		if err != nil {
			return err
		}
		defer db.Close()

		// Registration only hashes the password; no token is signed here.
		auth := services.NewAuthService(services.NewRepositories(db.Pool), "", 0, log)
		user, err := auth.Register(ctx, email, password, fullName, staff)
		if err != nil {
			return eris.Wrapf(err, "user create %s", email)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Created user %s (%s, staff=%t)\n", user.Email, user.ID, user.IsStaff)
		return nil
	},
}

func init() {
	f := userCreateCmd.Flags()
	f.String("email", "", "login email")
	f.String("password", "", "login password")
	f.String("full-name", "", "display name")
	f.Bool("staff", false, "grant access to staff-only analytics")
	_ = userCreateCmd.MarkFlagRequired("email")
	_ = userCreateCmd.MarkFlagRequired("password")

	userCmd.AddCommand(userCreateCmd)
	rootCmd.AddCommand(userCmd)
}
