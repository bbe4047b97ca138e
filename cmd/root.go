package cmd

import (
	"os"

	"groupcal/client"
	"groupcal/config"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the groupcal application
var rootCmd = &cobra.Command{
	Use:   "groupcal",
	Short: "Shared group calendar with AI schedule extraction and free slot search",
	Long: `groupcal keeps a shared calendar of a group's busy times.

Members submit schedules as free text or images, an LLM turns them into
events, and the calendar finds the slots in which everyone is free.

It can run as:
  - An HTTP server with a calendar page and a JSON API (serve)
  - A CLI client against a running server (month, free, submit, delete)`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.LoadConfig()
	},
}

var apiURL, adminToken string

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "groupcal version %s\n" .Version}}`)

	// Without a subcommand groupcal runs the server
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// apiClient builds a client for the --api flag, falling back to API_BASE_URL.
func apiClient() *client.Client {
	base := apiURL
	if base == "" {
		base = config.AppConfig.APIBaseURL
	}
	var opts []client.Option
	if adminToken != "" {
		opts = append(opts, client.WithAdminToken(adminToken))
	}
	return client.New(base, opts...)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", "", "groupcal server base URL (default: API_BASE_URL)")
	rootCmd.PersistentFlags().StringVar(&adminToken, "token", "", "admin bearer token for protected endpoints")

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newMonthCmd())
	rootCmd.AddCommand(newFreeCmd())
	rootCmd.AddCommand(newSubmitCmd())
	rootCmd.AddCommand(newDeleteCmd())
	rootCmd.AddCommand(newTokenCmd())
	rootCmd.AddCommand(newSeedCmd())
}
