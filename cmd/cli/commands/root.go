// Package commands implements the dispatch CLI commands
package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fieldsmith/dispatch/internal/constants"
	"github.com/fieldsmith/dispatch/pkg/api/v1/client"
	"github.com/fieldsmith/dispatch/pkg/api/v1/routes"
)

// flag names
const (
	flagServerAddress = "server-address"
)

var (
	// apiClient is the shared API client instance
	apiClient client.Client
	// serverAddress holds the target API server address. Flag parsing sets this.
	serverAddress string
)

// initClient initializes the API client
func initClient() error {
	var err error
	opts := client.DefaultOptions()
	opts.BaseURL = serverAddress

	apiClient, err = client.NewClient(opts)
	return err
}

func init() {
	// Set a basic default for the flag. PersistentPreRunE will handle env var override.
	RootCmd.PersistentFlags().StringVarP(&serverAddress, flagServerAddress, "s", routes.DefaultBaseURL,
		fmt.Sprintf("Address of the dispatch API server (env: %s)", constants.EnvServerAddress))

	RootCmd.AddCommand(GetJobsCmd())
	RootCmd.AddCommand(GetSuggestionsCmd())
	RootCmd.AddCommand(GetOptimizationsCmd())
	RootCmd.AddCommand(GetUsersCmd())
}

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "dispatch",
	Short: "Dispatch CLI - A command line interface for the dispatch API",
	Long: `Dispatch CLI is a command line tool for managing jobs, reschedule
negotiations and route optimizations through the dispatch API.`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		// Check if the server address flag was explicitly set by the user.
		if !cmd.Flags().Changed(flagServerAddress) {
			// If not set via flag, fall back to the environment variable.
			if envAddr := os.Getenv(constants.EnvServerAddress); envAddr != "" {
				serverAddress = envAddr
			}
		}

		// Now serverAddress has the correct precedence: Flag > Env Var > Default
		if serverAddress == "" {
			return fmt.Errorf("server address cannot be empty")
		}
		return initClient()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return RootCmd.Execute()
}

// printJSON pretty-prints a value to stdout
func printJSON(v interface{}) error {
	prettyJSON, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("error formatting response: %w", err)
	}
	fmt.Println(string(prettyJSON))
	return nil
}
