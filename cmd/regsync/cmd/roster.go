package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/actonians/regsync/internal/sources/league"
	"github.com/actonians/regsync/internal/transport"
	"github.com/actonians/regsync/pkg/errors"
)

// rosterCmd fetches and prints the external roster without reconciling.
// Useful for checking that the fixture page still has the expected shape.
var rosterCmd = &cobra.Command{
	Use:   "roster",
	Short: "Fetch and print the league's registered player roster",
	RunE: func(cmd *cobra.Command, _ []string) error {
		url := viper.GetString("source_url")
		if url == "" {
			return errors.NewConfigError("config", "source_url is required", nil)
		}

		roster, err := league.New(url, transport.New()).Roster(cmd.Context())
		if err != nil {
			return err
		}

		for _, id := range roster {
			fmt.Fprintf(cmd.OutOrStdout(), "%-30s %s\n", id.String(), id.Key)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d players registered\n", len(roster))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rosterCmd)
}
