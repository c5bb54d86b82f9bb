package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/actonians/regsync/internal/config"
	"github.com/actonians/regsync/internal/sheets"
	"github.com/actonians/regsync/internal/sources/league"
	"github.com/actonians/regsync/internal/transport"
	"github.com/actonians/regsync/pkg/logging"
	"github.com/actonians/regsync/pkg/match"
	"github.com/actonians/regsync/pkg/reconcile"
	"github.com/actonians/regsync/pkg/records"
)

var dryRun bool

// reconcileCmd runs the full reconciliation and uploads the result.
var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Find and upload outstanding league registrations",
	Long: `Reconcile reads the campaign's registration responses, scrapes the
league roster, and computes the registrations submitted recently that
the league does not yet know about. The outstanding list is written to
the results spreadsheet unless --dry-run is given.`,
	RunE: runReconcile,
}

func init() {
	rootCmd.AddCommand(reconcileCmd)

	reconcileCmd.Flags().String("year", "", "campaign year, e.g. 2018-2019")
	reconcileCmd.Flags().Int("threshold", match.DefaultThreshold, "similarity score a match must strictly exceed")
	reconcileCmd.Flags().Int("months", reconcile.DefaultRecencyMonths, "recency window in calendar months")
	reconcileCmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the outstanding list instead of uploading it")

	cobra.CheckErr(viper.BindPFlag("campaign_year", reconcileCmd.Flags().Lookup("year")))
	cobra.CheckErr(viper.BindPFlag("threshold", reconcileCmd.Flags().Lookup("threshold")))
	cobra.CheckErr(viper.BindPFlag("recency_months", reconcileCmd.Flags().Lookup("months")))
}

func runReconcile(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	log := logging.Default()

	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return err
	}

	store, err := newStore(ctx, cfg)
	if err != nil {
		return err
	}

	log.Info().Str("sheet", cfg.ResponsesSheet()).Msg("Reading internal registrations")
	_, rows, err := store.Read(ctx, cfg.ResponsesSheet())
	if err != nil {
		return err
	}

	log.Info().Str("url", cfg.SourceURL).Msg("Scraping external roster")
	external, err := league.New(cfg.SourceURL, transport.New()).Roster(ctx)
	if err != nil {
		return err
	}

	pipeline, err := reconcile.New(
		reconcile.WithThreshold(cfg.Threshold),
		reconcile.WithRecencyMonths(cfg.RecencyMonths),
		reconcile.WithTimestampField(cfg.TimestampColumn),
	)
	if err != nil {
		return err
	}

	outstanding, err := pipeline.Run(ctx, rows, cfg.NameMap(), external, cfg.UploadMap())
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%d registrations outstanding\n", len(outstanding))

	if dryRun {
		for _, rec := range outstanding {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s  %s  %s  %s\n",
				rec.First, rec.Last, rec.DOB, rec.Postcode, rec.Address)
		}
		return nil
	}

	grid := make([][]string, 0, len(outstanding))
	for _, rec := range outstanding {
		grid = append(grid, rec.Row())
	}
	if err := store.Write(ctx, cfg.ResultsSheet, records.Header, grid); err != nil {
		return err
	}

	log.Info().Str("sheet", cfg.ResultsSheet).Int("records", len(outstanding)).
		Msg("Uploaded outstanding registrations")
	return nil
}

// newStore builds the configured spreadsheet backend.
func newStore(ctx context.Context, cfg *config.Config) (sheets.Store, error) {
	switch cfg.Store {
	case config.StoreCSV:
		return sheets.NewCSVStore(cfg.CSVDir), nil
	default:
		return sheets.NewGoogleStore(ctx, cfg.CredentialsFile)
	}
}
