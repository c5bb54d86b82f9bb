// Package config assembles the explicit configuration for a
// reconciliation run from Viper. Nothing in the core reads hidden
// global state; the command layer loads a Config here and passes its
// values into the pipeline and collaborators as parameters.
package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/actonians/regsync/pkg/errors"
	"github.com/actonians/regsync/pkg/match"
	"github.com/actonians/regsync/pkg/reconcile"
	"github.com/actonians/regsync/pkg/records"
)

// Store backend names.
const (
	StoreGoogle = "google"
	StoreCSV    = "csv"
)

// Columns names the source spreadsheet columns for each canonical field.
type Columns struct {
	First    string
	Last     string
	DOB      string
	Postcode string
	Address  string
}

// Config holds everything one reconciliation run needs.
type Config struct {
	// CampaignYear is the season the responses sheet covers, e.g. "2018-2019".
	CampaignYear string

	// Club prefixes the responses spreadsheet title.
	Club string

	// SourceURL is the league fixture page listing registered players.
	SourceURL string

	// Store selects the spreadsheet backend: "google" or "csv".
	Store string

	// CredentialsFile is the Google service account key file (google store).
	CredentialsFile string

	// CSVDir is the sheet directory for the csv store.
	CSVDir string

	// ResultsSheet receives the outstanding registrations.
	ResultsSheet string

	// TimestampColumn holds the response submission time.
	TimestampColumn string

	// Threshold is the similarity score a match must strictly exceed.
	Threshold int

	// RecencyMonths is the registration recency window.
	RecencyMonths int

	// Columns maps canonical fields to response sheet columns.
	Columns Columns
}

// SetDefaults registers the defaults mirroring the original deployment.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("club", "Actonians AFC")
	v.SetDefault("store", StoreGoogle)
	v.SetDefault("results_sheet", "Outstanding Registrations")
	v.SetDefault("timestamp_column", "Timestamp")
	v.SetDefault("threshold", match.DefaultThreshold)
	v.SetDefault("recency_months", reconcile.DefaultRecencyMonths)
	v.SetDefault("columns.first", "First name")
	v.SetDefault("columns.last", "Surname")
	v.SetDefault("columns.dob", "Date of Birth")
	v.SetDefault("columns.postcode", "Post Code")
	v.SetDefault("columns.address", "Street Address")
}

// Load builds and validates a Config from Viper.
func Load(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	cfg := &Config{
		CampaignYear:    v.GetString("campaign_year"),
		Club:            v.GetString("club"),
		SourceURL:       v.GetString("source_url"),
		Store:           v.GetString("store"),
		CredentialsFile: v.GetString("credentials_file"),
		CSVDir:          v.GetString("csv_dir"),
		ResultsSheet:    v.GetString("results_sheet"),
		TimestampColumn: v.GetString("timestamp_column"),
		Threshold:       v.GetInt("threshold"),
		RecencyMonths:   v.GetInt("recency_months"),
		Columns: Columns{
			First:    v.GetString("columns.first"),
			Last:     v.GetString("columns.last"),
			DOB:      v.GetString("columns.dob"),
			Postcode: v.GetString("columns.postcode"),
			Address:  v.GetString("columns.address"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.CampaignYear == "" {
		return errors.NewConfigError("config", "campaign_year is required", nil)
	}
	if c.SourceURL == "" {
		return errors.NewConfigError("config", "source_url is required", nil)
	}
	switch c.Store {
	case StoreGoogle:
		if c.CredentialsFile == "" {
			return errors.NewConfigError("config", "credentials_file is required for the google store", nil)
		}
	case StoreCSV:
		if c.CSVDir == "" {
			return errors.NewConfigError("config", "csv_dir is required for the csv store", nil)
		}
	default:
		return errors.NewConfigError("config", fmt.Sprintf("unknown store %q", c.Store), nil)
	}
	if err := c.UploadMap().Validate(); err != nil {
		return err
	}
	return nil
}

// ResponsesSheet is the title of the registration responses spreadsheet
// for the configured campaign year.
func (c *Config) ResponsesSheet() string {
	return fmt.Sprintf("%s Registration %s (Responses)", c.Club, c.CampaignYear)
}

// NameMap returns the name-column mapping used to build identities.
func (c *Config) NameMap() records.NameMap {
	return records.NameMap{First: c.Columns.First, Last: c.Columns.Last}
}

// UploadMap returns the full field mapping used to format the upload.
func (c *Config) UploadMap() records.FieldMap {
	return records.FieldMap{
		First:    c.Columns.First,
		Last:     c.Columns.Last,
		DOB:      c.Columns.DOB,
		Postcode: c.Columns.Postcode,
		Address:  c.Columns.Address,
	}
}
