package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validViper() *viper.Viper {
	v := viper.New()
	v.Set("campaign_year", "2018-2019")
	v.Set("source_url", "http://fulltime-league.example.com/DisplayFixture.do?id=1")
	v.Set("store", StoreCSV)
	v.Set("csv_dir", "/tmp/sheets")
	return v
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(validViper())
	require.NoError(t, err)

	assert.Equal(t, "Actonians AFC", cfg.Club)
	assert.Equal(t, 90, cfg.Threshold)
	assert.Equal(t, 2, cfg.RecencyMonths)
	assert.Equal(t, "Timestamp", cfg.TimestampColumn)
	assert.Equal(t, "Outstanding Registrations", cfg.ResultsSheet)
	assert.Equal(t, "First name", cfg.Columns.First)
	assert.Equal(t, "Surname", cfg.Columns.Last)
}

func TestResponsesSheet(t *testing.T) {
	cfg, err := Load(validViper())
	require.NoError(t, err)
	assert.Equal(t, "Actonians AFC Registration 2018-2019 (Responses)", cfg.ResponsesSheet())
}

func TestFieldMaps(t *testing.T) {
	cfg, err := Load(validViper())
	require.NoError(t, err)

	assert.Equal(t, "First name", cfg.NameMap().First)
	assert.Equal(t, "Surname", cfg.NameMap().Last)
	assert.Equal(t, "Date of Birth", cfg.UploadMap().DOB)
	assert.Equal(t, "Post Code", cfg.UploadMap().Postcode)
	assert.NoError(t, cfg.UploadMap().Validate())
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name  string
		tweak func(*viper.Viper)
	}{
		{"missing campaign year", func(v *viper.Viper) { v.Set("campaign_year", "") }},
		{"missing source url", func(v *viper.Viper) { v.Set("source_url", "") }},
		{"unknown store", func(v *viper.Viper) { v.Set("store", "redis") }},
		{"google store without credentials", func(v *viper.Viper) { v.Set("store", StoreGoogle) }},
		{"csv store without dir", func(v *viper.Viper) { v.Set("csv_dir", "") }},
		{"blank column mapping", func(v *viper.Viper) { v.Set("columns.dob", "") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := validViper()
			tt.tweak(v)
			_, err := Load(v)
			assert.Error(t, err)
		})
	}
}
