package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/de-tools/sales-atlas/pkg/services/aggregate"
	"github.com/de-tools/sales-atlas/pkg/services/dashboard"
	"github.com/de-tools/sales-atlas/pkg/services/daterange"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

const envPrefix = "SALES_ATLAS"

type Settings struct {
	Timezone      string         `mapstructure:"timezone"`
	DefaultPreset string         `mapstructure:"default_preset"`
	TopN          int            `mapstructure:"top_n"`
	Profiles      string         `mapstructure:"profiles"`
	Source        string         `mapstructure:"source"`
	DuckDB        string         `mapstructure:"duckdb"`
	Filters       FilterSettings `mapstructure:"filters"`
	Server        ServerSettings `mapstructure:"server"`
}

type FilterSettings struct {
	Categories     []string `mapstructure:"categories"`
	Regions        []string `mapstructure:"regions"`
	SalesReps      []string `mapstructure:"sales_reps"`
	PaymentMethods []string `mapstructure:"payment_methods"`
	SearchTerm     string   `mapstructure:"search_term"`
}

type ServerSettings struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("timezone", "Local")
	v.SetDefault("default_preset", "")
	v.SetDefault("top_n", aggregate.DefaultTopN)
	v.SetDefault("profiles", "sources.ini")
	v.SetDefault("duckdb", "sales.duckdb")
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", 8080)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// .env files written for the web server use the unprefixed names.
	_ = v.BindEnv("server.host", envPrefix+"_SERVER_HOST", "SERVER_HOST")
	_ = v.BindEnv("server.port", envPrefix+"_SERVER_PORT", "SERVER_PORT")
	return v
}

// DefaultSettings returns the settings used when no file is given.
func DefaultSettings() (*Settings, error) {
	return unmarshal(newViper())
}

// LoadSettings reads a YAML (or any viper-supported) settings file.
// Environment variables prefixed with SALES_ATLAS_ override file values.
func LoadSettings(path string) (*Settings, error) {
	v := newViper()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return unmarshal(v)
}

func unmarshal(v *viper.Viper) (*Settings, error) {
	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Settings) Validate() error {
	if _, err := s.Location(); err != nil {
		return err
	}
	if s.DefaultPreset != "" && !daterange.Preset(s.DefaultPreset).Valid() {
		return fmt.Errorf("unknown default_preset %q", s.DefaultPreset)
	}
	if s.TopN < 0 {
		return fmt.Errorf("top_n must not be negative, got %d", s.TopN)
	}
	return nil
}

func (s *Settings) Location() (*time.Location, error) {
	if s.Timezone == "" || s.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", s.Timezone, err)
	}
	return loc, nil
}

// DefaultCriteria is the filter snapshot the dashboard starts from and
// resets to.
func (s *Settings) DefaultCriteria() domain.FilterCriteria {
	return domain.FilterCriteria{
		Categories:     domain.NewSelection(s.Filters.Categories...),
		Regions:        domain.NewSelection(s.Filters.Regions...),
		SalesReps:      domain.NewSelection(s.Filters.SalesReps...),
		PaymentMethods: domain.NewSelection(s.Filters.PaymentMethods...),
		SearchTerm:     s.Filters.SearchTerm,
	}
}

func (s *Settings) Address() string {
	return fmt.Sprintf("%s:%d", s.Server.Host, s.Server.Port)
}

// EngineOptions builds dashboard options from the settings.
func (s *Settings) EngineOptions(logger zerolog.Logger) (dashboard.Options, error) {
	loc, err := s.Location()
	if err != nil {
		return dashboard.Options{}, err
	}
	return dashboard.Options{
		Logger:        logger,
		Clock:         daterange.SystemClock(),
		Location:      loc,
		TopN:          s.TopN,
		Defaults:      s.DefaultCriteria(),
		DefaultPreset: daterange.Preset(s.DefaultPreset),
	}, nil
}
