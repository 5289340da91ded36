package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Settings struct {
	Debug  bool           `mapstructure:"debug"`
	Log    LogSettings    `mapstructure:"log"`
	Store  StoreSettings  `mapstructure:"store"`
	Chart  ChartSettings  `mapstructure:"chart"`
	Server ServerSettings `mapstructure:"server"`
	Mail   MailSettings   `mapstructure:"mail"`
	Notify NotifySettings `mapstructure:"notify"`
}

type LogSettings struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // console or json
}

type StoreSettings struct {
	Backend  string         `mapstructure:"backend"` // csv, sqlite or sheets
	CacheTTL time.Duration  `mapstructure:"cachettl"`
	CSV      CSVSettings    `mapstructure:"csv"`
	SQLite   SQLiteSettings `mapstructure:"sqlite"`
	Sheets   SheetsSettings `mapstructure:"sheets"`
}

type CSVSettings struct {
	Path string `mapstructure:"path"`
}

type SQLiteSettings struct {
	Path string `mapstructure:"path"`
}

type SheetsSettings struct {
	SpreadsheetID   string `mapstructure:"spreadsheetid"`
	Worksheet       string `mapstructure:"worksheet"`
	CredentialsFile string `mapstructure:"credentialsfile"`
	CredentialsJSON string `mapstructure:"credentialsjson"`
}

type ChartSettings struct {
	Style  ChartStyle `mapstructure:"style"`
	Width  float64    `mapstructure:"width"`  // inches
	Height float64    `mapstructure:"height"` // inches
}

type ServerSettings struct {
	Listen string `mapstructure:"listen"`
}

type MailSettings struct {
	Host      string `mapstructure:"host"`
	Port      int    `mapstructure:"port"`
	Username  string `mapstructure:"username"`
	Password  string `mapstructure:"password"`
	From      string `mapstructure:"from"`
	SSL       bool   `mapstructure:"ssl"`
	TLSPolicy string `mapstructure:"tlspolicy"` // mandatory, opportunistic or none
}

// Enabled reports whether reports can be mailed.
func (m MailSettings) Enabled() bool {
	return m.Host != ""
}

type NotifySettings struct {
	URLs    []string      `mapstructure:"urls"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// LoadSettings reads configFile, or config.yaml from the default locations when
// configFile is empty. A missing default config is not an error. MOODTICK_*
// environment variables override file values.
func LoadSettings(configFile string) (*Settings, error) {
	v := viper.New()
	setDefaultConfig(v)

	v.SetEnvPrefix("MOODTICK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// the service account secret keeps the name it had in the hosted deployment
	if err := v.BindEnv("store.sheets.credentialsjson", "MOODTICK_STORE_SHEETS_CREDENTIALSJSON", "GOOGLE_CREDENTIALS"); err != nil {
		return nil, fmt.Errorf("error binding environment: %w", err)
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "moodtick"))
		}
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	settings := &Settings{}
	if err := v.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("error unmarshaling config into struct: %w", err)
	}

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("error validating settings: %w", err)
	}

	return settings, nil
}

func setDefaultConfig(v *viper.Viper) {
	dataDir := defaultDataDir()

	v.SetDefault("debug", false)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	v.SetDefault("store.backend", "csv")
	v.SetDefault("store.cachettl", 60*time.Second)
	v.SetDefault("store.csv.path", filepath.Join(dataDir, "moods.csv"))
	v.SetDefault("store.sqlite.path", filepath.Join(dataDir, "moods.db"))
	v.SetDefault("store.sheets.spreadsheetid", "")
	v.SetDefault("store.sheets.worksheet", "Sheet1")
	v.SetDefault("store.sheets.credentialsfile", "")
	v.SetDefault("store.sheets.credentialsjson", "")

	v.SetDefault("chart.style", string(StyleLine))
	v.SetDefault("chart.width", 14.0)
	v.SetDefault("chart.height", 6.0)

	v.SetDefault("server.listen", ":8080")

	v.SetDefault("mail.host", "")
	v.SetDefault("mail.port", 587)
	v.SetDefault("mail.username", "")
	v.SetDefault("mail.password", "")
	v.SetDefault("mail.from", "")
	v.SetDefault("mail.ssl", false)
	v.SetDefault("mail.tlspolicy", "mandatory")

	v.SetDefault("notify.urls", []string{})
	v.SetDefault("notify.timeout", 10*time.Second)
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".local", "share", "moodtick")
}

func (s *Settings) Validate() error {
	var errs []error

	switch s.Store.Backend {
	case "csv":
		if s.Store.CSV.Path == "" {
			errs = append(errs, errors.New("store.csv.path is required"))
		}
	case "sqlite":
		if s.Store.SQLite.Path == "" {
			errs = append(errs, errors.New("store.sqlite.path is required"))
		}
	case "sheets":
		if s.Store.Sheets.SpreadsheetID == "" {
			errs = append(errs, errors.New("store.sheets.spreadsheetid is required for the sheets backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("%w: %q", ErrUnknownBackend, s.Store.Backend))
	}

	switch s.Chart.Style {
	case StyleLine, StyleDots:
	default:
		errs = append(errs, fmt.Errorf("chart.style must be line or dots, got %q", s.Chart.Style))
	}
	if s.Chart.Width <= 0 || s.Chart.Height <= 0 {
		errs = append(errs, errors.New("chart.width and chart.height must be positive"))
	}

	switch s.Mail.TLSPolicy {
	case "mandatory", "opportunistic", "none":
	default:
		errs = append(errs, fmt.Errorf("mail.tlspolicy must be mandatory, opportunistic or none, got %q", s.Mail.TLSPolicy))
	}
	if s.Mail.Enabled() && s.Mail.From == "" {
		errs = append(errs, errors.New("mail.from is required when mail.host is set"))
	}

	return errors.Join(errs...)
}
