// Package config loads blogfeed settings from a TOML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const baseCfgPath = "blogfeed/config.toml"

// Date styles accepted by DateStyle.
const (
	DateStyleUTC      = "utc"
	DateStyleDate     = "date"
	DateStyleDateTime = "datetime"
)

// Output formats accepted by Format.
const (
	FormatText = "text"
	FormatRSS  = "rss"
	FormatAtom = "atom"
	FormatJSON = "json"
)

type Config struct {
	Blog             string `toml:"blog"`              // Blog name, as in {blog}.blogspot.com
	Limit            int    `toml:"limit"`             // Maximum posts per read (0 = all)
	Truncate         int    `toml:"truncate"`          // Truncation length for content and summary (0 = off)
	DateStyle        string `toml:"date_style"`        // utc, date or datetime
	AbbreviatedMonth bool   `toml:"abbreviated_month"` // "Mar" instead of "March"
	Format           string `toml:"format"`            // text, rss, atom or json
}

func Default() Config {
	return Config{
		Limit:     10,
		DateStyle: DateStyleDateTime,
		Format:    FormatText,
	}
}

// Read decodes the file at path over the defaults. A missing file returns
// the defaults and an error matching os.ErrNotExist.
func Read(path string) (Config, error) {
	conf := Default()
	dat, err := os.ReadFile(path) // #nosec G304 -- path comes from the user's own flags or environment
	if err != nil {
		return conf, err
	}
	if _, err := toml.Decode(string(dat), &conf); err != nil {
		return conf, fmt.Errorf("failed to decode config at %s: %w", path, err)
	}
	if err := conf.Validate(); err != nil {
		return conf, fmt.Errorf("invalid config at %s: %w", path, err)
	}
	return conf, nil
}

// Validate checks the enumerated settings.
func (c Config) Validate() error {
	switch c.DateStyle {
	case DateStyleUTC, DateStyleDate, DateStyleDateTime:
	default:
		return fmt.Errorf("invalid date_style %q: must be 'utc', 'date' or 'datetime'", c.DateStyle)
	}
	switch c.Format {
	case FormatText, FormatRSS, FormatAtom, FormatJSON:
	default:
		return fmt.Errorf("invalid format %q: must be 'text', 'rss', 'atom' or 'json'", c.Format)
	}
	return nil
}

// DefaultPath returns $XDG_CONFIG_HOME/blogfeed/config.toml, falling back to
// ~/.config/blogfeed/config.toml.
func DefaultPath() string {
	if xdgHome := os.Getenv("XDG_CONFIG_HOME"); xdgHome != "" {
		return filepath.Join(xdgHome, baseCfgPath)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Base(baseCfgPath)
	}
	return filepath.Join(home, ".config", baseCfgPath)
}
