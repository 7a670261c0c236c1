package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRead_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
blog = "gigapan-youth-exchange"
limit = 3
truncate = 120
date_style = "date"
abbreviated_month = true
format = "atom"
`)

	conf, err := Read(path)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}

	want := Config{
		Blog:             "gigapan-youth-exchange",
		Limit:            3,
		Truncate:         120,
		DateStyle:        DateStyleDate,
		AbbreviatedMonth: true,
		Format:           FormatAtom,
	}
	if conf != want {
		t.Errorf("expected %+v, got %+v", want, conf)
	}
}

func TestRead_KeepsDefaultsForMissingKeys(t *testing.T) {
	path := writeConfig(t, `blog = "example"`)

	conf, err := Read(path)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}

	def := Default()
	if conf.Limit != def.Limit || conf.DateStyle != def.DateStyle || conf.Format != def.Format {
		t.Errorf("expected defaults for missing keys, got %+v", conf)
	}
}

func TestRead_MissingFileReturnsDefaults(t *testing.T) {
	conf, err := Read(filepath.Join(t.TempDir(), "absent.toml"))

	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected os.ErrNotExist, got %v", err)
	}
	if conf != Default() {
		t.Errorf("expected defaults, got %+v", conf)
	}
}

func TestRead_RejectsMalformedTOML(t *testing.T) {
	path := writeConfig(t, `blog = `)

	if _, err := Read(path); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestRead_RejectsUnknownDateStyle(t *testing.T) {
	path := writeConfig(t, `date_style = "iso"`)

	_, err := Read(path)
	if err == nil || !strings.Contains(err.Error(), "date_style") {
		t.Fatalf("expected date_style error, got %v", err)
	}
}

func TestValidate_RejectsUnknownFormat(t *testing.T) {
	conf := Default()
	conf.Format = "opml"

	if err := conf.Validate(); err == nil {
		t.Error("expected format error")
	}
}

func TestDefaultPath_UsesXDGConfigHome(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")

	if got := DefaultPath(); got != filepath.Join("/tmp/xdg", "blogfeed", "config.toml") {
		t.Errorf("unexpected default path %q", got)
	}
}
