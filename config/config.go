// Package config resolves the widget configuration from init.lua, .env,
// the environment and command-line flags.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/drake/clockwidget/widget"
)

// Environment variables read by Load.
const (
	EnvFamily = "CLOCKWIDGET_FAMILY"
	EnvCity   = "CLOCKWIDGET_CITY"
	EnvDebug  = "CLOCKWIDGET_DEBUG"
)

// Config is the resolved widget configuration.
type Config struct {
	Family  string `validate:"required,widgetfamily"`
	City    string `validate:"max=64"`
	Simple  bool
	Preview bool
}

// Dir returns the clockwidget configuration directory.
// Respects XDG_CONFIG_HOME on Unix, APPDATA on Windows.
func Dir() string {
	var base string

	if runtime.GOOS == "windows" {
		base = os.Getenv("APPDATA")
		if base == "" {
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	} else {
		base = os.Getenv("XDG_CONFIG_HOME")
		if base == "" {
			home, _ := os.UserHomeDir()
			base = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(base, "clockwidget")
}

// InitFile returns the path to init.lua inside dir.
func InitFile(dir string) string {
	return filepath.Join(dir, "init.lua")
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{Family: widget.Small.String()}
}

// Load applies, in order, the defaults, dir/init.lua, envFile and the
// process environment. Missing files are skipped. The result is not
// validated; flags may still override it, so call Validate afterwards.
func Load(dir, envFile string) (Config, error) {
	cfg := Default()

	if dir != "" {
		if err := loadScript(InitFile(dir), &cfg); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return cfg, err
		}
	}

	dotenv := map[string]string{}
	if envFile != "" {
		m, err := godotenv.Read(envFile)
		switch {
		case err == nil:
			dotenv = m
		case !errors.Is(err, fs.ErrNotExist):
			return cfg, fmt.Errorf("config: reading %s: %w", envFile, err)
		}
	}

	if v := getenv(dotenv, EnvFamily); v != "" {
		cfg.Family = v
	}
	if v := getenv(dotenv, EnvCity); v != "" {
		cfg.City = v
	}
	return cfg, nil
}

// getenv prefers the process environment over the .env file.
func getenv(dotenv map[string]string, key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return dotenv[key]
}

// RegisterFlags binds c's fields to fs, using the current values as defaults.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.Family, "family", c.Family, "widget family: small, medium or large")
	fs.StringVar(&c.City, "city", c.City, "city passed to the provider as configuration")
	fs.BoolVar(&c.Simple, "simple", c.Simple, "use the plain console display instead of the TUI")
	fs.BoolVar(&c.Preview, "preview", c.Preview, "print the snapshot view once and exit")
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	err := v.RegisterValidation("widgetfamily", func(fl validator.FieldLevel) bool {
		_, err := widget.ParseFamily(fl.Field().String())
		return err == nil
	})
	if err != nil {
		panic("config: registering widgetfamily validation: " + err.Error())
	}
	return v
}

// Validate checks field constraints.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// WidgetFamily returns the parsed family. Call after Validate.
func (c Config) WidgetFamily() widget.Family {
	f, _ := widget.ParseFamily(c.Family)
	return f
}

// WidgetConfiguration returns the provider configuration.
func (c Config) WidgetConfiguration() widget.Configuration {
	return widget.Configuration{City: c.City}
}

// DebugEnabled returns true if debug logging is on (CLOCKWIDGET_DEBUG=1).
func DebugEnabled() bool {
	return os.Getenv(EnvDebug) == "1"
}
