// Package config loads the contact form configuration from defaults, an
// optional YAML file, optional .env files and the process environment, in
// that order, and validates the result.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-contactform/pkg/delivery"
	"github.com/goliatone/go-contactform/pkg/form"
	"github.com/goliatone/go-contactform/pkg/model"
	"github.com/goliatone/go-contactform/pkg/validation"
)

// ErrInvalid is wrapped by every validation failure returned from Load.
var ErrInvalid = errors.New("config: invalid configuration")

// Config is the complete module configuration.
type Config struct {
	Contact  Contact  `json:"contact" yaml:"contact"`
	Delivery Delivery `json:"delivery" yaml:"delivery"`
	Theme    Theme    `json:"theme" yaml:"theme"`
	Log      Log      `json:"log" yaml:"log"`
}

// Contact lists the direct contact channels.
type Contact struct {
	Email     string            `json:"email" yaml:"email" env:"CONTACTFORM_CONTACT_EMAIL" validate:"required,email"`
	Phone     string            `json:"phone" yaml:"phone" env:"CONTACTFORM_CONTACT_PHONE"`
	PhoneHref string            `json:"phone_href" yaml:"phone_href" env:"CONTACTFORM_CONTACT_PHONE_HREF" validate:"omitempty,startswith=tel:"`
	Location  string            `json:"location" yaml:"location" env:"CONTACTFORM_CONTACT_LOCATION"`
	MapURL    string            `json:"map_url" yaml:"map_url" env:"CONTACTFORM_CONTACT_MAP_URL" validate:"omitempty,url"`
	Icons     map[string]string `json:"icons" yaml:"icons"`
}

// Details converts the section into the renderer-facing model.
func (c Contact) Details() model.ContactDetails {
	return model.ContactDetails{
		Email:     c.Email,
		Phone:     c.Phone,
		PhoneHref: c.PhoneHref,
		Location:  c.Location,
		MapURL:    c.MapURL,
		Icons:     c.Icons,
	}
}

// Delivery configures the simulated deliverer and the status banner copy.
type Delivery struct {
	Delay          time.Duration `json:"delay" yaml:"delay" env:"CONTACTFORM_DELIVERY_DELAY" validate:"gte=0"`
	SuccessFormat  string        `json:"success_format" yaml:"success_format" env:"CONTACTFORM_DELIVERY_SUCCESS_FORMAT" validate:"required"`
	FailureMessage string        `json:"failure_message" yaml:"failure_message" env:"CONTACTFORM_DELIVERY_FAILURE_MESSAGE" validate:"required"`
}

// Theme selects the go-theme manifest and variant.
type Theme struct {
	Name    string `json:"name" yaml:"name" env:"CONTACTFORM_THEME" validate:"required"`
	Variant string `json:"variant" yaml:"variant" env:"CONTACTFORM_THEME_VARIANT" validate:"omitempty,oneof=light dark"`
}

// Log configures the zap logger.
type Log struct {
	Level       string `json:"level" yaml:"level" env:"CONTACTFORM_LOG_LEVEL" validate:"oneof=debug info warn error"`
	Development bool   `json:"development" yaml:"development" env:"CONTACTFORM_LOG_DEVELOPMENT"`
}

// Default returns the portfolio configuration.
func Default() Config {
	return Config{
		Contact: Contact{
			Email:     "rjrajput5462@gmail.com",
			Phone:     "91+ 9511669138",
			PhoneHref: "tel:+919511669138",
			Location:  "Pune, Maharashtra",
			MapURL:    "https://maps.google.com/?q=Pune,Maharashtra,India",
		},
		Delivery: Delivery{
			Delay:          delivery.DefaultDelay,
			SuccessFormat:  form.DefaultSuccessFormat,
			FailureMessage: form.DefaultFailureMessage,
		},
		Theme: Theme{
			Name:    "portfolio",
			Variant: "light",
		},
		Log: Log{
			Level: "info",
		},
	}
}

// Options controls where Load reads from.
type Options struct {
	// File is an optional YAML file. An empty path skips the file stage.
	File string
	// EnvFiles are .env files loaded into the process environment before the
	// environment stage. Missing files are ignored.
	EnvFiles []string
	// SkipEnv disables the environment stage entirely.
	SkipEnv bool
}

// Load builds a Config from defaults and the configured sources.
func Load(opts Options) (Config, error) {
	cfg := Default()

	if path := strings.TrimSpace(opts.File); path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if !opts.SkipEnv {
		if err := loadEnvFiles(opts.EnvFiles); err != nil {
			return Config{}, err
		}
		if err := ParseEnv(&cfg); err != nil {
			return Config{}, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ParseEnv applies environment variable overrides to target.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("config: parse env: %w", err)
	}
	return nil
}

// Validate checks struct constraints and the success format verb.
func (c Config) Validate() error {
	issues := validation.Struct(c, map[string]string{
		"contact.email.required":            "contact email is required",
		"contact.email.email":               "contact email must be a valid address",
		"contact.map_url.url":               "map url must be an absolute URL",
		"contact.phone_href.startswith":     "phone href must start with tel:",
		"delivery.delay.gte":                "delivery delay cannot be negative",
		"delivery.success_format.required":  "success format is required",
		"delivery.failure_message.required": "failure message is required",
		"theme.name.required":               "theme name is required",
		"theme.variant.oneof":               "theme variant must be light or dark",
		"log.level.oneof":                   "log level must be one of debug, info, warn, error",
	})
	if c.Delivery.SuccessFormat != "" {
		if err := form.CheckSuccessFormat(c.Delivery.SuccessFormat); err != nil {
			if issues == nil {
				issues = make(map[string][]string)
			}
			issues["delivery.success_format"] = append(issues["delivery.success_format"], "success format must contain exactly one %s and no other verbs")
		}
	}
	if len(issues) == 0 {
		return nil
	}

	paths := make([]string, 0, len(issues))
	for path := range issues {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	parts := make([]string, 0, len(paths))
	for _, path := range paths {
		parts = append(parts, fmt.Sprintf("%s: %s", path, strings.Join(issues[path], "; ")))
	}
	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(parts, ", "))
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}

func loadEnvFiles(files []string) error {
	for _, file := range files {
		file = strings.TrimSpace(file)
		if file == "" {
			continue
		}
		if err := godotenv.Load(file); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("config: load env file %s: %w", file, err)
		}
	}
	return nil
}
