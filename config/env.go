// Package config holds the process configuration read from the environment
// and the shop settings persisted in the workspace store.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Environment variables.
const (
	EnvStore    = "SMARTBIZ_STORE"
	EnvData     = "SMARTBIZ_DATA"
	EnvCurrency = "SMARTBIZ_CURRENCY"
	EnvRegion   = "SMARTBIZ_REGION"
	EnvLogLevel = "SMARTBIZ_LOG_LEVEL"
	EnvModel    = "SMARTBIZ_MODEL"
	EnvGemini   = "GEMINI_API_KEY"
)

// DefaultModel is the Gemini model used for insights.
const DefaultModel = "gemini-2.5-flash"

// Env is the process configuration.
type Env struct {
	Store    string `validate:"oneof=dir sqlite memory"`
	Data     string `validate:"required"`
	Currency string `validate:"len=3,uppercase"`
	Region   string `validate:"len=2,uppercase"`
	LogLevel string `validate:"oneof=trace debug info warn error disabled"`
	Model    string `validate:"required"`
	APIKey   string
}

// LoadEnv reads the given dotenv files (".env" when none is given), without
// overriding variables already set, then builds the Env from the process
// environment. Missing files are ignored.
func LoadEnv(files ...string) (Env, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Env{}, fmt.Errorf("cannot read %s: %w", f, err)
		}
	}
	e := Env{
		Store:    getenv(EnvStore, "dir"),
		Currency: strings.ToUpper(getenv(EnvCurrency, "VND")),
		Region:   strings.ToUpper(getenv(EnvRegion, "VN")),
		LogLevel: strings.ToLower(getenv(EnvLogLevel, "info")),
		Model:    getenv(EnvModel, DefaultModel),
		APIKey:   os.Getenv(EnvGemini),
	}
	e.Data = getenv(EnvData, e.defaultData())
	if err := validate.Struct(e); err != nil {
		return e, fmt.Errorf("invalid environment: %w", err)
	}
	return e, nil
}

func (e Env) defaultData() string {
	if e.Store == "sqlite" {
		return "smartbiz.db"
	}
	return ".smartbiz"
}

// Override replaces the store kind and location when they are not empty,
// then validates the result. A new kind without location gets its default
// location unless SMARTBIZ_DATA is set.
func (e *Env) Override(kind, data string) error {
	if kind != "" && kind != e.Store {
		e.Store = kind
		if _, ok := os.LookupEnv(EnvData); !ok {
			e.Data = e.defaultData()
		}
	}
	if data != "" {
		e.Data = data
	}
	if err := validate.Struct(e); err != nil {
		return fmt.Errorf("invalid store: %w", err)
	}
	return nil
}

// Level returns the zerolog level named by LogLevel, info if unknown.
func (e Env) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(e.LogLevel)
	if err != nil || e.LogLevel == "" {
		return zerolog.InfoLevel
	}
	return lvl
}

func getenv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return def
}
