package cmd

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/apimgr/swapi/src/client/api"
	"github.com/apimgr/swapi/src/client/logging"
)

// Settings is the effective CLI configuration after merging defaults, the
// config file, SWAPI_* environment variables and flags.
type Settings struct {
	API     APISettings    `mapstructure:"api"`
	Cache   CacheSettings  `mapstructure:"cache"`
	Logging logging.Config `mapstructure:"logging"`
}

// APISettings configures the upstream API
type APISettings struct {
	BaseURL string `mapstructure:"base_url" validate:"required,url"`
	Timeout int    `mapstructure:"timeout" validate:"gte=0"` // seconds, 0 = none
}

// CacheSettings configures the optional response cache
type CacheSettings struct {
	Enabled bool `mapstructure:"enabled"`
	TTL     int  `mapstructure:"ttl" validate:"gte=0"`      // seconds
	MaxSize int  `mapstructure:"max_size" validate:"gte=0"` // MB
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", api.DefaultBaseURL)
	v.SetDefault("api.timeout", 30)
	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.ttl", 300)
	v.SetDefault("cache.max_size", 100)
	v.SetDefault("logging.level", "warn")
	v.SetDefault("logging.file", "")
	v.SetDefault("logging.max_size", 10)
	v.SetDefault("logging.max_files", 5)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	val := validator.New()
	// report config keys rather than Go field names
	val.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return val
}

// loadSettings decodes and validates the merged configuration
func loadSettings(v *viper.Viper) (Settings, error) {
	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return s, fmt.Errorf("invalid configuration: %w", err)
	}
	if err := validate.Struct(s); err != nil {
		return s, describeValidation(err)
	}
	return s, nil
}

func describeValidation(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		key := strings.TrimPrefix(fe.Namespace(), "Settings.")
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, key+" is required")
		case "url":
			msgs = append(msgs, fmt.Sprintf("%s must be a valid URL, got %q", key, fe.Value()))
		case "gte":
			msgs = append(msgs, fmt.Sprintf("%s must be >= %s", key, fe.Param()))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of [%s]", key, fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s validation", key, fe.Tag()))
		}
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
}
