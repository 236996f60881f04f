package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every problem found in one pass so the operator
// can fix them all at once.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, v := range e {
		msgs[i] = v.Error()
	}
	return strings.Join(msgs, "\n")
}

var ErrUnknownBackend = errors.New("unknown store backend")

// Validate checks the loaded values for the current environment.
func (c *Config) Validate() error {
	var errs ValidationErrors

	switch c.StoreBackend {
	case BackendMemory, BackendSQLite, BackendRedis, BackendMongo:
	case BackendPostgres:
		if c.DBURL == "" {
			errs = append(errs, ValidationError{"DB_URL", "required when STORE_BACKEND=postgres"})
		}
	default:
		errs = append(errs, ValidationError{"STORE_BACKEND", fmt.Sprintf("%v %q", ErrUnknownBackend, c.StoreBackend)})
	}

	if c.StoreBackend == BackendSQLite && c.SQLitePath == "" {
		errs = append(errs, ValidationError{"SQLITE_PATH", "required when STORE_BACKEND=sqlite"})
	}

	if _, err := time.LoadLocation(c.Timezone); err != nil {
		errs = append(errs, ValidationError{"TZ_NAME", err.Error()})
	}

	if c.PresignTTLMinutes <= 0 {
		errs = append(errs, ValidationError{"PHOTO_URL_TTL_MINUTES", "must be positive"})
	}

	if c.Env == Production {
		if c.AuthToken == "" {
			errs = append(errs, ValidationError{"AUTH_TOKEN", "required in production"})
		}
		if c.AuthUsername == "" || c.AuthPasswordHash == "" {
			errs = append(errs, ValidationError{"AUTH_USERNAME/AUTH_PASSWORD_HASH", "required in production"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Location returns the configured timezone, falling back to UTC.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
