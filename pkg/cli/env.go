package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"

	"github.com/Fepozopo/shotframe/pkg/frame"
	"github.com/Fepozopo/shotframe/pkg/pipeline"
)

// Environment variables read by LoadDefaults. Values from the process
// environment win over values from .env files; command line flags win over
// both.
const (
	EnvMargin   = "SHOTFRAME_MARGIN"
	EnvRadius   = "SHOTFRAME_RADIUS"
	EnvFill     = "SHOTFRAME_FILL"
	EnvCorners  = "SHOTFRAME_CORNERS"
	EnvFuzz     = "SHOTFRAME_FUZZ"
	EnvLogLevel = "SHOTFRAME_LOG_LEVEL"
)

// Defaults are the values used for flags that were not set explicitly.
type Defaults struct {
	Margin   frame.Margin
	Radius   int
	Fill     frame.Color
	Corners  frame.Corner
	Fuzz     float64
	LogLevel logger.Level
}

// BuiltinDefaults is what LoadDefaults starts from.
func BuiltinDefaults() Defaults {
	return Defaults{
		Radius:   10,
		Fill:     pipeline.DefaultFill,
		Corners:  frame.AllCorners,
		LogLevel: logger.LevelWarning,
	}
}

// LoadDefaults loads the given .env files (".env" when none are given;
// missing files are skipped) and parses the SHOTFRAME_* variables.
func LoadDefaults(envFiles ...string) (Defaults, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	var present []string
	for _, f := range envFiles {
		if _, err := os.Stat(f); err == nil {
			present = append(present, f)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return BuiltinDefaults(), fmt.Errorf("unable to stat %q: %w", f, err)
		}
	}
	if len(present) > 0 {
		if err := godotenv.Load(present...); err != nil {
			return BuiltinDefaults(), fmt.Errorf("unable to load env files %v: %w", present, err)
		}
	}
	return defaultsFromEnv(os.LookupEnv)
}

func defaultsFromEnv(lookup func(string) (string, bool)) (Defaults, error) {
	d := BuiltinDefaults()
	var result *multierror.Error
	parse := func(key string, fn func(string) error) {
		v, ok := lookup(key)
		if !ok || v == "" {
			return
		}
		if err := fn(v); err != nil {
			result = multierror.Append(result, fmt.Errorf("%s=%q: %w", key, v, err))
		}
	}

	parse(EnvMargin, func(v string) (err error) {
		d.Margin, err = frame.ParseMargin(v)
		return
	})
	parse(EnvRadius, func(v string) (err error) {
		d.Radius, err = strconv.Atoi(v)
		return
	})
	parse(EnvFill, func(v string) (err error) {
		d.Fill, err = frame.ParseColor(v)
		return
	})
	parse(EnvCorners, func(v string) (err error) {
		d.Corners, err = frame.ParseCorners(v)
		return
	})
	parse(EnvFuzz, func(v string) (err error) {
		d.Fuzz, err = pipeline.ParseFuzz(v)
		return
	})
	parse(EnvLogLevel, func(v string) error {
		return d.LogLevel.Set(v)
	})

	return d, result.ErrorOrNil()
}
