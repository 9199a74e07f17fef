package kasane

import (
	"strings"

	"github.com/caarlos0/env/v11"
)

// DefaultEnvironment is the environment used when none is configured.
const DefaultEnvironment = "development"

// DefaultEnvPrefix is the prefix of the environment variable naming the
// active environment. The full variable name is the prefix followed by
// "ENV", so the default variable is APP_ENV.
const DefaultEnvPrefix = "APP_"

// envSettings is parsed from the process environment on every
// Environment call.
type envSettings struct {
	Name string `env:"ENV"`
}

// Environment returns the active environment name.
//
// Resolution order:
//  1. the name set with WithEnvironment
//  2. the <prefix>ENV variable (APP_ENV by default), read from the process
//     environment or from the map set with WithEnviron
//  3. DefaultEnvironment
func (s *Store) Environment() string {
	if s.environment != "" {
		return s.environment
	}

	// A nil Environment makes env read os.Environ.
	opts := env.Options{Prefix: s.envPrefix, Environment: s.environ}

	var settings envSettings
	if err := env.ParseWithOptions(&settings, opts); err != nil {
		s.logger.Warn().Err(err).Str("variable", s.EnvVar()).Msg("failed to read environment variable")
		return DefaultEnvironment
	}

	name := strings.TrimSpace(settings.Name)
	if name == "" {
		return DefaultEnvironment
	}
	return name
}

// EnvVar returns the name of the environment variable consulted by
// Environment.
func (s *Store) EnvVar() string {
	return s.envPrefix + "ENV"
}
