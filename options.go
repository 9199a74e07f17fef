package kasane

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/yacchi/kasane/format"
	"github.com/yacchi/kasane/query"
	"github.com/yacchi/kasane/source/fs"
)

// StoreOption is a functional option for configuring Store creation.
type StoreOption func(*storeOptions)

// storeOptions holds the options for New.
type storeOptions struct {
	environment string
	envPrefix   string
	environ     map[string]string
	logger      zerolog.Logger
	evaluator   query.Evaluator
	codecs      []format.Codec
	fileMode    os.FileMode
}

// WithEnvironment fixes the environment name, bypassing the environment
// variable. An empty name is ignored.
func WithEnvironment(name string) StoreOption {
	return func(o *storeOptions) {
		o.environment = name
	}
}

// WithEnvPrefix sets the prefix of the environment variable that names the
// active environment. The variable is prefix + "ENV".
// Default is "APP_" (APP_ENV).
//
// Example:
//
//	kasane.New(kasane.WithEnvPrefix("MYAPP_")) // reads MYAPP_ENV
//	kasane.New(kasane.WithEnvPrefix("NODE_"))  // reads NODE_ENV
func WithEnvPrefix(prefix string) StoreOption {
	return func(o *storeOptions) {
		o.envPrefix = prefix
	}
}

// WithEnviron sets the variables consulted instead of the process
// environment. Useful for tests.
func WithEnviron(environ map[string]string) StoreOption {
	return func(o *storeOptions) {
		o.environ = environ
	}
}

// WithLogger sets the logger. The default discards all output.
func WithLogger(logger zerolog.Logger) StoreOption {
	return func(o *storeOptions) {
		o.logger = logger
	}
}

// WithEvaluator sets the query evaluator. Default is query.JSONPath().
//
// Example:
//
//	store := kasane.New(kasane.WithEvaluator(query.Expr()))
func WithEvaluator(e query.Evaluator) StoreOption {
	return func(o *storeOptions) {
		o.evaluator = e
	}
}

// WithCodec registers an additional codec. A codec whose name or extension
// matches a built-in one replaces it.
//
// Example:
//
//	store := kasane.New(kasane.WithCodec(toml.New()), kasane.WithCodec(jsonc.New()))
func WithCodec(c format.Codec) StoreOption {
	return func(o *storeOptions) {
		o.codecs = append(o.codecs, c)
	}
}

// WithFileMode sets the permission mode of files written by Save.
// Default is 0644.
func WithFileMode(mode os.FileMode) StoreOption {
	return func(o *storeOptions) {
		o.fileMode = mode
	}
}

func defaultStoreOptions() storeOptions {
	return storeOptions{
		envPrefix: DefaultEnvPrefix,
		logger:    zerolog.Nop(),
		evaluator: query.JSONPath(),
		fileMode:  fs.DefaultFileMode,
	}
}
