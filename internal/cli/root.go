// Package cli implements the kasane command line tool.
package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/yacchi/kasane"
	"github.com/yacchi/kasane/format"
	"github.com/yacchi/kasane/format/jsonc"
	"github.com/yacchi/kasane/format/toml"
	"github.com/yacchi/kasane/query"
)

// Version is injected during build.
var Version = "dev"

// globalOptions holds the persistent flags shared by all subcommands.
type globalOptions struct {
	dir       string
	env       string
	envPrefix string
	logLevel  string
	formats   []string
}

// EnvPrefix is the prefix of the environment variables that provide
// defaults for the global flags (KASANE_DIR, KASANE_LOG_LEVEL, ...).
const EnvPrefix = "KASANE"

// boundFlags are the global flags that can be set through the environment.
var boundFlags = []string{"dir", "env", "env-prefix", "log-level", "with-formats"}

// bind resolves the global flags, falling back to KASANE_* variables for
// flags not set on the command line.
func (o *globalOptions) bind(cmd *cobra.Command) error {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	for _, name := range boundFlags {
		if err := v.BindPFlag(name, cmd.Flags().Lookup(name)); err != nil {
			return fmt.Errorf("failed to bind flag %q: %w", name, err)
		}
	}

	o.dir = v.GetString("dir")
	o.env = v.GetString("env")
	o.envPrefix = v.GetString("env-prefix")
	o.logLevel = v.GetString("log-level")
	o.formats = v.GetStringSlice("with-formats")
	return nil
}

// optionalCodecs are the codecs that --with-formats can enable.
var optionalCodecs = map[string]func() format.Codec{
	string(format.TOML):  func() format.Codec { return toml.New() },
	string(format.JSONC): func() format.Codec { return jsonc.New() },
}

// NewRootCommand builds the kasane command tree.
func NewRootCommand() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:   "kasane",
		Short: "kasane merges layered configuration directories",
		Long: `kasane loads a directory of configuration files and merges them in tier order:

  default.*        lowest priority
  local.*
  <environment>.*  highest priority

The environment is read from APP_ENV (see --env-prefix) and defaults to "development".

Global flags can also be set with KASANE_* variables, e.g. KASANE_DIR or KASANE_LOG_LEVEL.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.bind(cmd)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.dir, "dir", "d", "config", "Configuration directory")
	flags.StringVarP(&opts.env, "env", "e", "", "Environment name (overrides the environment variable)")
	flags.StringVar(&opts.envPrefix, "env-prefix", kasane.DefaultEnvPrefix, "Prefix of the <prefix>ENV variable")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	flags.StringSliceVar(&opts.formats, "with-formats", nil, "Additional formats to load and save (toml, jsonc)")

	cmd.AddCommand(
		newShowCommand(opts),
		newQueryCommand(opts),
		newSaveCommand(opts),
		newEnvCommand(opts),
		newLayersCommand(opts),
	)

	return cmd
}

// Execute runs the command tree with args.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cmd := NewRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	return cmd.ExecuteContext(ctx)
}

// newLogger returns a console logger writing to w at the named level.
func newLogger(w io.Writer, level string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true}).
		Level(lvl).
		With().
		Timestamp().
		Logger(), nil
}

// newStore builds a store from the global flags plus extra options.
func newStore(cmd *cobra.Command, opts *globalOptions, extra ...kasane.StoreOption) (*kasane.Store, error) {
	logger, err := newLogger(cmd.ErrOrStderr(), opts.logLevel)
	if err != nil {
		return nil, err
	}

	storeOpts := []kasane.StoreOption{
		kasane.WithLogger(logger),
		kasane.WithEnvPrefix(opts.envPrefix),
		kasane.WithEnvironment(opts.env),
	}
	for _, name := range opts.formats {
		newCodec, ok := optionalCodecs[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return nil, fmt.Errorf("%w: %q", kasane.ErrUnsupportedFormat, name)
		}
		storeOpts = append(storeOpts, kasane.WithCodec(newCodec()))
	}

	return kasane.New(append(storeOpts, extra...)...), nil
}

// loadStore builds a store and loads the configuration directory.
func loadStore(cmd *cobra.Command, opts *globalOptions, extra ...kasane.StoreOption) (*kasane.Store, error) {
	store, err := newStore(cmd, opts, extra...)
	if err != nil {
		return nil, err
	}
	if err := store.Load(cmd.Context(), opts.dir); err != nil {
		return nil, err
	}
	return store, nil
}

// evaluatorFor maps an --engine value to a query evaluator.
func evaluatorFor(engine string) (query.Evaluator, error) {
	switch strings.ToLower(engine) {
	case "", "jsonpath":
		return query.JSONPath(), nil
	case "expr":
		return query.Expr(), nil
	case "pointer":
		return query.Pointer(), nil
	default:
		return nil, fmt.Errorf("unknown query engine %q (want jsonpath, expr or pointer)", engine)
	}
}
