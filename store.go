package kasane

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/yacchi/kasane/container"
	"github.com/yacchi/kasane/format"
	"github.com/yacchi/kasane/format/json"
	"github.com/yacchi/kasane/format/yaml"
	"github.com/yacchi/kasane/layer"
	"github.com/yacchi/kasane/query"
	"github.com/yacchi/kasane/source/fs"
)

var osStat = os.Stat

// LayerInfo describes a file merged by the last Load.
type LayerInfo struct {
	// Name is the file name.
	Name layer.Name
	// Path is the file path.
	Path string
	// Priority is the file's tier.
	Priority layer.Priority
	// Format is the format the file was parsed as.
	Format format.Name
}

// Store holds the merged configuration of a configuration directory.
//
// A Store is not safe for concurrent use; callers must serialize access.
type Store struct {
	// config is the merged configuration
	config map[string]any

	// root is the directory recorded by the last Load
	root string

	// layers describes the files merged by the last Load, in merge order
	layers []LayerInfo

	environment string
	envPrefix   string
	environ     map[string]string
	logger      zerolog.Logger
	evaluator   query.Evaluator
	registry    *format.Registry
	fileMode    os.FileMode
}

// New creates an empty Store.
//
// Options:
//   - WithEnvironment(name): fix the environment name
//   - WithEnvPrefix(prefix): environment variable prefix (default: "APP_")
//   - WithEnviron(vars): variables used instead of the process environment
//   - WithLogger(logger): zerolog logger (default: disabled)
//   - WithEvaluator(e): query evaluator (default: query.JSONPath())
//   - WithCodec(c): register an additional format
//   - WithFileMode(mode): mode of saved files (default: 0644)
//
// Example:
//
//	store := kasane.New()
//	store := kasane.New(kasane.WithEnvironment("production"), kasane.WithCodec(toml.New()))
func New(opts ...StoreOption) *Store {
	options := defaultStoreOptions()
	for _, opt := range opts {
		opt(&options)
	}

	registry := format.NewRegistry(json.New(), yaml.New())
	for _, c := range options.codecs {
		registry.Register(c)
	}

	return &Store{
		config:      make(map[string]any),
		environment: options.environment,
		envPrefix:   options.envPrefix,
		environ:     options.environ,
		logger:      options.logger,
		evaluator:   options.evaluator,
		registry:    registry,
		fileMode:    options.fileMode,
	}
}

// Load merges the configuration files of dir into the store.
//
// Files whose names start with "default", "local" or the active environment
// name are merged in tier order (default, local, environment); files of the
// same tier are merged in directory listing order. Files without a
// registered codec are read and ignored. Load merges on top of the current
// configuration; use Reset to start from an empty one.
//
// Load returns an error wrapping ErrPathNotFound or ErrNotADirectory when dir
// is not a directory, and a *ParseError for malformed files. A parse error
// stops the sequence; files merged before it stay merged.
//
// Example:
//
//	if err := store.Load(ctx, "config"); err != nil {
//	  log.Fatal(err)
//	}
func (s *Store) Load(ctx context.Context, dir string) error {
	path, err := fs.ExpandTilde(dir)
	if err != nil {
		return err
	}

	info, err := osStat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrPathNotFound, dir)
		}
		return fmt.Errorf("failed to access %q: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrNotADirectory, dir)
	}

	s.root = path
	s.layers = nil

	env := s.Environment()
	candidates, err := layer.Discover(path, env)
	if err != nil {
		return err
	}

	s.logger.Debug().
		Str("dir", path).
		Str("environment", env).
		Int("candidates", len(candidates)).
		Msg("loading configuration directory")

	for _, c := range candidates {
		if err := ctx.Err(); err != nil {
			return err
		}

		src := fs.New(c.Path)
		codec, ok := s.registry.ForFile(c.FileName)
		if !ok {
			if _, err := src.Load(ctx); err != nil {
				return err
			}
			s.logger.Debug().Str("file", c.FileName).Msg("no codec for file, skipped")
			continue
		}

		l := layer.New(layer.Name(c.FileName), c.Priority, src, codec)
		data, err := l.Load(ctx)
		if err != nil {
			var decodeErr *layer.DecodeError
			if errors.As(err, &decodeErr) {
				return &ParseError{Path: c.Path, Format: decodeErr.Format, Err: decodeErr.Err}
			}
			return err
		}

		container.MergeInto(s.config, data)
		s.layers = append(s.layers, LayerInfo{
			Name:     l.Name(),
			Path:     c.Path,
			Priority: l.Priority(),
			Format:   l.Format(),
		})

		s.logger.Debug().
			Str("file", c.FileName).
			Stringer("priority", c.Priority).
			Str("format", string(l.Format())).
			Msg("merged configuration layer")
	}

	return nil
}

// Update deep-merges data into the configuration. Nested mappings are merged
// key by key; any other value replaces the existing one. data is not
// modified and is not retained.
//
// Example:
//
//	store.Update(map[string]any{"server": map[string]any{"port": 9000}})
func (s *Store) Update(data map[string]any) {
	s.config = container.Merge(s.config, container.NormalizeMap(data))
}

// Config returns a deep copy of the merged configuration.
func (s *Store) Config() map[string]any {
	return container.DeepCopyMap(s.config)
}

// Root returns the directory recorded by the last Load.
func (s *Store) Root() string {
	return s.root
}

// Layers returns the files merged by the last Load, in merge order.
func (s *Store) Layers() []LayerInfo {
	return append([]LayerInfo(nil), s.layers...)
}

// Reset clears the configuration, the root and the layer list.
func (s *Store) Reset() {
	s.config = make(map[string]any)
	s.root = ""
	s.layers = nil
}

// ToJSON returns the configuration as a compact JSON document.
func (s *Store) ToJSON() (string, error) {
	b, err := s.encode(format.JSON)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ToYAML returns the configuration as a block-style YAML document.
func (s *Store) ToYAML() (string, error) {
	b, err := s.encode(format.YAML)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Encode returns the configuration serialized in the named format.
func (s *Store) Encode(name string) ([]byte, error) {
	codec, ok := s.registry.ByName(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}
	return codec.Encode(s.config)
}

func (s *Store) encode(name format.Name) ([]byte, error) {
	return s.Encode(string(name))
}

// Save writes the configuration to <root>/<environment>.<ext>, replacing any
// existing file.
//
// With no argument, or "yaml", the YAML document is written to <env>.yaml;
// with "json" the JSON document is written to <env>.json. Format names are
// case-insensitive. Other names return ErrUnsupportedFormat unless a codec
// with that name was registered with WithCodec. Write failures, including a
// missing root directory, are returned as *WriteError.
//
// Example:
//
//	store.Save(ctx)          // config/development.yaml
//	store.Save(ctx, "JSON")  // config/development.json
func (s *Store) Save(ctx context.Context, formatName ...string) error {
	name := string(format.YAML)
	if len(formatName) > 0 && formatName[0] != "" {
		name = formatName[0]
	}

	codec, ok := s.registry.ByName(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}

	path := filepath.Join(s.root, s.Environment()+codec.Extensions()[0])
	return s.write(ctx, path, codec)
}

// SaveTo writes the configuration to path, choosing the format from the
// file extension.
func (s *Store) SaveTo(ctx context.Context, path string) error {
	codec, ok := s.registry.ForFile(path)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
	return s.write(ctx, path, codec)
}

func (s *Store) write(ctx context.Context, path string, codec format.Codec) error {
	data, err := codec.Encode(s.config)
	if err != nil {
		return err
	}

	if err := fs.New(path, fs.WithFileMode(s.fileMode)).Save(ctx, data); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return &WriteError{Path: path, Err: err}
	}

	s.logger.Debug().Str("path", path).Str("format", string(codec.Name())).Msg("saved configuration")
	return nil
}

// Query evaluates expression against the configuration and returns the
// selected value, or nil when nothing matches. Several matches are returned
// as []any. The returned value is a copy.
//
// Example:
//
//	port, err := store.Query("server.port") // 8080
func (s *Store) Query(expression string) (any, error) {
	v, ok, err := s.evaluator.Evaluate(expression, s.config)
	if err != nil {
		return nil, &QueryError{Expression: expression, Err: err}
	}
	if !ok {
		return nil, nil
	}
	return container.DeepCopyValue(v), nil
}
