package kasane

import (
	"github.com/mitchellh/mapstructure"
	"github.com/yacchi/kasane/container"
)

// newDecoder returns a mapstructure decoder writing into target.
// Strings are weakly converted to numbers and booleans, and durations such as
// "30s" decode into time.Duration fields.
func newDecoder(target any) (*mapstructure.Decoder, error) {
	return mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		WeaklyTypedInput: true,
		TagName:          "mapstructure",
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
}

// Decode decodes the configuration into target, which must be a pointer.
// Struct fields are matched using `mapstructure` tags.
//
// Example:
//
//	type Config struct {
//	  Server struct {
//	    Host string `mapstructure:"host"`
//	    Port int    `mapstructure:"port"`
//	  } `mapstructure:"server"`
//	}
//
//	var cfg Config
//	if err := store.Decode(&cfg); err != nil {
//	  log.Fatal(err)
//	}
func (s *Store) Decode(target any) error {
	dec, err := newDecoder(target)
	if err != nil {
		return err
	}
	return dec.Decode(container.DeepCopyMap(s.config))
}

// Get queries the store and decodes the result into T.
// The boolean reports whether the expression matched a value.
//
// Example:
//
//	port, ok, err := kasane.Get[int](store, "server.port")
func Get[T any](s *Store, expression string) (T, bool, error) {
	var result T

	v, err := s.Query(expression)
	if err != nil || v == nil {
		return result, false, err
	}

	dec, err := newDecoder(&result)
	if err != nil {
		return result, false, err
	}
	if err := dec.Decode(v); err != nil {
		return result, false, err
	}
	return result, true, nil
}
