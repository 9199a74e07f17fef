package format_test

import (
	"testing"

	"github.com/yacchi/kasane/format"
	"github.com/yacchi/kasane/format/json"
	"github.com/yacchi/kasane/format/jsonc"
	"github.com/yacchi/kasane/format/yaml"
)

func TestRegistry_ForFile(t *testing.T) {
	r := format.NewRegistry(json.New(), yaml.New())

	tests := []struct {
		file string
		want format.Name
		ok   bool
	}{
		{"default.json", format.JSON, true},
		{"DEFAULT.JSON", format.JSON, true},
		{"local.yaml", format.YAML, true},
		{"production.YML", format.YAML, true},
		{"production.toml", "", false},
		{"settings.jsonc", "", false},
		{"README", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			c, ok := r.ForFile(tt.file)
			if ok != tt.ok {
				t.Fatalf("ForFile(%q) ok = %v, want %v", tt.file, ok, tt.ok)
			}
			if ok && c.Name() != tt.want {
				t.Errorf("ForFile(%q) = %q, want %q", tt.file, c.Name(), tt.want)
			}
		})
	}
}

func TestRegistry_ByName(t *testing.T) {
	r := format.NewRegistry(json.New(), yaml.New())

	if c, ok := r.ByName("YAML"); !ok || c.Name() != format.YAML {
		t.Errorf("ByName(YAML) = %v, %v", c, ok)
	}
	if _, ok := r.ByName("toml"); ok {
		t.Error("ByName(toml) should not be found")
	}

	r.Register(jsonc.New())
	if c, ok := r.ForFile("settings.jsonc"); !ok || c.Name() != format.JSONC {
		t.Errorf("ForFile(settings.jsonc) after Register = %v, %v", c, ok)
	}

	want := []format.Name{format.JSON, format.YAML, format.JSONC}
	got := r.Names()
	if len(got) != len(want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
