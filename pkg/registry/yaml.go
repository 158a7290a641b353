package registry

import (
	"fmt"
	"math/big"
	"os"

	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"

	"github.com/hashfree/go-ecmap/pkg/ecmap"
)

// curveEntry is one row of an external curve table. Numeric fields are
// decimal or 0x-prefixed hex strings.
type curveEntry struct {
	Name     string `yaml:"name"`
	Modulus  string `yaml:"modulus"`
	A        string `yaml:"a"`
	B        string `yaml:"b"`
	Cofactor string `yaml:"cofactor"`
	AnchorX  string `yaml:"anchor_x"`
	AnchorY  string `yaml:"anchor_y"`
	Delta    string `yaml:"delta"`
}

type curveTable struct {
	Curves []curveEntry `yaml:"curves"`
}

// LoadFile registers every curve of a YAML table. The load is atomic: all
// entries are constructed and validated first, and nothing is registered if
// any of them fails. Per-entry failures are aggregated in the returned error.
func (r *Registry) LoadFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("registry: read curve table: %w", err)
	}
	return r.LoadYAML(raw)
}

// LoadYAML registers every curve of an in-memory YAML table, with the same
// atomicity as LoadFile.
func (r *Registry) LoadYAML(raw []byte) error {
	var table curveTable
	if err := yaml.Unmarshal(raw, &table); err != nil {
		return fmt.Errorf("registry: parse curve table: %w", err)
	}

	var errs *multierror.Error
	type built struct {
		name string
		enc  ecmap.PointEncoder
	}
	encoders := make([]built, 0, len(table.Curves))

	for _, entry := range table.Curves {
		cfg, err := entry.config()
		if err == nil {
			var m *ecmap.Map
			if m, err = ecmap.New(cfg); err == nil {
				encoders = append(encoders, built{name: entry.Name, enc: m})
				continue
			}
		}
		errs = multierror.Append(errs, &RegistrationError{Name: entry.Name, Err: err})
	}
	if err := errs.ErrorOrNil(); err != nil {
		return err
	}

	for _, b := range encoders {
		if err := r.add(b.name, b.enc); err != nil {
			errs = multierror.Append(errs, err)
		}
	}
	return errs.ErrorOrNil()
}

func (e *curveEntry) config() (ecmap.Config, error) {
	if e.Name == "" {
		return ecmap.Config{}, fmt.Errorf("curve table entry has no name")
	}
	cfg := ecmap.Config{}
	fields := []struct {
		name     string
		raw      string
		dst      **big.Int
		required bool
	}{
		{"modulus", e.Modulus, &cfg.Modulus, true},
		{"a", e.A, &cfg.A, true},
		{"b", e.B, &cfg.B, true},
		{"cofactor", e.Cofactor, &cfg.Cofactor, false},
		{"anchor_x", e.AnchorX, &cfg.AnchorX, true},
		{"anchor_y", e.AnchorY, &cfg.AnchorY, false},
		{"delta", e.Delta, &cfg.Delta, false},
	}
	for _, f := range fields {
		if f.raw == "" {
			if f.required {
				return ecmap.Config{}, fmt.Errorf("field %s is required", f.name)
			}
			continue
		}
		v, ok := new(big.Int).SetString(f.raw, 0)
		if !ok {
			return ecmap.Config{}, fmt.Errorf("field %s: cannot parse %q", f.name, f.raw)
		}
		*f.dst = v
	}
	return cfg, nil
}
