// Package registry keeps named curve configurations and their constructed
// point encoders. A registry is populated once during initialization and then
// sealed; registration is at-most-once per name, and lookups are only
// permitted after the seal, so no locking is needed on the read path.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/hashfree/go-ecmap/internal/curvedata"
	"github.com/hashfree/go-ecmap/pkg/ecmap"
)

var (
	// ErrSealed is returned when registering into a sealed registry.
	ErrSealed = errors.New("registry: registry is sealed")

	// ErrNotSealed is returned when looking up before the registry is
	// sealed.
	ErrNotSealed = errors.New("registry: registry must be sealed before lookups")

	// ErrDuplicateName is returned when a curve name is registered twice.
	ErrDuplicateName = errors.New("registry: curve already registered")

	// ErrUnknownCurve is returned for lookups of unregistered names.
	ErrUnknownCurve = errors.New("registry: unknown curve")
)

// RegistrationError reports which curve entry failed to register and why.
type RegistrationError struct {
	Name string
	Err  error
}

func (e *RegistrationError) Error() string {
	return fmt.Sprintf("register curve %q: %v", e.Name, e.Err)
}

func (e *RegistrationError) Unwrap() error {
	return e.Err
}

// Registry maps curve names to constructed point encoders.
type Registry struct {
	mu       sync.Mutex
	sealed   atomic.Bool
	encoders map[string]ecmap.PointEncoder
}

// New returns an empty, unsealed registry.
func New() *Registry {
	return &Registry{encoders: make(map[string]ecmap.PointEncoder)}
}

// Register constructs a Map from cfg and stores it under name. A failed
// construction leaves no entry behind.
func (r *Registry) Register(name string, cfg ecmap.Config) error {
	m, err := ecmap.New(cfg)
	if err != nil {
		return &RegistrationError{Name: name, Err: err}
	}
	return r.add(name, m)
}

// RegisterIsogeny constructs an IsogenyMap from the isogenous curve's config
// and the injected isogeny, and stores it under name.
func (r *Registry) RegisterIsogeny(name string, cfg ecmap.Config, phi ecmap.Isogeny) error {
	m, err := ecmap.NewIsogenyMap(cfg, phi)
	if err != nil {
		return &RegistrationError{Name: name, Err: err}
	}
	return r.add(name, m)
}

func (r *Registry) add(name string, enc ecmap.PointEncoder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sealed.Load() {
		return &RegistrationError{Name: name, Err: ErrSealed}
	}
	if _, ok := r.encoders[name]; ok {
		return &RegistrationError{Name: name, Err: ErrDuplicateName}
	}
	r.encoders[name] = enc
	return nil
}

// Seal ends the registration phase. It is idempotent; after it returns, the
// contents are immutable and lookups proceed without locks.
func (r *Registry) Seal() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sealed.Store(true)
}

// Sealed reports whether the registration phase has ended.
func (r *Registry) Sealed() bool {
	return r.sealed.Load()
}

// Lookup returns the encoder registered under name. It fails with
// ErrNotSealed while registration is still open.
func (r *Registry) Lookup(name string) (ecmap.PointEncoder, error) {
	if !r.sealed.Load() {
		return nil, ErrNotSealed
	}
	enc, ok := r.encoders[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCurve, name)
	}
	return enc, nil
}

// Names returns the registered curve names in sorted order.
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.encoders))
	for name := range r.encoders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AddBuiltins registers the shipped curves into r: p256 and p384 run the
// pipeline directly, secp256k1 runs it on its 3-isogenous curve.
func AddBuiltins(r *Registry) error {
	if err := r.Register("p256", curvedata.P256()); err != nil {
		return err
	}
	if err := r.Register("p384", curvedata.P384()); err != nil {
		return err
	}
	cfg, phi, err := curvedata.Secp256k1()
	if err != nil {
		return err
	}
	return r.RegisterIsogeny("secp256k1", cfg, phi)
}

// Builtin returns a sealed registry holding only the shipped curves.
func Builtin() (*Registry, error) {
	r := New()
	if err := AddBuiltins(r); err != nil {
		return nil, err
	}
	r.Seal()
	return r, nil
}
