package annotations

import (
	"sort"
	"strings"
	"sync"
)

// MarkerRegistry defines the interface for managing marker schemas
type MarkerRegistry interface {
	// Register a new marker with its schema
	Register(schema MarkerSchema) error

	// AddAlias makes an additional attribute name resolve to a registered marker
	AddAlias(marker Marker, name string) error

	// GetSchema retrieves the schema for a marker
	GetSchema(marker Marker) (MarkerSchema, error)

	// ListMarkers returns all registered markers
	ListMarkers() []Marker

	// IsRegistered checks if a marker is registered
	IsRegistered(marker Marker) bool

	// Resolve maps an attribute name to a marker applicable to target
	Resolve(attributeName string, target Target) (Marker, bool)
}

// registry is the concrete implementation of MarkerRegistry
type registry struct {
	mu      sync.RWMutex
	schemas map[Marker]MarkerSchema
	names   map[string]Marker // normalized attribute name -> marker
}

// NewRegistry creates an empty marker registry
func NewRegistry() MarkerRegistry {
	return &registry{
		schemas: make(map[Marker]MarkerSchema),
		names:   make(map[string]Marker),
	}
}

// NewBuiltinRegistry creates a registry holding the built-in schemas
func NewBuiltinRegistry() MarkerRegistry {
	r := NewRegistry()
	if err := RegisterBuiltinSchemas(r); err != nil {
		panic(err)
	}
	return r
}

var (
	defaultRegistry     MarkerRegistry
	defaultRegistryOnce sync.Once
)

// DefaultRegistry returns the shared registry with the built-in schemas
func DefaultRegistry() MarkerRegistry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewBuiltinRegistry()
	})
	return defaultRegistry
}

// Register adds a marker schema to the registry
func (r *registry) Register(schema MarkerSchema) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.schemas[schema.Marker]; exists {
		return &RegistrationError{Marker: schema.Marker, Msg: "marker is already registered"}
	}

	if err := validateSchema(schema); err != nil {
		return err
	}

	names := append([]string{schema.ConventionName}, schema.Aliases...)
	for _, name := range names {
		if err := r.checkName(schema.Marker, name); err != nil {
			return err
		}
	}

	stored := schema
	stored.Aliases = append([]string(nil), schema.Aliases...)
	r.schemas[schema.Marker] = stored
	for _, name := range names {
		r.names[NormalizeName(name)] = schema.Marker
	}
	return nil
}

// AddAlias registers an extra attribute name for an existing marker
func (r *registry) AddAlias(marker Marker, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	schema, exists := r.schemas[marker]
	if !exists {
		return &RegistrationError{Marker: marker, Name: name, Msg: "marker is not registered"}
	}
	if strings.TrimSpace(name) == "" {
		return &RegistrationError{Marker: marker, Name: name, Msg: "alias cannot be empty"}
	}
	if err := r.checkName(marker, name); err != nil {
		return err
	}

	key := NormalizeName(name)
	if _, exists := r.names[key]; exists {
		return nil
	}
	schema.Aliases = append(schema.Aliases, name)
	r.schemas[marker] = schema
	r.names[key] = marker
	return nil
}

// GetSchema retrieves the schema for a marker
func (r *registry) GetSchema(marker Marker) (MarkerSchema, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	schema, exists := r.schemas[marker]
	if !exists {
		return MarkerSchema{}, &RegistrationError{Marker: marker, Msg: "marker is not registered"}
	}
	return schema, nil
}

// ListMarkers returns all registered markers in ascending order
func (r *registry) ListMarkers() []Marker {
	r.mu.RLock()
	defer r.mu.RUnlock()

	markers := make([]Marker, 0, len(r.schemas))
	for m := range r.schemas {
		markers = append(markers, m)
	}
	sort.Slice(markers, func(i, j int) bool { return markers[i] < markers[j] })
	return markers
}

// IsRegistered checks if a marker is registered
func (r *registry) IsRegistered(marker Marker) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.schemas[marker]
	return exists
}

// Resolve maps an attribute name to its marker. Matching is case-sensitive on
// the last segment of a qualified name, with or without the "Attribute" suffix.
func (r *registry) Resolve(attributeName string, target Target) (Marker, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	marker, ok := r.names[NormalizeName(attributeName)]
	if !ok {
		return 0, false
	}
	if !r.schemas[marker].Targets.Allows(target) {
		return 0, false
	}
	return marker, true
}

// checkName rejects a name already bound to a different marker. Callers hold the lock.
func (r *registry) checkName(marker Marker, name string) error {
	if existing, taken := r.names[NormalizeName(name)]; taken && existing != marker {
		return &RegistrationError{
			Marker: marker,
			Name:   name,
			Msg:    "name already resolves to " + existing.String(),
		}
	}
	return nil
}

func validateSchema(schema MarkerSchema) error {
	if strings.TrimSpace(schema.ConventionName) == "" {
		return &SchemaError{Marker: schema.Marker, Msg: "convention name cannot be empty"}
	}
	if schema.Targets == 0 {
		return &SchemaError{
			Marker: schema.Marker,
			Msg:    "schema must allow at least one target",
			Hint:   "set Targets to MemberTargets or ConstructorTarget",
		}
	}
	return nil
}
