package annotations

// Resolver turns the attributes found on a declaration into markers
type Resolver struct {
	registry MarkerRegistry
}

// NewResolver creates a resolver backed by the given registry
func NewResolver(registry MarkerRegistry) *Resolver {
	if registry == nil {
		registry = DefaultRegistry()
	}
	return &Resolver{registry: registry}
}

// Markers resolves every attribute applicable to target. Unknown attributes are ignored.
func (r *Resolver) Markers(attrs []Attribute, target Target) MarkerSet {
	var set MarkerSet
	for _, attr := range attrs {
		if marker, ok := r.registry.Resolve(attr.Name, target); ok {
			set = set.With(marker)
		}
	}
	return set
}

// Registry returns the registry backing the resolver
func (r *Resolver) Registry() MarkerRegistry {
	return r.registry
}
