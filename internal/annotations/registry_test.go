package annotations

import (
	"fmt"
	"sync"
	"testing"
)

func TestNewRegistry(t *testing.T) {
	registry := NewRegistry()
	if registry == nil {
		t.Fatal("NewRegistry() returned nil")
	}

	// Should start empty
	if markers := registry.ListMarkers(); len(markers) != 0 {
		t.Errorf("Expected empty registry, got %d markers", len(markers))
	}
}

func TestDefaultRegistry(t *testing.T) {
	registry1 := DefaultRegistry()
	registry2 := DefaultRegistry()

	if registry1 != registry2 {
		t.Error("DefaultRegistry() should return the same instance")
	}

	for _, m := range []Marker{InjectedMarker, ExcludedMarker, DesignatedMarker} {
		if !registry1.IsRegistered(m) {
			t.Errorf("Expected builtin marker %s to be registered", m)
		}
	}
}

func TestRegister(t *testing.T) {
	registry := NewRegistry()

	if err := registry.Register(InjectedDependencySchema); err != nil {
		t.Fatalf("Failed to register schema: %v", err)
	}

	if !registry.IsRegistered(InjectedMarker) {
		t.Error("Schema should be registered")
	}

	// Should not allow duplicate registration
	if err := registry.Register(InjectedDependencySchema); err == nil {
		t.Error("Expected error when registering duplicate schema")
	}

	schema, err := registry.GetSchema(InjectedMarker)
	if err != nil {
		t.Fatalf("GetSchema failed: %v", err)
	}
	if schema.ConventionName != "InjectedDependency" {
		t.Errorf("Expected convention name InjectedDependency, got %s", schema.ConventionName)
	}
}

func TestRegisterInvalidSchema(t *testing.T) {
	tests := []struct {
		name   string
		schema MarkerSchema
	}{
		{
			name:   "empty convention name",
			schema: MarkerSchema{Marker: InjectedMarker, Targets: MemberTargets},
		},
		{
			name:   "no targets",
			schema: MarkerSchema{Marker: InjectedMarker, ConventionName: "Inject"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewRegistry().Register(tt.schema)
			if err == nil {
				t.Fatal("Expected schema error")
			}
			if _, ok := err.(*SchemaError); !ok {
				t.Errorf("Expected *SchemaError, got %T", err)
			}
		})
	}
}

func TestRegisterConflictingName(t *testing.T) {
	registry := NewRegistry()
	if err := registry.Register(InjectedDependencySchema); err != nil {
		t.Fatal(err)
	}

	conflicting := ExcludeFromInjectedDependenciesSchema
	conflicting.Aliases = []string{"InjectedDependencyAttribute"}
	err := registry.Register(conflicting)
	if err == nil {
		t.Fatal("Expected conflict when alias resolves to another marker")
	}
	if registry.IsRegistered(ExcludedMarker) {
		t.Error("Failed registration must not leave the marker registered")
	}
}

func TestResolve(t *testing.T) {
	registry := NewBuiltinRegistry()

	tests := []struct {
		name     string
		attr     string
		target   Target
		expected Marker
		ok       bool
	}{
		{"simple name", "InjectedDependency", FieldTarget, InjectedMarker, true},
		{"with suffix", "InjectedDependencyAttribute", PropertyTarget, InjectedMarker, true},
		{"qualified", "Company.Di.InjectedDependencyAttribute", FieldTarget, InjectedMarker, true},
		{"global alias", "global::Di.ExcludeFromInjectedDependencies", FieldTarget, ExcludedMarker, true},
		{"verbatim identifier", "@InjectedDependency", FieldTarget, InjectedMarker, true},
		{"constructor marker", "DependencyInjectionConstructor", ConstructorTarget, DesignatedMarker, true},
		{"constructor marker on field", "DependencyInjectionConstructor", FieldTarget, 0, false},
		{"member marker on constructor", "InjectedDependency", ConstructorTarget, 0, false},
		{"case sensitive", "injecteddependency", FieldTarget, 0, false},
		{"unknown", "Obsolete", FieldTarget, 0, false},
		{"double suffix", "InjectedDependencyAttributeAttribute", FieldTarget, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			marker, ok := registry.Resolve(tt.attr, tt.target)
			if ok != tt.ok {
				t.Fatalf("Resolve(%q) ok = %v, want %v", tt.attr, ok, tt.ok)
			}
			if ok && marker != tt.expected {
				t.Errorf("Resolve(%q) = %s, want %s", tt.attr, marker, tt.expected)
			}
		})
	}
}

func TestAddAlias(t *testing.T) {
	registry := NewBuiltinRegistry()

	if err := registry.AddAlias(InjectedMarker, "Inject"); err != nil {
		t.Fatalf("AddAlias failed: %v", err)
	}
	if marker, ok := registry.Resolve("InjectAttribute", FieldTarget); !ok || marker != InjectedMarker {
		t.Errorf("Expected alias to resolve to Injected, got %s (%v)", marker, ok)
	}

	// Re-adding the same alias is a no-op
	if err := registry.AddAlias(InjectedMarker, "Inject"); err != nil {
		t.Errorf("Re-adding alias should not fail: %v", err)
	}
	schema, _ := registry.GetSchema(InjectedMarker)
	if len(schema.Aliases) != 1 {
		t.Errorf("Expected one alias, got %v", schema.Aliases)
	}

	if err := registry.AddAlias(ExcludedMarker, "Inject"); err == nil {
		t.Error("Expected conflict for alias bound to another marker")
	}
	if err := registry.AddAlias(InjectedMarker, " "); err == nil {
		t.Error("Expected error for empty alias")
	}
	if err := NewRegistry().AddAlias(InjectedMarker, "Inject"); err == nil {
		t.Error("Expected error for unregistered marker")
	}
}

func TestRegistryConcurrentAccess(t *testing.T) {
	registry := NewBuiltinRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			_ = registry.AddAlias(InjectedMarker, fmt.Sprintf("Inject%d", i))
		}(i)
		go func() {
			defer wg.Done()
			if _, ok := registry.Resolve("InjectedDependency", FieldTarget); !ok {
				t.Error("builtin marker should always resolve")
			}
		}()
	}
	wg.Wait()

	schema, _ := registry.GetSchema(InjectedMarker)
	if len(schema.Aliases) != 20 {
		t.Errorf("Expected 20 aliases, got %d", len(schema.Aliases))
	}
}

func TestMarkerSet(t *testing.T) {
	set := NewMarkerSet(InjectedMarker, DesignatedMarker)

	if !set.Has(InjectedMarker) || !set.Has(DesignatedMarker) {
		t.Errorf("Expected set to contain Injected and Designated, got %s", set)
	}
	if set.Has(ExcludedMarker) {
		t.Error("Set should not contain Excluded")
	}
	if got := set.String(); got != "{Injected,Designated}" {
		t.Errorf("Unexpected String(): %s", got)
	}
	if !MarkerSet(0).IsEmpty() {
		t.Error("Zero set should be empty")
	}
}

func TestParseMarker(t *testing.T) {
	for _, name := range []string{"injected", "Excluded", "DESIGNATED"} {
		if _, err := ParseMarker(name); err != nil {
			t.Errorf("ParseMarker(%q) failed: %v", name, err)
		}
	}
	if _, err := ParseMarker("lifetime"); err == nil {
		t.Error("Expected error for unknown marker name")
	}
}
