package annotations

// Built-in marker schemas

// InjectedDependencySchema opts fields and properties into injection
var InjectedDependencySchema = MarkerSchema{
	Marker:         InjectedMarker,
	ConventionName: "InjectedDependency",
	Description:    "Marks a field or property as a constructor-injected dependency",
	Targets:        MemberTargets,
	Examples: []string{
		"[InjectedDependency] public IClock Clock { get; }",
		"[InjectedDependencyAttribute] private IClock _clock;",
	},
}

// ExcludeFromInjectedDependenciesSchema opts readonly fields out of injection
var ExcludeFromInjectedDependenciesSchema = MarkerSchema{
	Marker:         ExcludedMarker,
	ConventionName: "ExcludeFromInjectedDependencies",
	Description:    "Excludes a member that would otherwise be injected",
	Targets:        MemberTargets,
	Examples: []string{
		"[ExcludeFromInjectedDependencies] private readonly ILogger _log;",
	},
}

// DependencyInjectionConstructorSchema designates the constructor receiving injected parameters
var DependencyInjectionConstructorSchema = MarkerSchema{
	Marker:         DesignatedMarker,
	ConventionName: "DependencyInjectionConstructor",
	Description:    "Designates the constructor that receives injected parameters",
	Targets:        ConstructorTarget,
	Examples: []string{
		"[DependencyInjectionConstructor] public Service(int retries) : this()",
	},
}

// BuiltinSchemas returns the schemas every registry starts with
func BuiltinSchemas() []MarkerSchema {
	return []MarkerSchema{
		InjectedDependencySchema,
		ExcludeFromInjectedDependenciesSchema,
		DependencyInjectionConstructorSchema,
	}
}

// RegisterBuiltinSchemas registers the built-in schemas with the given registry
func RegisterBuiltinSchemas(registry MarkerRegistry) error {
	for _, schema := range BuiltinSchemas() {
		if registry.IsRegistered(schema.Marker) {
			continue
		}
		if err := registry.Register(schema); err != nil {
			return err
		}
	}
	return nil
}
