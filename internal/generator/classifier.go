package generator

import (
	"github.com/toyz/ctorgen/internal/annotations"
	"github.com/toyz/ctorgen/internal/models"
)

// IsInjectable reports whether a member must be supplied through the constructor.
// A member qualifies when it has no initializer, is not excluded, and is either a
// readonly field or carries the injected marker. Properties only qualify through
// the marker.
func IsInjectable(m models.Member) bool {
	if m.HasInitializer || m.Markers.Has(annotations.ExcludedMarker) {
		return false
	}
	if m.Markers.Has(annotations.InjectedMarker) {
		return true
	}
	return m.IsField() && m.IsReadonly
}

// Classify returns the injectable members in declaration order
func Classify(members []models.Member) []models.Member {
	var injectables []models.Member
	for _, m := range members {
		if IsInjectable(m) {
			injectables = append(injectables, m)
		}
	}
	return injectables
}
