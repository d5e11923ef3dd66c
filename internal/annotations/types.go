package annotations

import (
	"fmt"
	"strings"
)

// Marker identifies one of the attributes that steer constructor generation
type Marker int

const (
	// InjectedMarker opts a member into injection
	InjectedMarker Marker = iota
	// ExcludedMarker opts a member out of injection
	ExcludedMarker
	// DesignatedMarker picks the constructor that receives injected parameters
	DesignatedMarker
)

// String returns the string representation of the marker
func (m Marker) String() string {
	switch m {
	case InjectedMarker:
		return "Injected"
	case ExcludedMarker:
		return "Excluded"
	case DesignatedMarker:
		return "Designated"
	default:
		return "Unknown"
	}
}

// ParseMarker converts a marker name (as used in configuration) back to a Marker
func ParseMarker(name string) (Marker, error) {
	switch strings.ToLower(name) {
	case "injected":
		return InjectedMarker, nil
	case "excluded":
		return ExcludedMarker, nil
	case "designated":
		return DesignatedMarker, nil
	default:
		return 0, fmt.Errorf("unknown marker %q", name)
	}
}

// MarkerSet is a small bit set of markers found on a declaration
type MarkerSet uint8

// NewMarkerSet creates a set holding the given markers
func NewMarkerSet(markers ...Marker) MarkerSet {
	var s MarkerSet
	for _, m := range markers {
		s = s.With(m)
	}
	return s
}

// Has reports whether the set contains m
func (s MarkerSet) Has(m Marker) bool {
	return s&(1<<uint(m)) != 0
}

// With returns a copy of the set that also contains m
func (s MarkerSet) With(m Marker) MarkerSet {
	return s | 1<<uint(m)
}

// IsEmpty returns true if no marker is present
func (s MarkerSet) IsEmpty() bool {
	return s == 0
}

// Markers lists the markers in the set in declaration order of the constants
func (s MarkerSet) Markers() []Marker {
	var out []Marker
	for _, m := range []Marker{InjectedMarker, ExcludedMarker, DesignatedMarker} {
		if s.Has(m) {
			out = append(out, m)
		}
	}
	return out
}

func (s MarkerSet) String() string {
	markers := s.Markers()
	names := make([]string, len(markers))
	for i, m := range markers {
		names[i] = m.String()
	}
	return "{" + strings.Join(names, ",") + "}"
}

// Target describes the kind of declaration an attribute is attached to
type Target uint8

const (
	FieldTarget Target = 1 << iota
	PropertyTarget
	ConstructorTarget
)

// MemberTargets covers both fields and properties
const MemberTargets = FieldTarget | PropertyTarget

// Allows reports whether t contains the other target
func (t Target) Allows(other Target) bool {
	return t&other != 0
}

// MarkerSchema describes a marker attribute: its conventional name and where it may appear
type MarkerSchema struct {
	Marker         Marker
	ConventionName string   // e.g. "InjectedDependency"
	Description    string   // human readable description
	Targets        Target   // declarations the marker applies to
	Aliases        []string // additional attribute names resolving to the same marker
	Examples       []string // usage examples
}

// SourceLocation represents a location in source code
type SourceLocation struct {
	File   string
	Line   int
	Column int
}

// Attribute is one attribute application inside an attribute section
type Attribute struct {
	Name      string         // qualified name as written, e.g. "Di.InjectedDependencyAttribute"
	Target    string         // explicit attribute target, e.g. "field" in [field: X]
	Arguments string         // raw argument list text without parentheses
	Location  SourceLocation // where the attribute name starts
}

// SimpleName returns the last segment of the qualified name
func (a Attribute) SimpleName() string {
	return SimpleName(a.Name)
}

// SimpleName strips qualification and the verbatim '@' prefix from an attribute name
func SimpleName(name string) string {
	name = strings.TrimSpace(name)
	if i := strings.LastIndex(name, "::"); i >= 0 {
		name = name[i+2:]
	}
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return strings.TrimPrefix(name, "@")
}

// NormalizeName reduces an attribute name to the form used for marker matching:
// the simple name with one trailing "Attribute" suffix removed
func NormalizeName(name string) string {
	simple := SimpleName(name)
	if simple != attributeSuffix && strings.HasSuffix(simple, attributeSuffix) {
		return strings.TrimSuffix(simple, attributeSuffix)
	}
	return simple
}

const attributeSuffix = "Attribute"
