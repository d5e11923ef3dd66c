package generator

import (
	"github.com/toyz/ctorgen/internal/models"
)

// Synthesis is the outcome of merging the injectables into a constructor
type Synthesis struct {
	Constructor      models.Constructor  // rewritten constructor
	Original         models.Constructor  // constructor as selected
	AddedParameters  []models.Param      // appended parameters, in order
	AddedAssignments []models.Assignment // prepended statements, in order
}

// IsEmpty reports whether the constructor already satisfies every injectable
func (s Synthesis) IsEmpty() bool {
	return len(s.AddedParameters) == 0 && len(s.AddedAssignments) == 0
}

// UnnamedMembers returns the members whose added parameter has an empty name,
// which only happens for a member called "_"
func (s Synthesis) UnnamedMembers() []string {
	var names []string
	for _, p := range s.AddedParameters {
		if p.Name != "" {
			continue
		}
		for _, a := range s.AddedAssignments {
			if a.Value == "" {
				names = append(names, a.Target)
				break
			}
		}
	}
	return names
}

// Synthesize appends a parameter for every unassigned injectable whose type has
// no parameter yet, and prepends an assignment for every unassigned injectable.
// Existing parameters and statements are kept as they are.
func Synthesize(injectables []models.Member, ctor models.Constructor) Synthesis {
	assigned := make(map[string]bool)
	for _, name := range models.AssignedNames(ctor.Body) {
		assigned[name] = true
	}

	var missing []models.Member
	for _, m := range injectables {
		if !assigned[m.Name] {
			missing = append(missing, m)
		}
	}

	existingTypes := make(map[models.TypeRef]bool)
	for _, t := range ctor.ParameterTypes() {
		existingTypes[t] = true
	}

	var added []models.Param
	for _, m := range missing {
		if existingTypes[m.Type] {
			continue
		}
		added = append(added, models.Param{Type: m.Type, Name: ParameterName(m.Name)})
		existingTypes[m.Type] = true
	}

	params := append(append([]models.Param(nil), ctor.Parameters...), added...)

	var assignments []models.Assignment
	for _, m := range missing {
		param, ok := firstParameterOfType(params, m.Type)
		if !ok {
			continue
		}
		assignments = append(assignments, models.Assignment{Target: m.Name, Value: param.Name})
	}

	body := make([]models.Statement, 0, len(assignments)+len(ctor.Body))
	for _, a := range assignments {
		body = append(body, a)
	}
	body = append(body, ctor.Body...)

	return Synthesis{
		Constructor:      ctor.WithParameters(params).WithBody(body),
		Original:         ctor,
		AddedParameters:  added,
		AddedAssignments: assignments,
	}
}

func firstParameterOfType(params []models.Param, t models.TypeRef) (models.Param, bool) {
	for _, p := range params {
		if p.Type == t {
			return p, true
		}
	}
	return models.Param{}, false
}
