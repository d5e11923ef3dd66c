package generator

import (
	"github.com/toyz/ctorgen/internal/errors"
	"github.com/toyz/ctorgen/internal/models"
)

// FindDuplicateType returns the names of the first group of injectables sharing
// a type. Groups are ordered by the first appearance of their type and names
// keep declaration order.
func FindDuplicateType(injectables []models.Member) ([]string, bool) {
	groups := make(map[models.TypeRef][]string)
	var order []models.TypeRef
	for _, m := range injectables {
		if _, seen := groups[m.Type]; !seen {
			order = append(order, m.Type)
		}
		groups[m.Type] = append(groups[m.Type], m.Name)
	}

	for _, t := range order {
		if names := groups[t]; len(names) > 1 {
			return names, true
		}
	}
	return nil, false
}

// CheckUniqueness fails with a DuplicateType diagnostic when two injectables share a type
func CheckUniqueness(injectables []models.Member, target errors.DiagnosticTarget) error {
	if names, found := FindDuplicateType(injectables); found {
		return errors.NewDuplicateTypeError(names, target)
	}
	return nil
}
