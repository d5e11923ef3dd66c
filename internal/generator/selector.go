package generator

import (
	"github.com/toyz/ctorgen/internal/errors"
	"github.com/toyz/ctorgen/internal/models"
)

// Selection is the constructor chosen for regeneration
type Selection struct {
	Constructor    models.Constructor
	SynthesizedNew bool // the constructor did not exist and has to be inserted
	Explicit       bool // the caller picked the constructor directly
}

// Select chooses the constructor that receives the injectables. When the class
// has no eligible constructor an empty public one is synthesized right after the
// last injectable member and the returned class contains it.
func Select(class models.Class, injectables []models.Member, explicit *models.Constructor) (models.Class, Selection, error) {
	if len(injectables) == 0 {
		return class, Selection{}, errors.NewNoCandidatesError()
	}

	target := errors.ClassDiagnostic
	if explicit != nil {
		target = errors.ConstructorDiagnostic
	}
	if err := CheckUniqueness(injectables, target); err != nil {
		return class, Selection{}, err
	}

	if explicit != nil {
		return class, Selection{Constructor: *explicit, Explicit: true}, nil
	}

	eligible := eligibleConstructors(class)
	switch len(eligible) {
	case 0:
		last := injectables[len(injectables)-1]
		ctor := models.NewSynthesizedConstructor(class.Name, last.DeclSpan.End)
		return class.WithConstructor(ctor), Selection{Constructor: ctor, SynthesizedNew: true}, nil
	case 1:
		return class, Selection{Constructor: eligible[0]}, nil
	default:
		return class, Selection{}, errors.NewMultiplePublicConstructorsError()
	}
}

// eligibleConstructors returns the public constructors, narrowed to the
// designated ones when any are designated
func eligibleConstructors(class models.Class) []models.Constructor {
	public := class.PublicConstructors()

	var designated []models.Constructor
	for _, ctor := range public {
		if ctor.IsDesignated {
			designated = append(designated, ctor)
		}
	}
	if len(designated) > 0 {
		return designated
	}
	return public
}
