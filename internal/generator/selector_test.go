package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/ctorgen/internal/errors"
	"github.com/toyz/ctorgen/internal/models"
)

func publicCtor(start int, designated bool) models.Constructor {
	return models.Constructor{
		Name:         "FooBar",
		Visibility:   models.PublicVisibility,
		IsDesignated: designated,
		Span:         models.Span{Start: start, End: start + 10},
	}
}

func diagnosticCode(t *testing.T, err error) errors.ErrorCode {
	t.Helper()
	diag, ok := errors.AsDiagnostic(err)
	require.True(t, ok, "expected a diagnostic, got %v", err)
	return diag.ErrorCode()
}

func TestSelectNoCandidates(t *testing.T) {
	_, _, err := Select(models.Class{Name: "FooBar"}, nil, nil)
	assert.Equal(t, errors.NoCandidatesErrorCode, diagnosticCode(t, err))
}

func TestSelectDuplicateTarget(t *testing.T) {
	dupes := []models.Member{field("_a", "IFoo", true), field("_b", "IFoo", true)}
	explicit := publicCtor(50, false)

	_, _, err := Select(models.Class{Name: "FooBar"}, dupes, nil)
	diag, _ := errors.AsDiagnostic(err)
	require.NotNil(t, diag)
	assert.Equal(t, errors.ClassDiagnostic, diag.Target)

	_, _, err = Select(models.Class{Name: "FooBar"}, dupes, &explicit)
	diag, _ = errors.AsDiagnostic(err)
	require.NotNil(t, diag)
	assert.Equal(t, errors.ConstructorDiagnostic, diag.Target)
}

func TestSelectConstructor(t *testing.T) {
	injectables := []models.Member{field("_a", "IFoo", true)}
	private := models.Constructor{Name: "FooBar", Span: models.Span{Start: 5, End: 8}}
	static := publicCtor(9, false)
	static.IsStatic = true

	t.Run("single public", func(t *testing.T) {
		class := models.Class{Name: "FooBar", Constructors: []models.Constructor{private, publicCtor(20, false)}}
		_, sel, err := Select(class, injectables, nil)
		require.NoError(t, err)
		assert.Equal(t, 20, sel.Constructor.Span.Start)
		assert.False(t, sel.SynthesizedNew)
		assert.False(t, sel.Explicit)
	})

	t.Run("multiple public", func(t *testing.T) {
		class := models.Class{Name: "FooBar", Constructors: []models.Constructor{publicCtor(20, false), publicCtor(40, false)}}
		_, _, err := Select(class, injectables, nil)
		assert.Equal(t, errors.MultiplePublicConstructorsErrorCode, diagnosticCode(t, err))
	})

	t.Run("designated narrows", func(t *testing.T) {
		class := models.Class{Name: "FooBar", Constructors: []models.Constructor{publicCtor(20, false), publicCtor(40, true)}}
		_, sel, err := Select(class, injectables, nil)
		require.NoError(t, err)
		assert.Equal(t, 40, sel.Constructor.Span.Start)
	})

	t.Run("two designated", func(t *testing.T) {
		class := models.Class{Name: "FooBar", Constructors: []models.Constructor{publicCtor(20, true), publicCtor(40, true)}}
		_, _, err := Select(class, injectables, nil)
		assert.Equal(t, errors.MultiplePublicConstructorsErrorCode, diagnosticCode(t, err))
	})

	t.Run("explicit skips eligibility", func(t *testing.T) {
		class := models.Class{Name: "FooBar", Constructors: []models.Constructor{publicCtor(20, false), publicCtor(40, false)}}
		_, sel, err := Select(class, injectables, &private)
		require.NoError(t, err)
		assert.True(t, sel.Explicit)
		assert.Equal(t, 5, sel.Constructor.Span.Start)
	})

	t.Run("synthesized after last injectable", func(t *testing.T) {
		members := []models.Member{field("_a", "IFoo", true), field("_b", "IBar", true)}
		members[1].DeclSpan = models.Span{Start: 30, End: 45}
		class := models.Class{Name: "FooBar", Constructors: []models.Constructor{private, static, publicCtor(60, false)}}
		class.Constructors[2].Visibility = models.OtherVisibility

		updated, sel, err := Select(class, members, nil)
		require.NoError(t, err)
		assert.True(t, sel.SynthesizedNew)
		assert.True(t, sel.Constructor.Synthesized)
		assert.Equal(t, 45, sel.Constructor.Span.Start)
		require.Len(t, updated.Constructors, 4)
		assert.True(t, updated.Constructors[2].Synthesized)
		assert.Len(t, class.Constructors, 3, "input class must not change")
	})
}
