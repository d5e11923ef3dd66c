package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/ctorgen/internal/annotations"
	"github.com/toyz/ctorgen/internal/errors"
	"github.com/toyz/ctorgen/internal/models"
)

func parse(t *testing.T, source string) *models.File {
	t.Helper()
	file, err := NewParser(nil).ParseSource("Test.cs", source)
	require.NoError(t, err)
	return file
}

func TestTokenize(t *testing.T) {
	tokens, err := Tokenize("a.cs", "IFoo<IFoo<Bar>> x = @\"a\"\"b\"; // done\n")
	require.NoError(t, err)

	var values []string
	for _, tok := range significant(tokens) {
		if tok.Kind != EOFToken {
			values = append(values, tok.Value)
		}
	}
	assert.Equal(t, []string{"IFoo", "<", "IFoo", "<", "Bar", ">", ">", "x", "=", `@"a""b"`, ";"}, values)
	assert.Equal(t, EOFToken, tokens[len(tokens)-1].Kind)

	for _, tok := range tokens {
		if tok.Kind == CommentToken {
			assert.Equal(t, "// done", tok.Value)
			assert.Equal(t, 1, tok.Line)
		}
	}
}

func TestTokenizeOffsets(t *testing.T) {
	text := "class A\n{\n    int x;\n}"
	tokens, err := Tokenize("a.cs", text)
	require.NoError(t, err)

	for _, tok := range tokens {
		if tok.Kind == EOFToken {
			continue
		}
		assert.Equal(t, tok.Value, text[tok.Offset:tok.End()])
	}
}

func TestParseMembers(t *testing.T) {
	file := parse(t, `
namespace Demo
{
    using System;

    public class FooBar
    {
        private readonly IClock _clock;
        private readonly ILogger _a, _b = null, _c;
        [InjectedDependency]
        public IStore Store { get; }
        [InjectedDependencyAttribute] private IBus bus;
        [ExcludeFromInjectedDependencies]
        private readonly ICache _cache;
        private readonly Dictionary<int, string> _map = new Dictionary<int, string>();
        public int Count => _map.Count;
        public string Name { get; set; } = "x";
        private const int Max = 3;
        private static readonly IFoo<IFoo<Interface2>> _generic;

        public void DoWork(int a) { if (a > 0) { return; } }
        public event EventHandler Changed;
        public int this[int i] => i;
    }
}`)

	require.Len(t, file.Classes, 1)
	cls := file.Classes[0]
	assert.Equal(t, "FooBar", cls.Name)

	byName := make(map[string]models.Member)
	var order []string
	for _, m := range cls.Members {
		byName[m.Name] = m
		order = append(order, m.Name)
	}

	assert.Equal(t, []string{"_clock", "_a", "_b", "_c", "Store", "bus", "_cache", "_map", "Count", "Name", "Max", "_generic"}, order)

	assert.True(t, byName["_clock"].IsReadonly)
	assert.Equal(t, models.TypeRef("IClock"), byName["_clock"].Type)
	assert.False(t, byName["_clock"].HasInitializer)

	assert.Equal(t, models.TypeRef("ILogger"), byName["_c"].Type)
	assert.True(t, byName["_b"].HasInitializer)
	assert.False(t, byName["_c"].HasInitializer)

	assert.Equal(t, models.PropertyMember, byName["Store"].Kind)
	assert.True(t, byName["Store"].Markers.Has(annotations.InjectedMarker))
	assert.True(t, byName["bus"].Markers.Has(annotations.InjectedMarker))
	assert.False(t, byName["bus"].IsReadonly)
	assert.True(t, byName["_cache"].Markers.Has(annotations.ExcludedMarker))

	assert.Equal(t, models.TypeRef("Dictionary<int, string>"), byName["_map"].Type)
	assert.True(t, byName["_map"].HasInitializer)
	assert.True(t, byName["Count"].HasInitializer)
	assert.True(t, byName["Name"].HasInitializer)
	assert.True(t, byName["Max"].HasInitializer)
	assert.True(t, byName["_generic"].IsStatic)
	assert.Equal(t, models.TypeRef("IFoo<IFoo<Interface2>>"), byName["_generic"].Type)
}

func TestParseMemberSpans(t *testing.T) {
	source := "class A\n{\n    [InjectedDependency]\n    private IFoo _foo;\n}"
	file := parse(t, source)

	member := file.Classes[0].Members[0]
	assert.Equal(t, "_foo", source[member.Span.Start:member.Span.End])
	assert.Equal(t, "[InjectedDependency]\n    private IFoo _foo;", source[member.DeclSpan.Start:member.DeclSpan.End])
}

func TestParseConstructors(t *testing.T) {
	source := `public class FooBar
{
    private readonly Baz _p2;

    static FooBar() { }

    public FooBar(int a, [From] FooBar existing, params string[] rest)
    {
        _p1 = existing;
        this._p2 = new Baz();
        //i'm a comment!
        if (a > 0)
            Log(a);
        else
            Log(0);
        Init();
    }

    [DependencyInjectionConstructor]
    internal FooBar(Dictionary<int, string> map = null):this() => _map = map;

    protected FooBar(bool flag);
}`
	file := parse(t, source)
	cls := file.Classes[0]
	require.Len(t, cls.Constructors, 4)

	static := cls.Constructors[0]
	assert.True(t, static.IsStatic)
	assert.False(t, static.IsPublic())

	main := cls.Constructors[1]
	assert.True(t, main.IsPublic())
	assert.Equal(t, "(int a, [From] FooBar existing, params string[] rest)", source[main.ParamSpan.Start:main.ParamSpan.End])
	require.Len(t, main.Parameters, 3)
	assert.Equal(t, models.Param{Type: "int", Name: "a", Text: "int a"}, main.Parameters[0])
	assert.Equal(t, models.Param{Type: "FooBar", Name: "existing", Text: "[From] FooBar existing"}, main.Parameters[1])
	assert.Equal(t, models.TypeRef("string[]"), main.Parameters[2].Type)
	assert.Equal(t, "rest", main.Parameters[2].Name)

	require.Len(t, main.Body, 4)
	first, ok := main.Body[0].(models.Assignment)
	require.True(t, ok)
	assert.Equal(t, "_p1", first.Target)
	assert.Equal(t, "existing", first.Value)

	second, ok := main.Body[1].(models.Opaque)
	require.True(t, ok, "this-qualified targets are not bare identifiers")
	assert.Equal(t, "this._p2 = new Baz();", second.Text)
	assert.Equal(t, []string{"_p1"}, models.AssignedNames(main.Body))

	ifStmt, ok := main.Body[2].(models.Opaque)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(ifStmt.Text, "if (a > 0)"))
	assert.True(t, strings.HasSuffix(ifStmt.Text, "Log(0);"))
	assert.Equal(t, "Init();", main.Body[3].Source())

	designated := cls.Constructors[2]
	assert.True(t, designated.IsDesignated)
	assert.Equal(t, models.OtherVisibility, designated.Visibility)
	assert.Equal(t, models.ExpressionBody, designated.BodyKind)
	require.NotNil(t, designated.Initializer)
	assert.Equal(t, "this", designated.Initializer.Keyword)
	assert.Equal(t, ":this()", source[designated.Initializer.Span.Start:designated.Initializer.Span.End])
	require.Len(t, designated.Parameters, 1)
	assert.Equal(t, models.TypeRef("Dictionary<int, string>"), designated.Parameters[0].Type)
	assert.Equal(t, "map", designated.Parameters[0].Name)
	require.Len(t, designated.Body, 1)
	assert.Equal(t, []string{"_map"}, models.AssignedNames(designated.Body))
	assert.True(t, strings.HasPrefix(source[designated.Span.Start:], "[DependencyInjectionConstructor]"))

	abstract := cls.Constructors[3]
	assert.Equal(t, models.NoBody, abstract.BodyKind)
}

func TestParseStatements(t *testing.T) {
	source := `class A
{
    public A()
    {
        try { Open(); } catch (IOException e) when (e != null) { Retry(); } finally { Close(); }
        foreach (var x in xs) { Use(x); }
        do { Step(); } while (Busy());
        void Local() { }
        _x = x;
        Action act = () => { Run(); };
        _y += 1;
        checked { _z = 1; }
    }
}`
	ctor := parse(t, source).Classes[0].Constructors[0]

	var kinds []string
	for _, stmt := range ctor.Body {
		switch st := stmt.(type) {
		case models.Assignment:
			kinds = append(kinds, "assign:"+st.Target)
		case models.Opaque:
			kinds = append(kinds, "opaque:"+strings.Fields(st.Text)[0])
		}
	}
	assert.Equal(t, []string{
		"opaque:try",
		"opaque:foreach",
		"opaque:do",
		"opaque:void",
		"assign:_x",
		"opaque:Action",
		"opaque:_y",
		"opaque:checked",
	}, kinds)
}

func TestParseNestedAndNamespaces(t *testing.T) {
	file := parse(t, `
using System;
namespace Outer;

[Serializable]
public sealed partial class Host<T> : Base<T>, IHost where T : class, new()
{
    private readonly IFoo _foo;

    public struct Inner
    {
        private readonly IBar _bar;
    }

    private interface IHidden { void Go(); }
    private enum Mode { A, B }
    public delegate void Handler(int x);
}

public record Point(int X, int Y);

public record class Shape
{
    public Shape() { }
}
`)

	require.Len(t, file.Classes, 2)
	host := file.Classes[0]
	assert.Equal(t, "Host", host.Name)
	require.Len(t, host.Nested, 1)
	assert.Equal(t, "Inner", host.Nested[0].Name)
	assert.Equal(t, models.StructKind, host.Nested[0].Kind)
	assert.Equal(t, "_bar", host.Nested[0].Members[0].Name)
	assert.Len(t, host.Members, 1)

	shape := file.Classes[1]
	assert.Equal(t, models.RecordKind, shape.Kind)
	assert.Len(t, shape.Constructors, 1)

	found, ok := FindClass(file, "Inner")
	require.True(t, ok)
	assert.Equal(t, "Inner", found.Name)
}

func TestParseErrors(t *testing.T) {
	inputs := map[string]string{
		"unclosed class":      "class A {\n  private int x;\n",
		"unclosed ctor":       "class A { public A( { }",
		"bad initializer":     "class A { public A() : that() { } }",
		"stray closing brace": "}",
	}

	for name, source := range inputs {
		t.Run(name, func(t *testing.T) {
			_, err := NewParser(nil).ParseSource("Broken.cs", source)
			require.Error(t, err)
			assert.True(t, errors.HasCode(err, errors.SyntaxErrorCode), "unexpected error %v", err)
		})
	}
}

func TestParseCustomMarkerAlias(t *testing.T) {
	registry := annotations.NewBuiltinRegistry()
	require.NoError(t, registry.AddAlias(annotations.InjectedMarker, "Inject"))

	file, err := NewParser(annotations.NewResolver(registry)).ParseSource("a.cs", "class A { [Inject] IFoo Foo { get; } }")
	require.NoError(t, err)
	assert.True(t, file.Classes[0].Members[0].Markers.Has(annotations.InjectedMarker))
}

func TestParseAttributeErrorLocation(t *testing.T) {
	_, err := NewParser(nil).ParseSource("Broken.cs", "class A\n{\n    []\n    IFoo Foo { get; }\n}")
	require.Error(t, err)

	var ctorErr errors.CtorError
	require.True(t, errors.As(err, &ctorErr))
	assert.Equal(t, errors.SyntaxErrorCode, ctorErr.ErrorCode())
	assert.Equal(t, "Broken.cs", ctorErr.Location().File)
	assert.Equal(t, 3, ctorErr.Location().Line)
	assert.NotEmpty(t, ctorErr.Suggestions())
}
