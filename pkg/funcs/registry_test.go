package funcs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapexpr/pkg/expr"
)

func TestRegistry_RegisterAndLookup(t *testing.T) {
	r := NewRegistry()

	d := &Descriptor{
		Name:     "shout",
		Category: "string",
		Doc:      "Upper case, loudly.",
		Params:   []ParamType{Expression},
		Fn:       unary("shout", func(e expr.Expr) expr.Expr { return expr.Call("upper", e) }),
	}
	require.NoError(t, r.Register(d))

	got, ok := r.Lookup("shout")
	assert.True(t, ok)
	assert.Equal(t, d, got)
	assert.True(t, r.Contains("shout"))
	assert.False(t, r.Contains("whisper"))
	assert.Equal(t, 1, r.Count())
}

func TestRegistry_RejectsDuplicates(t *testing.T) {
	r := NewRegistry()
	d := &Descriptor{Name: "f", Fn: func([]any) (any, error) { return nil, nil }}
	require.NoError(t, r.Register(d))
	assert.Error(t, r.Register(d))
}

func TestRegistry_RejectsIncomplete(t *testing.T) {
	r := NewRegistry()
	assert.Error(t, r.Register(&Descriptor{Name: ""}))
	assert.Error(t, r.Register(&Descriptor{Name: "f"}))
}

func TestBuiltin_RequiredEntries(t *testing.T) {
	r := Builtin()

	required := []string{LitName, ColName, NegationName}
	required = append(required, OperatorSymbols()...)
	for _, name := range required {
		assert.True(t, r.Contains(name), "builtin registry missing %q", name)
	}
}

func TestBuiltin_IsSingleton(t *testing.T) {
	assert.Same(t, Builtin(), Builtin())
}

func TestColConstructor(t *testing.T) {
	d, ok := Builtin().Lookup(ColName)
	require.True(t, ok)

	got, err := d.Fn([]any{"age"})
	require.NoError(t, err)
	assert.Equal(t, `"age"`, got.(expr.Expr).ToSQL())

	_, err = d.Fn([]any{int64(1)})
	assert.Error(t, err)
}

func TestLitConstructor(t *testing.T) {
	d, ok := Builtin().Lookup(LitName)
	require.True(t, ok)

	got, err := d.Fn([]any{"x"})
	require.NoError(t, err)
	assert.Equal(t, `'x'`, got.(expr.Expr).ToSQL())
}

func TestOverview_GroupsAndOrders(t *testing.T) {
	overview := Builtin().Overview()
	require.NotEmpty(t, overview)

	assert.Equal(t, "core", overview[0].Category)

	var categories []string
	for _, cat := range overview {
		categories = append(categories, cat.Category)
		for i := 1; i < len(cat.Functions); i++ {
			assert.LessOrEqual(t, cat.Functions[i-1].Name, cat.Functions[i].Name,
				"functions in %s not sorted", cat.Category)
		}
	}
	assert.Contains(t, categories, "string")
	assert.Contains(t, categories, "date")
	assert.Contains(t, categories, "math")

	// Hidden chain builders stay out of the reference.
	for _, cat := range overview {
		for _, f := range cat.Functions {
			assert.NotEqual(t, "when", f.Name)
			assert.NotEqual(t, "otherwise", f.Name)
		}
	}
}
