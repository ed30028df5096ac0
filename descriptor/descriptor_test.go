package descriptor

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Descriptor
	}{
		{name: "string", input: "String", want: Of(String)},
		{name: "integer", input: "Integer", want: Of(Integer)},
		{name: "float", input: "Float", want: Of(Float)},
		{name: "boolean", input: "BOOLEAN", want: Of(Boolean)},
		{name: "date time", input: "DateTime", want: Of(DateTime)},
		{name: "object", input: "Object", want: Of(Object)},
		{name: "file", input: "File", want: Of(File)},
		{name: "model", input: "Pet", want: ModelNamed("Pet")},
		{name: "padded", input: "  Pet ", want: ModelNamed("Pet")},
		{name: "array", input: "Array<Integer>", want: ArrayOf(Of(Integer))},
		{name: "array of models", input: "Array<Pet>", want: ArrayOf(ModelNamed("Pet"))},
		{name: "hash", input: "Hash<String, Integer>", want: MapOf(Of(Integer))},
		{name: "hash without space", input: "Hash<String,Pet>", want: MapOf(ModelNamed("Pet"))},
		{
			name:  "nested",
			input: "Array<Hash<String, Array<Pet>>>",
			want:  ArrayOf(MapOf(ArrayOf(ModelNamed("Pet")))),
		},
		{
			name:  "hash of hash",
			input: "Hash<String, Hash<String, DateTime>>",
			want:  MapOf(MapOf(Of(DateTime))),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestParseMalformed(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		errContains string
	}{
		{name: "empty", input: "", errContains: "empty type"},
		{name: "blank", input: "   ", errContains: "empty type"},
		{name: "empty array", input: "Array<>", errContains: "empty type"},
		{name: "unclosed array", input: "Array<Pet", errContains: "unbalanced"},
		{name: "extra bracket", input: "Array<Pet>>", errContains: "unbalanced"},
		{name: "hash without value", input: "Hash<String>", errContains: "key and value"},
		{name: "hash with integer keys", input: "Hash<Integer, Pet>", errContains: "keys must be String"},
		{name: "unknown generic", input: "List<Pet>", errContains: "unbalanced or unknown"},
		{name: "invalid model name", input: "Pet Store", errContains: "invalid model name"},
		{name: "leading digit", input: "9Lives", errContains: "invalid model name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformed))
			assert.Contains(t, err.Error(), tt.errContains)

			var parseErr *ParseError
			require.ErrorAs(t, err, &parseErr)
			assert.Equal(t, tt.input, parseErr.Input)
		})
	}
}

func TestDescriptorString(t *testing.T) {
	inputs := []string{
		"String",
		"BOOLEAN",
		"DateTime",
		"Pet",
		"Array<Integer>",
		"Hash<String, Pet>",
		"Array<Hash<String, Array<Order>>>",
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			d, err := Parse(in)
			require.NoError(t, err)
			assert.Equal(t, in, d.String())

			again, err := Parse(d.String())
			require.NoError(t, err)
			assert.True(t, d.Equal(again))
		})
	}

	assert.Equal(t, "Hash<String, Pet>", MustParse("Hash<String,Pet>").String())
}

func TestKind(t *testing.T) {
	assert.True(t, String.IsPrimitive())
	assert.True(t, Boolean.IsPrimitive())
	assert.False(t, DateTime.IsPrimitive())
	assert.False(t, Model.IsPrimitive())
	assert.Equal(t, "Hash", Map.String())
	assert.Equal(t, "Invalid", Kind(99).String())
}

func TestMustParsePanics(t *testing.T) {
	assert.Panics(t, func() { MustParse("Array<") })
}

func TestParserCache(t *testing.T) {
	p := NewParser(WithCache(2))

	d, err := p.Parse("Array<Pet>")
	require.NoError(t, err)
	assert.Equal(t, Array, d.Kind)
	assert.Equal(t, 1, p.Size())

	_, err = p.Parse("Array<Pet>")
	require.NoError(t, err)
	assert.Equal(t, 1, p.Size())

	_, err = p.Parse("Hash<String, Pet>")
	require.NoError(t, err)
	_, err = p.Parse("Pet")
	require.NoError(t, err)
	assert.Equal(t, 2, p.Size(), "oldest entry should be evicted")

	_, err = p.Parse("Array<")
	require.Error(t, err)
	assert.Equal(t, 2, p.Size(), "malformed input is not cached")

	p.Clear()
	assert.Equal(t, 0, p.Size())
}

func TestParserWithoutCache(t *testing.T) {
	p := NewParser(WithCache(0))

	d, err := p.Parse("Pet")
	require.NoError(t, err)
	assert.Equal(t, "Pet", d.Name)
	assert.Equal(t, 0, p.Size())
}
