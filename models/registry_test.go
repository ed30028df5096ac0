package models

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type widget struct {
	ID        int64             `json:"id"`
	Name      string            `json:"name"`
	Price     float64           `json:"price,omitempty"`
	CreatedAt time.Time         `json:"createdAt"`
	Parts     []part            `json:"parts,omitempty"`
	Owner     *part             `json:"owner,omitempty"`
	Labels    map[string]string `json:"labels,omitempty"`
}

type part struct {
	Name string `json:"name"`
}

func (w *widget) Hydrate(attrs map[string]any) error {
	return Decode(attrs, w)
}

type rejecting struct{}

func (r *rejecting) Hydrate(map[string]any) error {
	return errors.New("nope")
}

func TestRegistry(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register("Widget", func() Model { return &widget{} }))

	t.Run("duplicate", func(t *testing.T) {
		err := reg.Register("Widget", func() Model { return &widget{} })
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrDuplicateModel))
	})

	t.Run("invalid", func(t *testing.T) {
		assert.ErrorIs(t, reg.Register("", func() Model { return &widget{} }), ErrInvalidRegistration)
		assert.ErrorIs(t, reg.Register("Nil", nil), ErrInvalidRegistration)
		assert.Panics(t, func() { reg.MustRegister("", nil) })
	})

	t.Run("new returns fresh instances", func(t *testing.T) {
		a, err := reg.New("Widget")
		require.NoError(t, err)
		b, err := reg.New("Widget")
		require.NoError(t, err)
		assert.NotSame(t, a, b)
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := reg.New("Gadget")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrUnknownModel))
		assert.Equal(t, "unknown model type: Gadget", err.Error())
	})

	t.Run("names", func(t *testing.T) {
		reg.MustRegister("Alpha", func() Model { return &widget{} })
		assert.Equal(t, []string{"Alpha", "Widget"}, reg.Names())
		assert.True(t, reg.Has("Alpha"))
		assert.False(t, reg.Has("Beta"))
	})
}

func TestRegistryBuild(t *testing.T) {
	reg := NewRegistry()
	reg.MustRegister("Widget", func() Model { return &widget{} })
	reg.MustRegister("Rejecting", func() Model { return &rejecting{} })

	m, err := reg.Build("Widget", map[string]any{
		"id":        int64(7),
		"name":      "sprocket",
		"price":     int64(3),
		"createdAt": "2020-01-01T00:00:00Z",
		"parts":     []any{map[string]any{"name": "cog"}},
		"owner":     map[string]any{"name": "acme"},
		"labels":    map[string]any{"color": "red"},
		"ignored":   true,
	})
	require.NoError(t, err)

	w := m.(*widget)
	assert.Equal(t, int64(7), w.ID)
	assert.Equal(t, "sprocket", w.Name)
	assert.Equal(t, 3.0, w.Price)
	assert.True(t, w.CreatedAt.Equal(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, []part{{Name: "cog"}}, w.Parts)
	require.NotNil(t, w.Owner)
	assert.Equal(t, "acme", w.Owner.Name)
	assert.Equal(t, map[string]string{"color": "red"}, w.Labels)

	_, err = reg.Build("Rejecting", map[string]any{})
	require.Error(t, err)
	var hydErr *HydrationError
	require.ErrorAs(t, err, &hydErr)
	assert.Equal(t, "Rejecting", hydErr.Name)

	_, err = reg.Build("Widget", map[string]any{"createdAt": "yesterday"})
	require.Error(t, err)
}

func TestParseTime(t *testing.T) {
	tests := []struct {
		input   string
		want    time.Time
		wantErr bool
	}{
		{input: "2020-01-01T00:00:00Z", want: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)},
		{input: "2020-01-01T10:30:00.5+02:00", want: time.Date(2020, 1, 1, 8, 30, 0, 500000000, time.UTC)},
		{input: "2020-01-01T00:00:00+0000", want: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)},
		{input: "2020-01-01T00:00:00", want: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)},
		{input: "2020-01-01", want: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)},
		{input: "not a date", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseTime(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}
