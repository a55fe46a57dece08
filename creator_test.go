package tact

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreator_TagBinding(t *testing.T) {
	shapes := map[string]Shape{
		"empty":   Empty(),
		"payload": Payload(),
		"props":   Props(),
		"base":    Base(func(args ...any) map[string]any { return nil }),
	}

	for name, shape := range shapes {
		t.Run(name, func(t *testing.T) {
			c, err := NewCreator("FOO", shape)
			require.NoError(t, err)

			assert.Equal(t, "FOO", c.Tag())
			assert.Equal(t, "FOO", c.New().Tag)
		})
	}
}

func TestNewCreator_InvalidConfig(t *testing.T) {
	tests := []struct {
		name     string
		tag      string
		shape    []Shape
		wantCode ConfigErrorCode
	}{
		{name: "empty tag", tag: "", wantCode: ErrCodeEmptyTag},
		{name: "blank tag", tag: "   ", wantCode: ErrCodeEmptyTag},
		{name: "nil base function", tag: "FOO", shape: []Shape{Base(nil)}, wantCode: ErrCodeNilBase},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewCreator(tt.tag, tt.shape...)
			require.Error(t, err)
			assert.Nil(t, c)

			var ce *ConfigError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, tt.wantCode, ce.Code)
		})
	}
}

func TestMustCreator_PanicsOnEmptyTag(t *testing.T) {
	assert.Panics(t, func() { MustCreator("") })
	assert.NotPanics(t, func() { MustCreator("FOO") })
}

func TestCreator_EmptyShape(t *testing.T) {
	c := MustCreator("FOO")

	// Arguments are ignored regardless of count or type.
	for _, args := range [][]any{nil, {1}, {"x", true, nil}} {
		act := c.New(args...)
		assert.Equal(t, "FOO", act.Tag)
		assert.Empty(t, act.Fields, "empty shape must produce no extra fields")
	}
}

func TestCreator_PayloadShape(t *testing.T) {
	c := MustCreator("FOO", Payload())

	tests := []struct {
		name    string
		args    []any
		payload any
	}{
		{name: "primitive", args: []any{42}, payload: 42},
		{name: "mapping", args: []any{map[string]any{"a": 1}}, payload: map[string]any{"a": 1}},
		{name: "explicit nil", args: []any{nil}, payload: nil},
		{name: "absent", args: nil, payload: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			act := c.New(tt.args...)
			assert.Equal(t, Action{Tag: "FOO", Fields: map[string]any{"payload": tt.payload}}, act)
			assert.Equal(t, tt.payload, act.Payload())
		})
	}
}

func TestCreator_PropsShape(t *testing.T) {
	c := MustCreator("FOO", Props())

	act := c.New(map[string]any{"a": 1, "b": 2})
	assert.Equal(t, Action{
		Tag:    "FOO",
		Fields: map[string]any{"a": 1, "b": 2},
	}, act)
}

func TestCreator_PropsShape_TagKeyCannotOverride(t *testing.T) {
	c := MustCreator("FOO", Props())

	act := c.New(map[string]any{"tag": "EVIL", "a": 1})
	assert.Equal(t, "FOO", act.Tag)
	assert.Equal(t, map[string]any{"a": 1}, act.Fields)
}

func TestCreator_BaseShape(t *testing.T) {
	c := MustCreator("FOO", Base(func(args ...any) map[string]any {
		return map[string]any{"name": args[0]}
	}))

	act := c.New("alice")
	assert.Equal(t, Action{
		Tag:    "FOO",
		Fields: map[string]any{"name": "alice"},
	}, act)
}

func TestCreator_BaseShape_TagKeyCannotOverride(t *testing.T) {
	c := MustCreator("FOO", Base(func(args ...any) map[string]any {
		return map[string]any{"tag": "EVIL", "n": 1}
	}))

	act := c.New()
	assert.Equal(t, "FOO", act.Tag)
	assert.Equal(t, map[string]any{"n": 1}, act.Fields)
}

func TestCreator_ConstructionIsIndependentlyOwned(t *testing.T) {
	c := MustCreator("FOO", Props())
	props := map[string]any{"a": 1}

	first := c.New(props)
	second := c.New(props)
	assert.Equal(t, first, second)

	// Mutating one action's fields must not leak into the other or into
	// the caller's props map.
	first.Fields["a"] = 99
	assert.Equal(t, 1, second.Fields["a"])
	assert.Equal(t, 1, props["a"])
}
