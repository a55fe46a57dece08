package tact

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewUnion_TagSet(t *testing.T) {
	foo := MustCreator("FOO")
	bar := MustCreator("BAR", Payload())

	u := NewUnion(foo, bar)

	assert.Equal(t, []string{"FOO", "BAR"}, u.Tags())
	assert.True(t, u.Contains("FOO"))
	assert.True(t, u.Contains("BAR"))
	assert.False(t, u.Contains("BAZ"))
}

func TestNewUnion_CollapsesDuplicates(t *testing.T) {
	foo := MustCreator("FOO")
	alias := MustCreator("FOO", Payload())

	u := NewUnion(foo, alias)
	assert.Equal(t, []string{"FOO"}, u.Tags())
}

func TestUnion_AsMatcher(t *testing.T) {
	foo := MustCreator("FOO")
	bar := MustCreator("BAR")
	u := NewUnion(foo, bar)

	assert.True(t, Is(foo.New(), u))
	assert.True(t, Guard(u)(bar.New()))
	assert.False(t, Is(MustCreator("BAZ").New(), u))
}

func TestUnion_TagsReturnsCopy(t *testing.T) {
	u := NewUnion(MustCreator("FOO"), MustCreator("BAR"))

	tags := u.Tags()
	tags[0] = "MUTATED"

	assert.Equal(t, []string{"FOO", "BAR"}, u.Tags())
}
