package family

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/tact/internal/canon"
)

const cartYAML = `
name: cart
actions:
  - name: cart.addItem
    shape: props
    props:
      sku: string
      qty: int
  - name: cart.setNote
    shape: payload
  - name: cart.clear
`

func TestLoadFamily(t *testing.T) {
	spec, err := LoadFamily(strings.NewReader(cartYAML))
	require.NoError(t, err)

	assert.Equal(t, "cart", spec.Name)
	require.Len(t, spec.Actions, 3)
	assert.Equal(t, map[string]string{"sku": "string", "qty": "int"}, spec.Actions[0].Props)

	// Omitted shape defaults to empty.
	assert.Equal(t, "empty", spec.Actions[2].Shape)

	assert.Empty(t, Validate(spec))
}

func TestLoadFamily_UnknownFieldsRejected(t *testing.T) {
	_, err := LoadFamily(strings.NewReader("name: x\nbogus: true\n"))
	assert.Error(t, err)
}

func TestLoadFamilyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cart.yaml")
	require.NoError(t, os.WriteFile(path, []byte(cartYAML), 0o644))

	spec, err := LoadFamilyFile(path)
	require.NoError(t, err)
	assert.Equal(t, "cart", spec.Name)

	_, err = LoadFamilyFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

// TestLoadFamily_Golden pins the canonical JSON form of a compiled
// family. Regenerate with: go test ./family -update
func TestLoadFamily_Golden(t *testing.T) {
	spec, err := LoadFamily(strings.NewReader(cartYAML))
	require.NoError(t, err)
	require.Empty(t, Validate(spec))

	actions := make([]any, len(spec.Actions))
	for i, def := range spec.Actions {
		entry := map[string]any{"name": def.Name, "shape": def.Shape}
		if len(def.Props) > 0 {
			props := make(map[string]any, len(def.Props))
			for k, v := range def.Props {
				props[k] = v
			}
			entry["props"] = props
		}
		actions[i] = entry
	}

	data, err := canon.Marshal(map[string]any{"name": spec.Name, "actions": actions})
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "cart_family", data)
}
