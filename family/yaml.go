package family

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFamily decodes a single YAML family definition:
//
//	name: cart
//	actions:
//	  - name: cart.addItem
//	    shape: props
//	    props:
//	      sku: string
//	      qty: int
//	  - name: cart.clear
//
// Actions without a shape default to empty. The result is not validated;
// call Validate separately so all schema errors surface in one pass.
func LoadFamily(r io.Reader) (*FamilySpec, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var spec FamilySpec
	if err := dec.Decode(&spec); err != nil {
		return nil, fmt.Errorf("decode family: %w", err)
	}

	for i := range spec.Actions {
		if spec.Actions[i].Shape == "" {
			spec.Actions[i].Shape = "empty"
		}
	}

	return &spec, nil
}

// LoadFamilyFile reads a YAML family definition from path.
func LoadFamilyFile(path string) (*FamilySpec, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open family file: %w", err)
	}
	defer f.Close()

	spec, err := LoadFamily(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return spec, nil
}
