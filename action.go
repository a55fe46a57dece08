package tact

// PayloadField is the field name used by payload-shaped creators.
const PayloadField = "payload"

// Action is an immutable tagged value. Tag identifies the variant; Fields
// is an open mapping of extra fields determined by the creator's shape.
//
// Two actions are the same variant iff their Tags are equal. Tag is never
// mutated after construction, and creators never share a Fields map
// between actions.
type Action struct {
	Tag    string
	Fields map[string]any
}

// Payload returns the value stored under the "payload" field, or nil when
// the action carries none. Only payload-shaped creators populate it.
func (a Action) Payload() any {
	return a.Fields[PayloadField]
}

// Field returns the named extra field and whether it is present.
func (a Action) Field(name string) (any, bool) {
	v, ok := a.Fields[name]
	return v, ok
}
