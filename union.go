package tact

// Union is a descriptor for the set of tags a group of creators can
// produce. At runtime it is an inert marker: it performs no computation on
// actions and exists for introspection and for use as a Matcher.
type Union struct {
	tags []string
}

// NewUnion groups creators into a union descriptor. Duplicate tags are
// collapsed; declaration order of first appearance is preserved.
func NewUnion(creators ...*Creator) *Union {
	ms := make([]Matcher, len(creators))
	for i, c := range creators {
		ms[i] = c
	}
	return &Union{tags: flattenTags(ms)}
}

// Tags returns the union's tag set in declaration order.
// The returned slice is a copy; callers may mutate it freely.
func (u *Union) Tags() []string {
	out := make([]string, len(u.tags))
	copy(out, u.tags)
	return out
}

// Contains reports whether tag is a member of the union.
func (u *Union) Contains(tag string) bool {
	for _, t := range u.tags {
		if t == tag {
			return true
		}
	}
	return false
}

// MatchTags implements Matcher.
func (u *Union) MatchTags() []string { return u.tags }
