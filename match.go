package tact

// Matcher identifies a set of tags to narrow actions against.
// *Creator, *Union, and Tag implement it.
type Matcher interface {
	// MatchTags returns the tags the matcher narrows to, in a stable
	// order. The set is fixed at definition time.
	MatchTags() []string
}

// Tag is a raw tag string usable directly as a Matcher, for call sites
// that match on tags without a creator in scope.
type Tag string

// MatchTags implements Matcher.
func (t Tag) MatchTags() []string { return []string{string(t)} }

// MatchTags implements Matcher: a creator narrows to its own tag.
func (c *Creator) MatchTags() []string { return []string{c.tag} }

// Is reports whether v's tag is contained in any of the given matchers'
// tag sets. It is a purely runtime tag-equality check.
func Is(v Action, ms ...Matcher) bool {
	for _, m := range ms {
		for _, tag := range m.MatchTags() {
			if v.Tag == tag {
				return true
			}
		}
	}
	return false
}

// Guard returns a predicate with the same matching semantics as Is, for
// use with filtering utilities: Guard(C)(v) == Is(v, C) for all v.
func Guard(ms ...Matcher) func(Action) bool {
	// Flatten once so the predicate does no per-call allocation.
	tags := flattenTags(ms)
	return func(v Action) bool {
		for _, tag := range tags {
			if v.Tag == tag {
				return true
			}
		}
		return false
	}
}

// flattenTags collects the union of the matchers' tag sets, preserving
// first-seen order and dropping duplicates.
func flattenTags(ms []Matcher) []string {
	var tags []string
	seen := make(map[string]bool)
	for _, m := range ms {
		for _, tag := range m.MatchTags() {
			if seen[tag] {
				continue
			}
			seen[tag] = true
			tags = append(tags, tag)
		}
	}
	return tags
}
