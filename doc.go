// Package tact provides tagged-action value objects and reducer-style
// dispatch for Go applications that keep state in a single fold over a
// stream of actions.
//
// The package has two halves:
//
//  1. Creators build immutable tagged values (Actions). A creator is bound
//     once to a tag and a payload shape (Empty, Payload, Props, or Base)
//     and is then reused for the process lifetime.
//  2. Reducers map tag sets to handler functions. Dispatch scans clauses
//     in declaration order and invokes the first clause whose tag set
//     contains the incoming action's tag; an unmatched action returns the
//     state unchanged.
//
// Matching is a plain runtime tag-equality check. Is and Guard narrow
// actions by tag; NewUnion groups creators into a reusable tag set.
//
// Example:
//
//	var (
//		AddItem = tact.MustCreator("cart.addItem", tact.Props())
//		Clear   = tact.MustCreator("cart.clear")
//	)
//
//	r, err := tact.NewReducer(Cart{},
//		tact.On(applyAdd, AddItem),
//		tact.On(applyClear, Clear),
//	)
//
// Everything in this package is synchronous and free of shared mutable
// state; creators and reducers are safe for concurrent use.
package tact
