// Package rank orders every vocabulary word by cosine similarity to a target
// word. Rankings are deterministic: ties keep vocabulary order and ranks are
// dense 1-based ordinals, so a ranking can be persisted as a permanent game
// artifact and recomputed bit for bit.
package rank
