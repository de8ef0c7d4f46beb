// Package words holds the challenge vocabulary and its association
// rule.
//
// The 32 canonical words are fixed; their positions define the answer
// to each prompt.  A prompted word's answer is always the word three
// positions later in the canonical order, wrapping around.  Because
// gcd(3, 32) = 1, repeatedly applying the rule walks the whole table.
package words

import (
	"fmt"
	"math/rand"
)

// Count is the size of the vocabulary.
const Count = 32

// Shift is how far the answer sits past the prompted word in the
// canonical order.
const Shift = 3

// Words is the canonical vocabulary, in answer-defining order.
// Positions are load-bearing: do not reorder.
var Words = [Count]string{
	"sky", "lichen", "window", "road", "wall", "hill", "sand", "soil",
	"loam", "sun", "star", "root", "rain", "hand", "green", "blue",
	"red", "steam", "steel", "leaf", "house", "brush", "stair", "flower",
	"log", "vase", "painting", "cottage", "frog", "stone", "pond", "river",
}

// index maps each word back to its canonical position.
var index = func() map[string]int {
	m := make(map[string]int, Count)
	for i, w := range Words {
		m[w] = i
	}
	return m
}()

// Answer returns the expected response for a prompted word: the entry
// Shift positions later in the canonical order.
//
// The engine only ever prompts words it took from the table itself, so
// an unknown word here is a bug, not client input.
func Answer(w string) string {
	i, ok := index[w]
	if !ok {
		panic(fmt.Sprintf("words: %q is not in the vocabulary", w))
	}
	return Words[(i+Shift)%Count]
}

// Contains reports whether w is one of the canonical words.
func Contains(w string) bool {
	_, ok := index[w]
	return ok
}

// Shuffle returns a fresh, uniformly random permutation of the
// vocabulary drawn from rng.  Each session gets its own rng so
// permutations are independent across connections.
func Shuffle(rng *rand.Rand) []string {
	perm := make([]string, Count)
	copy(perm, Words[:])
	// Fisher–Yates, unbiased.
	for i := Count - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		perm[i], perm[j] = perm[j], perm[i]
	}
	return perm
}
