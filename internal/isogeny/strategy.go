// Copyright (c) 2026, The sike Authors.
//
// Permission to use, copy, modify, and/or distribute this software for any
// purpose with or without fee is hereby granted, provided that the above
// copyright notice and this permission notice appear in all copies.
//
// THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
// WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
// MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY
// SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
// WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION
// OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN
// CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.

package isogeny

// OptimalStrategy returns a strategy for a tree with n leaves, where moving
// one level down costs mulCost and evaluating a step at a node costs
// evalCost (De Feo, Jao, Plut, section 4.2). The result has n-1 entries;
// entry s means "split the current subtree after s levels".
func OptimalStrategy(n int, mulCost, evalCost uint) []uint32 {
	if n < 1 {
		panic("strategy needs at least one leaf")
	}
	strat := make([][]uint32, n+1)
	cost := make([]uint, n+1)
	strat[1] = []uint32{}
	for i := 2; i <= n; i++ {
		best, bestB := ^uint(0), 0
		for b := 1; b < i; b++ {
			c := cost[i-b] + cost[b] + uint(b)*mulCost + uint(i-b)*evalCost
			if c < best {
				best, bestB = c, b
			}
		}
		cost[i] = best
		s := make([]uint32, 0, i-1)
		s = append(s, uint32(bestB))
		s = append(s, strat[i-bestB]...)
		s = append(s, strat[bestB]...)
		strat[i] = s
	}
	return strat[n]
}

// ValidStrategy reports whether strat describes a tree with n leaves.
func ValidStrategy(strat []uint32, n int) bool {
	if len(strat) != n-1 {
		return false
	}
	var walk func(s []uint32, leaves int) ([]uint32, bool)
	walk = func(s []uint32, leaves int) ([]uint32, bool) {
		if leaves == 1 {
			return s, true
		}
		if len(s) == 0 {
			return nil, false
		}
		b := int(s[0])
		if b < 1 || b >= leaves {
			return nil, false
		}
		rest, ok := walk(s[1:], leaves-b)
		if !ok {
			return nil, false
		}
		return walk(rest, b)
	}
	rest, ok := walk(strat, n)
	return ok && len(rest) == 0
}

// Traverse walks the tree with len(strat)+1 leaves described by strat,
// starting from root at depth 0.
//
// descend(x, k) moves x down by k levels. visit is called once per leaf, in
// order, with the leaf value, its index and the stack of pending nodes
// together with their depths. visit may update the stack entries in place,
// they are consumed after it returns.
func Traverse[T any](strat []uint32, root T, descend func(x T, k uint32) T, visit func(leaf T, j int, stack []T, depth []int)) {
	n := len(strat)
	stack := make([]T, 0, 16)
	depth := make([]int, 0, 16)
	x := root
	i, sidx := 0, 0

	for j := 1; j <= n; j++ {
		for i <= n-j {
			stack = append(stack, x)
			depth = append(depth, i)

			k := strat[sidx]
			sidx++
			x = descend(x, k)
			i += int(k)
		}
		visit(x, j-1, stack, depth)

		top := len(stack) - 1
		x, i = stack[top], depth[top]
		stack, depth = stack[:top], depth[:top]
	}
	visit(x, n, stack, depth)
}
