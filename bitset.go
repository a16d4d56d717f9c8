package elevroute

import "math/big"

// Bitset tracks a sparse set of non-negative node indices, used by
// DijkstraCore as its "visited" marker. A big.Int grows one word at a time
// as higher indices are set, so a search that only touches a fraction of a
// large graph never pays for the whole node count up front.
type Bitset struct {
	*big.Int
}

// NewBitset returns an empty Bitset.
func NewBitset() Bitset {
	return Bitset{Int: new(big.Int)}
}

// Exists reports whether index i is set.
func (b Bitset) Exists(i int32) bool {
	return b.Int.Bit(int(i)) == 1
}

// Set sets or clears index i.
func (b Bitset) Set(i int32, value bool) {
	if value {
		b.Int.SetBit(b.Int, int(i), 1)
	} else {
		b.Int.SetBit(b.Int, int(i), 0)
	}
}
