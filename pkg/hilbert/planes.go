package hilbert

// planes is the bit-plane matrix of one point: a row per dimension, each
// row holding that dimension's digits with column 0 in bit (bits-1).
//
// The interleaved form of the same data is a single word of dims*bits
// digits, laid out bit-major: column b of dimension d sits at sequence
// position b*dims+d, counted from the most significant end.
type planes struct {
	rows [64]uint64
	dims uint
	bits uint
}

// load reads the rows from an interleaved word.
func (p *planes) load(w uint64) {
	n := p.dims * p.bits
	for d := uint(0); d < p.dims; d++ {
		p.rows[d] = 0
	}
	pos := n
	for b := uint(0); b < p.bits; b++ {
		for d := uint(0); d < p.dims; d++ {
			pos--
			p.rows[d] |= ((w >> pos) & 1) << (p.bits - 1 - b)
		}
	}
}

// store interleaves the rows back into a word.
func (p *planes) store() uint64 {
	var w uint64
	for b := uint(0); b < p.bits; b++ {
		for d := uint(0); d < p.dims; d++ {
			w = w<<1 | (p.rows[d]>>(p.bits-1-b))&1
		}
	}
	return w
}

// exchange applies Skilling's rule at (dim, bit) to every column right of
// bit. If the digit is set, dimension 0 is inverted there. Otherwise the
// columns where dimension 0 and dim disagree are flipped in both, which
// swaps the two rows over that range.
func (p *planes) exchange(dim, bit uint) {
	shift := p.bits - 1 - bit
	low := uint64(1)<<shift - 1
	if (p.rows[dim]>>shift)&1 == 1 {
		p.rows[0] ^= low
		return
	}
	t := (p.rows[0] ^ p.rows[dim]) & low
	p.rows[0] ^= t
	p.rows[dim] ^= t
}

// untangle turns transposed Gray digits into axis coordinates, finest
// recursion level first.
func (p *planes) untangle() {
	for bit := int(p.bits) - 1; bit >= 0; bit-- {
		for dim := int(p.dims) - 1; dim >= 0; dim-- {
			p.exchange(uint(dim), uint(bit))
		}
	}
}

// tangle is the inverse of untangle, coarsest level first.
func (p *planes) tangle() {
	for bit := uint(0); bit < p.bits; bit++ {
		for dim := uint(0); dim < p.dims; dim++ {
			p.exchange(dim, bit)
		}
	}
}
