package pyhash

// probe generates the Python-style perturbation probe sequence:
// starting at hash & mask, each step shifts the perturbation right by
// 5 bits and folds it back into a linear-congruential-like step. The
// same (hash, capacity) pair always reproduces the same sequence,
// which insert, lookup, and rehash all rely on.
type probe struct {
	mask    uint64
	perturb uint64
	value   uint64
}

func newProbe(hash uint64, capacity int) probe {
	mask := uint64(capacity) - 1

	return probe{mask: mask, perturb: hash, value: hash & mask}
}

// first returns the initial probe position, before any call to next.
func (p *probe) first() int { return int(p.value) }

// next advances the sequence and returns the new position.
func (p *probe) next() int {
	p.perturb >>= 5
	p.value = (5*p.value + 1 + p.perturb) & p.mask

	return int(p.value)
}
