package datrie

// findPlacement is the placement search of section 4.2 steps 3-4: given the
// current monotonic search hint, find the smallest write_top such that the
// record slot (if hasRecord) and every child slot in childOffsets (each an
// offset from minB, i.e. c - minB for a child at byte c) land on a free
// check[] slot, and write_top - minB >= 1 so the resulting base value can
// never be mistaken for "unset".
//
// Because minB can be as large as 255, write_top can land well past any
// slot count estimated from transition widths alone; arr.ensure grows both
// backing arrays on demand whenever the scan reaches past their current
// length, rather than requiring the caller to have pre-sized them correctly.
//
// searchStart is advanced in place past any slot check already marks used,
// the same monotonic hint carried across every call during one build.
func findPlacement(arr *daArrays, searchStart *uint32, hasRecord bool, minB byte, childOffsets []byte) uint32 {
	arr.ensure(*searchStart)
	for arr.check[*searchStart] != 0 {
		*searchStart++
		arr.ensure(*searchStart)
	}

	candidate := *searchStart
	if lowerBound := uint32(minB) + 1; lowerBound > candidate {
		candidate = lowerBound
	}

outer:
	for {
		if hasRecord {
			arr.ensure(candidate)
			if arr.check[candidate] != 0 {
				candidate++
				continue
			}
		}
		for _, off := range childOffsets {
			idx := candidate + uint32(off)
			arr.ensure(idx)
			if arr.check[idx] != 0 {
				candidate++
				continue outer
			}
		}
		return candidate
	}
}
