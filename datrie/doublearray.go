/*
Package datrie provides a static double-array trie with tail compression
(DA-Trie+TAIL): an in-memory exact-match dictionary that maps a fixed set of
byte strings to their insertion-order record numbers.

A DoubleArray is built once from an ordered list of words via Build, and
answers Lookup queries in time proportional to the query length thereafter.
Construction runs in two phases: the words are first folded into a TempTrie
(a mutable byte trie that compresses any word whose remaining suffix has no
sibling into a single tail string), and the TempTrie is then lowered into a
pair of parallel arrays, base and check, following the classic double-array
encoding of a trie automaton.

Use Cases:
  - Exact-match dictionaries where the full key set is known up front
  - Morphological analyzers and tokenizers backed by a static lexicon
  - Any lookup table where build time can be amortized but query time and
    memory footprint matter

Example usage:

	da, err := datrie.Build([][]byte{[]byte("a"), []byte("ab"), []byte("abc")})
	if err != nil {
		// handle build error
	}
	fmt.Println(da.Lookup([]byte("ab")))  // 1
	fmt.Println(da.Lookup([]byte("abd"))) // datrie.NotFound

Implementation Details:
  - base[i] holds, for a non-terminal state, the offset such that a
    transition on byte c from state i lands at base[i]+c; for a terminal
    state the high bit is set and the low 31 bits hold the record number.
  - check[i] holds the parent state that claimed slot i, or 0 if the slot is
    free. check[1] carries a sentinel and is never a valid parent.
  - tails holds the verbatim suffix for every record whose word was
    compressed past its uniquely-identifying prefix.
  - Placement search (see placement.go) resolves collisions with a
    first-fit scan driven by a monotonically non-decreasing search hint.

Time Complexity:
  - Build: proportional to the total length of all words, plus the
    placement search's near-linear (amortized) cost on realistic inputs.
  - Lookup: O(n), where n is the length of the query, plus one tail
    comparison in the tail-compressed case.

Space Complexity:
  - O(total slots used), typically close to the number of trie edges, though
    a node whose children start at a large byte value can force its slots
    further out; the backing arrays grow on demand to cover that (see
    daArrays in this file).
*/
package datrie

import (
	"bytes"
	"fmt"

	"github.com/Zubayear/ryushin/stack"
)

// NotFound is returned by Lookup when the query is not in the dictionary.
const NotFound int32 = -1

const recordBit uint32 = 0x8000_0000

// DoubleArray is an immutable, exact-match dictionary built once from a word
// list via Build. Once built it holds only read-only slices and a read-only
// map, so it requires no synchronization: unrestricted concurrent Lookup
// calls from any number of goroutines are safe. It carries no mutex, unlike
// the mutable collections elsewhere in this module, because nothing about it
// ever changes after Build returns.
type DoubleArray struct {
	base  []uint32
	check []uint32
	tails map[int32][]byte
}

// MemoryStats reports the footprint of a built DoubleArray, split by
// component, for the benefit of benchmarking and capacity-planning callers.
type MemoryStats struct {
	BaseBytes  int
	CheckBytes int
	TailBytes  int
	TailCount  int
}

// daArrays is the growable pair of backing slices used while lowering. A
// byte's absolute value can force a placement offset (write_top) well past
// any slot count estimated from transition widths alone, so the arrays grow
// in place on demand rather than being pre-sized once and indexed blindly —
// the same capacity-doubling idiom stack.Stack uses for its own backing
// slice, applied here to a pair of same-length slices instead of one.
type daArrays struct {
	base  []uint32
	check []uint32
}

func newDaArrays(hint uint32) *daArrays {
	if hint < 4 {
		hint = 4
	}
	return &daArrays{
		base:  make([]uint32, hint),
		check: make([]uint32, hint),
	}
}

// ensure grows the arrays, if necessary, until idx is a valid index.
func (a *daArrays) ensure(idx uint32) {
	if idx < uint32(len(a.base)) {
		return
	}
	size := uint32(len(a.base))
	for size <= idx {
		size *= 2
	}
	newBase := make([]uint32, size)
	newCheck := make([]uint32, size)
	copy(newBase, a.base)
	copy(newCheck, a.check)
	a.base = newBase
	a.check = newCheck
}

// Build constructs a DoubleArray from words, where words[i] is assigned
// record number i. It returns ErrNullByte if any word contains the reserved
// end-of-string byte 0, and ErrDuplicateWord if any two words are equal (or
// if a word exactly equals a word already reduced to a tail).
//
// An empty word list is a valid, if useless, dictionary: the returned
// DoubleArray answers NotFound to every query (see spec scenario 1).
func Build(words [][]byte) (*DoubleArray, error) {
	if len(words) == 0 {
		return &DoubleArray{
			base:  []uint32{0, 1},
			check: []uint32{0, 0xFFFF_FFFF},
			tails: map[int32][]byte{},
		}, nil
	}

	tt := newTempTrie()
	for i, word := range words {
		if bytes.IndexByte(word, 0) >= 0 {
			return nil, fmt.Errorf("%w: word %d", ErrNullByte, i)
		}
		if err := tt.Add(word, int32(i)); err != nil {
			return nil, err
		}
	}
	tt.normalizeRoot()

	// subtreeWidthSum is only a starting capacity hint, not a bound (see its
	// doc comment); arr grows past it on demand as placement requires.
	arr := newDaArrays(uint32(tt.subtreeWidthSum(0) + 2))
	arr.check[1] = 0xFFFF_FFFF

	searchStart := uint32(2)
	writeEnd := uint32(2)

	// The recursive lowering pass of section 4.2 is run here as an explicit
	// work stack of (da_pos, node) pairs rather than native recursion, one
	// of the two re-architectures section 9 sanctions — and a direct reuse
	// of this module's own generic Stack, previously only exercised inside
	// trie.Remove.
	jobs := stack.NewStack[placementJob]()
	_, _ = jobs.Push(placementJob{daPos: 1, nodeIdx: 0})
	for !jobs.IsEmpty() {
		job, err := jobs.Pop()
		if err != nil {
			break
		}
		lowerOne(tt, job.daPos, job.nodeIdx, arr, &searchStart, &writeEnd, jobs)
	}

	return &DoubleArray{
		base:  arr.base[:writeEnd],
		check: arr.check[:writeEnd],
		tails: tt.collectTails(),
	}, nil
}

// placementJob is one pending (state, TempTrie node) pair awaiting lowering.
type placementJob struct {
	daPos   uint32
	nodeIdx int32
}

// lowerOne lowers a single TempTrie node into its double-array slot(s) and
// queues its children for lowering. It implements section 4.2's recursive
// step exactly, modulo recursion having been replaced by the caller's work
// stack.
func lowerOne(
	tt *TempTrie,
	daPos uint32,
	nodeIdx int32,
	arr *daArrays,
	searchStart, writeEnd *uint32,
	jobs *stack.Stack[placementJob],
) {
	node := tt.arena[nodeIdx]

	if node.tail != nil {
		arr.base[daPos] = recordBit | uint32(node.tailRecord)
		return
	}

	minB, _, width, hasRange := tt.outgoingRange(nodeIdx)
	if !hasRange {
		// Only the root of a zero-word dictionary has neither children nor
		// a record nor a tail, and Build special-cases that corpus before
		// lowering ever starts.
		panic("datrie: lowering an empty, non-root node")
	}

	hasRecord := node.record != -1

	// node.children is a treemap.TreeMap, so Keys() already returns the
	// transition bytes in ascending order — no separate sort step needed.
	var childBytes []byte
	if node.children != nil {
		childBytes = node.children.Keys()
	}

	childOffsets := make([]byte, len(childBytes))
	for i, c := range childBytes {
		childOffsets[i] = c - minB
	}

	writeTop := findPlacement(arr, searchStart, hasRecord, minB, childOffsets)
	arr.ensure(writeTop + uint32(width) - 1)

	for _, c := range childBytes {
		arr.check[writeTop+uint32(c-minB)] = daPos
	}
	if hasRecord {
		arr.base[writeTop] = uint32(node.record) | recordBit
		arr.check[writeTop] = daPos
	}
	arr.base[daPos] = writeTop - uint32(minB)

	for _, c := range childBytes {
		childDaPos := writeTop + uint32(c-minB)
		childIdx, _ := node.children.Get(c)
		_, _ = jobs.Push(placementJob{daPos: childDaPos, nodeIdx: childIdx})
	}

	if end := writeTop + uint32(width); end > *writeEnd {
		*writeEnd = end
	}
}

// Lookup walks the double array automaton of section 4.3 and returns the
// record number for an exact match, or NotFound. It never panics: an
// inconsistent check chain (which should be unreachable for a DoubleArray
// built by Build) is treated as NotFound rather than as a fault.
//
// Time Complexity: O(len(query)), plus one tail comparison in the
// tail-compressed case. Lookup performs no allocation and is safe to call
// concurrently from any number of goroutines.
func (d *DoubleArray) Lookup(query []byte) int32 {
	prev := uint32(1)
	pos := 0
	for {
		var c byte
		switch {
		case pos < len(query):
			c = query[pos]
		case pos == len(query):
			c = 0
		default:
			return NotFound
		}

		i := d.base[prev] + uint32(c)
		if i >= uint32(len(d.base)) || i >= uint32(len(d.check)) {
			return NotFound
		}
		if d.check[i] != prev {
			return NotFound
		}

		bv := d.base[i]
		if bv&recordBit != 0 {
			record := int32(bv &^ recordBit)
			if c == 0 {
				return record
			}
			tail, ok := d.tails[record]
			if ok && bytes.Equal(tail, query[pos+1:]) {
				return record
			}
			return NotFound
		}

		prev = i
		pos++
	}
}

// SizeInSlots returns the number of uint32 slots used by base (equivalently
// check).
func (d *DoubleArray) SizeInSlots() int {
	return len(d.base)
}

// MemoryFootprint reports the byte footprint of base, check, and tails.
func (d *DoubleArray) MemoryFootprint() MemoryStats {
	tailBytes := 0
	for _, t := range d.tails {
		tailBytes += len(t)
	}
	return MemoryStats{
		BaseBytes:  len(d.base) * 4,
		CheckBytes: len(d.check) * 4,
		TailBytes:  tailBytes,
		TailCount:  len(d.tails),
	}
}
