package datrie

import "testing"

// TestTempTrieMatchesSelf is a differential check: every inserted word must
// be found by TempTrie's own recursive-descent Lookup, and a handful of
// probes that were never inserted must not be.
func TestTempTrieMatchesSelf(t *testing.T) {
	words := []string{"cat", "car", "cart", "dog", "do", "alpha", "alphabet", "beta"}

	tt := newTempTrie()
	for i, w := range words {
		if err := tt.Add([]byte(w), int32(i)); err != nil {
			t.Fatalf("Add(%q): %v", w, err)
		}
	}

	for i, w := range words {
		got, ok := tt.Lookup([]byte(w))
		if !ok {
			t.Errorf("TempTrie.Lookup(%q) not found; want %d", w, i)
			continue
		}
		if got != int32(i) {
			t.Errorf("TempTrie.Lookup(%q) = %d; want %d", w, got, i)
		}
	}

	for _, miss := range []string{"ca", "carts", "doge", "al", "b"} {
		if _, ok := tt.Lookup([]byte(miss)); ok {
			t.Errorf("TempTrie.Lookup(%q) found; want not found", miss)
		}
	}
}

// TestTempTrieAgreesWithDoubleArray builds both representations from the same
// corpus and checks that lowering preserved every answer TempTrie itself
// would give, on both hits and misses.
func TestTempTrieAgreesWithDoubleArray(t *testing.T) {
	words := []string{"a", "ab", "abcd", "abce", "cat", "car", "cart", "dog", "do"}

	tt := newTempTrie()
	for i, w := range words {
		if err := tt.Add([]byte(w), int32(i)); err != nil {
			t.Fatalf("Add(%q): %v", w, err)
		}
	}
	tt.normalizeRoot()

	byteWords := make([][]byte, len(words))
	for i, w := range words {
		byteWords[i] = []byte(w)
	}
	da, err := Build(byteWords)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	probes := append(append([]string{}, words...), "", "ab", "abc", "abcf", "catering", "z")
	for _, p := range probes {
		wantRecord, wantOK := tt.Lookup([]byte(p))
		gotRecord := da.Lookup([]byte(p))
		if wantOK && gotRecord != wantRecord {
			t.Errorf("probe %q: TempTrie says record %d, DoubleArray says %d", p, wantRecord, gotRecord)
		}
		if !wantOK && gotRecord != NotFound {
			t.Errorf("probe %q: TempTrie says not found, DoubleArray says record %d", p, gotRecord)
		}
	}
}

func TestTempTrieDuplicateWord(t *testing.T) {
	tt := newTempTrie()
	if err := tt.Add([]byte("cat"), 0); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := tt.Add([]byte("cat"), 1); err == nil {
		t.Errorf("Add(duplicate) = nil error; want ErrDuplicateWord")
	}
}

func TestOutgoingRangeEmptyNode(t *testing.T) {
	tt := newTempTrie()
	_, _, width, hasRange := tt.outgoingRange(0)
	if hasRange || width != 0 {
		t.Errorf("outgoingRange(empty root) = (width=%d, hasRange=%v); want (0, false)", width, hasRange)
	}
}
