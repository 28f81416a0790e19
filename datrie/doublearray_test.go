package datrie

import (
	"errors"
	"math/rand"
	"testing"
)

func bwords(ss ...string) [][]byte {
	out := make([][]byte, len(ss))
	for i, s := range ss {
		out[i] = []byte(s)
	}
	return out
}

func TestBuildEmptyCorpus(t *testing.T) {
	da, err := Build(nil)
	if err != nil {
		t.Fatalf("Build(nil) returned error: %v", err)
	}
	for _, q := range []string{"", "a", "anything"} {
		if got := da.Lookup([]byte(q)); got != NotFound {
			t.Errorf("Lookup(%q) = %d; want NotFound", q, got)
		}
	}
}

func TestBuildSingleWord(t *testing.T) {
	da, err := Build(bwords("a"))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if got := da.Lookup([]byte("a")); got != 0 {
		t.Errorf("Lookup(%q) = %d; want 0", "a", got)
	}
	for _, q := range []string{"", "b", "aa"} {
		if got := da.Lookup([]byte(q)); got != NotFound {
			t.Errorf("Lookup(%q) = %d; want NotFound", q, got)
		}
	}
}

func TestBuildRecordWithDescendants(t *testing.T) {
	da, err := Build(bwords("a", "ab"))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	cases := map[string]int32{
		"a":  0,
		"ab": 1,
	}
	for q, want := range cases {
		if got := da.Lookup([]byte(q)); got != want {
			t.Errorf("Lookup(%q) = %d; want %d", q, got, want)
		}
	}
	for _, q := range []string{"b", "abc", ""} {
		if got := da.Lookup([]byte(q)); got != NotFound {
			t.Errorf("Lookup(%q) = %d; want NotFound", q, got)
		}
	}
}

func TestBuildTailExpansionCascade(t *testing.T) {
	da, err := Build(bwords("abcd", "abce"))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	cases := map[string]int32{
		"abcd": 0,
		"abce": 1,
	}
	for q, want := range cases {
		if got := da.Lookup([]byte(q)); got != want {
			t.Errorf("Lookup(%q) = %d; want %d", q, got, want)
		}
	}
	for _, q := range []string{"abc", "abcf", "abcde", ""} {
		if got := da.Lookup([]byte(q)); got != NotFound {
			t.Errorf("Lookup(%q) = %d; want NotFound", q, got)
		}
	}
}

func TestBuildBranchingSiblings(t *testing.T) {
	words := []string{"cat", "car", "cart", "dog", "do"}
	da, err := Build(bwords(words...))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	for i, w := range words {
		if got := da.Lookup([]byte(w)); got != int32(i) {
			t.Errorf("Lookup(%q) = %d; want %d", w, got, i)
		}
	}
	for _, q := range []string{"ca", "carts", "doge", "d"} {
		if got := da.Lookup([]byte(q)); got != NotFound {
			t.Errorf("Lookup(%q) = %d; want NotFound", q, got)
		}
	}
}

func TestBuildDuplicateWord(t *testing.T) {
	_, err := Build(bwords("cat", "cat"))
	if !errors.Is(err, ErrDuplicateWord) {
		t.Errorf("Build(duplicate) error = %v; want ErrDuplicateWord", err)
	}
}

func TestBuildDuplicateAfterExpansion(t *testing.T) {
	_, err := Build(bwords("cat", "cats", "cat"))
	if !errors.Is(err, ErrDuplicateWord) {
		t.Errorf("Build(duplicate after tail expansion) error = %v; want ErrDuplicateWord", err)
	}
}

func TestBuildNullByte(t *testing.T) {
	_, err := Build([][]byte{[]byte("ca\x00t")})
	if !errors.Is(err, ErrNullByte) {
		t.Errorf("Build(null byte) error = %v; want ErrNullByte", err)
	}
}

func TestDoubleArrayRandomRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	alphabet := "abcdefghijklmnopqrstuvwxyz"

	seen := make(map[string]bool)
	var words [][]byte
	for len(words) < 2000 {
		n := 1 + r.Intn(12)
		buf := make([]byte, n)
		for i := range buf {
			buf[i] = alphabet[r.Intn(len(alphabet))]
		}
		s := string(buf)
		if seen[s] {
			continue
		}
		seen[s] = true
		words = append(words, buf)
	}

	da, err := Build(words)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	for i, w := range words {
		if got := da.Lookup(w); got != int32(i) {
			t.Errorf("Lookup(%q) = %d; want %d", w, got, i)
		}
	}

	misses := 0
	for misses < 2000 {
		n := 1 + r.Intn(12)
		buf := make([]byte, n)
		for i := range buf {
			buf[i] = alphabet[r.Intn(len(alphabet))]
		}
		s := string(buf)
		if seen[s] {
			continue
		}
		misses++
		if got := da.Lookup(buf); got != NotFound {
			t.Errorf("Lookup(%q) = %d; want NotFound (not inserted)", s, got)
		}
	}
}

func TestMemoryFootprint(t *testing.T) {
	da, err := Build(bwords("alpha", "alphabet", "beta"))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	stats := da.MemoryFootprint()
	if stats.BaseBytes != da.SizeInSlots()*4 {
		t.Errorf("BaseBytes = %d; want %d", stats.BaseBytes, da.SizeInSlots()*4)
	}
	if stats.CheckBytes != da.SizeInSlots()*4 {
		t.Errorf("CheckBytes = %d; want %d", stats.CheckBytes, da.SizeInSlots()*4)
	}
	if stats.TailCount == 0 {
		t.Errorf("TailCount = 0; want at least one tail-compressed word in %v", []string{"alpha", "alphabet", "beta"})
	}
}
