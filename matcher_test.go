package odz

import (
	"bytes"
	"math/rand"
	"testing"
)

func TestMatcherFindsExactRepeat(t *testing.T) {
	data := []byte("the quick brown fox. the quick brown fox jumps.")
	m := acquireMatcher()
	defer releaseMatcher(m)

	needle := []byte("the quick brown fox")
	start := bytes.Index(data, needle)
	repeat := bytes.LastIndex(data, needle)
	if start == repeat {
		t.Fatal("test fixture does not contain a repeated substring")
	}

	for i := 0; i < repeat; i++ {
		m.findBest(data, i, len(data))
		m.insert(data, i)
	}

	length, dist := m.findBest(data, repeat, len(data))
	if length < len(needle) {
		t.Fatalf("expected match length >= %d at repeated position, got %d", len(needle), length)
	}
	if dist != repeat-start {
		t.Fatalf("expected distance %d, got %d", repeat-start, dist)
	}
}

func TestMatcherRespectsLimit(t *testing.T) {
	data := bytes.Repeat([]byte{'a'}, 300)
	m := acquireMatcher()
	defer releaseMatcher(m)

	for i := 0; i < 100; i++ {
		m.insert(data, i)
	}
	length, _ := m.findBest(data, 100, 150)
	if 100+length > 150 {
		t.Fatalf("match of length %d at pos 100 crosses limit 150", length)
	}
}

func TestMatcherNoMatchBelowMinMatch(t *testing.T) {
	data := []byte("abcdefghij")
	m := acquireMatcher()
	defer releaseMatcher(m)
	for i := 0; i < len(data); i++ {
		m.insert(data, i)
	}
	length, dist := m.findBest(data, 0, len(data))
	if length != 0 || dist != 0 {
		t.Fatalf("expected no match in all-unique data, got length=%d dist=%d", length, dist)
	}
}

func TestMatcherOnRandomData(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	data := make([]byte, 4096)
	rng.Read(data)

	m := acquireMatcher()
	defer releaseMatcher(m)
	for i := 0; i < len(data); i++ {
		length, dist := m.findBest(data, i, len(data))
		m.insert(data, i)
		if length > 0 {
			if dist <= 0 || dist > i {
				t.Fatalf("pos %d: invalid distance %d", i, dist)
			}
			if !bytes.Equal(data[i-dist:i-dist+length], data[i:i+length]) {
				t.Fatalf("pos %d: match of length %d at distance %d is not a real repeat", i, length, dist)
			}
		}
	}
}
