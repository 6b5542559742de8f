package gate

import (
	"testing"
)

func TestToFeatureSetRoundTrip(t *testing.T) {
	s := NewSet("A", "B", "C")
	if got := ToFeatureSet(s.Join()); !got.Equal(s) {
		t.Errorf("Expected round trip to preserve set, got %v", got.Sorted())
	}
}

func TestToFeatureSetEmpty(t *testing.T) {
	if got := ToFeatureSet(""); len(got) != 0 {
		t.Errorf("Expected empty string to parse to empty set, got %v", got.Sorted())
	}
}

func TestToFeatureSetDiscardsEmptySegments(t *testing.T) {
	got := ToFeatureSet("A,,B")
	if !got.Equal(NewSet("A", "B")) {
		t.Errorf("Expected empty segments to be discarded, got %v", got.Sorted())
	}

	got = ToFeatureSet(",A,B,")
	if !got.Equal(NewSet("A", "B")) {
		t.Errorf("Expected leading/trailing commas to be discarded, got %v", got.Sorted())
	}
}

func TestJoinIsSorted(t *testing.T) {
	s := NewSet("C", "A", "B")
	if got := s.Join(); got != "A,B,C" {
		t.Errorf("Expected sorted join A,B,C, got %s", got)
	}
}

func TestIntersect(t *testing.T) {
	a := NewSet("A", "B", "C")
	b := NewSet("B", "C", "D")
	if got := a.Intersect(b); !got.Equal(NewSet("B", "C")) {
		t.Errorf("Expected intersection {B,C}, got %v", got.Sorted())
	}
}

func TestCloneIsIndependent(t *testing.T) {
	a := NewSet("A")
	b := a.Clone()
	b.Add("B")
	if a.Contains("B") {
		t.Errorf("Expected clone mutation to not affect original")
	}
}
