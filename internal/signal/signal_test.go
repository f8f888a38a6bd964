package signal

import "testing"

func TestSetLen(t *testing.T) {
	s := NewSet(3)
	if s.Len() != 3 {
		t.Fatalf("expected len 3, got %d", s.Len())
	}
	s.Exit = s.Exit[:2]
	if s.Len() != -1 {
		t.Fatalf("expected mismatch marker, got %d", s.Len())
	}
}

func TestCountAndFloat(t *testing.T) {
	s := Set{
		Buy:  []bool{true, false, false},
		Sell: []bool{false, false, true},
		Exit: []bool{false, true, true},
	}
	buy, sell, exit := s.Count()
	if buy != 1 || sell != 1 || exit != 2 {
		t.Fatalf("unexpected counts %d/%d/%d", buy, sell, exit)
	}
	got := Float(s.Exit)
	if got[0] != 0 || got[1] != 1 || got[2] != 1 {
		t.Fatalf("unexpected float flags %v", got)
	}
}
