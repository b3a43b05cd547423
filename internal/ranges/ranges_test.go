package ranges

import "testing"

func TestContains(t *testing.T) {
	l := New([]Range{{7, -2}, {1, 4}, {9, 12}, {3, 6}, {5, 5}, {12, 13}})

	cases := map[int32]bool{
		0: false, 1: true, 2: true, 3: true, 4: true, 5: true,
		6: false, 7: false, 8: false, 9: true, 10: true, 11: true,
		12: true, 13: false, 14: false,
	}
	for x, want := range cases {
		if got := l.Contains(x); got != want {
			t.Errorf("Contains(%d) = %v, want %v", x, got, want)
		}
	}
}

func TestMergeAdjacent(t *testing.T) {
	l := New([]Range{{1, 4}, {4, 8}, {10, 12}})
	if len(l.Ranges()) != 2 {
		t.Fatalf("expected 2 merged ranges, got %v", l.Ranges())
	}
	if !l.Contains(5) || l.Contains(9) {
		t.Fatal("unexpected membership after merge")
	}
}

func TestOverlaps(t *testing.T) {
	l := New([]Range{{19000, 20000}})
	if !l.Overlaps(19500, 19600) {
		t.Fatal("expected overlap")
	}
	if l.Overlaps(20000, 20001) {
		t.Fatal("did not expect overlap at boundary")
	}
}
