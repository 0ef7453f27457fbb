package vec

import "testing"

func TestFloorDiv(t *testing.T) {
	cases := []struct{ a, b, want int }{
		{0, 16, 0},
		{15, 16, 0},
		{16, 16, 1},
		{-1, 16, -1},
		{-16, 16, -1},
		{-17, 16, -2},
	}
	for _, c := range cases {
		if got := FloorDiv(c.a, c.b); got != c.want {
			t.Errorf("FloorDiv(%d, %d) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}

func TestMod(t *testing.T) {
	cases := []struct{ a, b, want int }{
		{0, 16, 0},
		{15, 16, 15},
		{16, 16, 0},
		{-1, 16, 15},
		{-17, 16, 15},
	}
	for _, c := range cases {
		if got := Mod(c.a, c.b); got != c.want {
			t.Errorf("Mod(%d, %d) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}

func TestChebyshev(t *testing.T) {
	a := ChunkCoord{X: 2, Z: -3}
	b := ChunkCoord{X: -1, Z: 1}
	if d := a.ChebyshevTo(b); d != 4 {
		t.Errorf("distance = %d, want 4", d)
	}
	if d := a.ChebyshevTo(a); d != 0 {
		t.Errorf("self distance = %d, want 0", d)
	}
}
