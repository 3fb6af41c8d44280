package cooked

import "testing"

func TestGraphemeNextPrev(t *testing.T) {
	combining := "éx" // "e" + combining acute accent + "x"
	cases := []struct {
		text string
		i    int
		next int
		prev int
	}{
		{"hello", 0, 1, 0},
		{"hello", 5, 5, 4},
		{"", 0, 0, 0},
		{combining, 0, 3, 0},
		{combining, 3, 4, 0},
	}
	for _, c := range cases {
		if got := graphemeNext(c.text, c.i); got != c.next {
			t.Errorf("graphemeNext(%q, %d) = %d, want %d", c.text, c.i, got, c.next)
		}
		if got := graphemePrev(c.text, c.i); got != c.prev {
			t.Errorf("graphemePrev(%q, %d) = %d, want %d", c.text, c.i, got, c.prev)
		}
	}
}

func TestGraphemeNextPrevRoundTrip(t *testing.T) {
	text := "foo bar baz"
	i := 0
	for i < len(text) {
		j := graphemeNext(text, i)
		if back := graphemePrev(text, j); back != i {
			t.Fatalf("graphemePrev(graphemeNext(%d)) = %d, want %d", i, back, i)
		}
		i = j
	}
}

func TestDelimClass(t *testing.T) {
	cases := []struct {
		s    string
		want DelimClass
	}{
		{" ", DelimSpace},
		{"a", DelimWord},
		{"9", DelimWord},
		{"_", DelimWord},
		{".", DelimOther},
		{"é", DelimWord}, // "é", letter outside ASCII
	}
	for _, c := range cases {
		if got := delimClass(c.s); got != c.want {
			t.Errorf("delimClass(%q) = %v, want %v", c.s, got, c.want)
		}
	}
}
