package opcode

import "testing"

func TestAlphaAddr(t *testing.T) {
	cases := []struct {
		chr  rune
		want uint16
	}{
		{'0', 0},
		{'a', 50},
		{'A', 50},
		{'!', 180},
	}
	for _, c := range cases {
		got, ok := AlphaAddr(c.chr)
		if !ok || got != c.want {
			t.Errorf("AlphaAddr(%q) = %d,%v want %d,true", c.chr, got, ok, c.want)
		}
	}
}
