package common

import (
	"image/color"
	"testing"
)

func TestParseHexColor(t *testing.T) {
	cases := []struct {
		in      string
		want    color.NRGBA
		wantErr bool
	}{
		{in: "#4c6baf", want: color.NRGBA{R: 0x4c, G: 0x6b, B: 0xaf, A: 0xff}},
		{in: "ff000080", want: color.NRGBA{R: 0xff, A: 0x80}},
		{in: "#fff", wantErr: true},
		{in: "#gg0000", wantErr: true},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			got, err := ParseHexColor(c.in)
			if c.wantErr {
				if err == nil {
					t.Fatalf("expected an error")
				}
				if HexColor(c.in) != (color.NRGBA{R: 0xff, B: 0xff, A: 0xff}) {
					t.Fatalf("HexColor should fall back to magenta")
				}
				return
			}
			if err != nil || got != c.want {
				t.Fatalf("ParseHexColor(%q) = %v, %v; want %v", c.in, got, err, c.want)
			}
		})
	}
}

func TestRectIntersects(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 32, H: 32}
	cases := []struct {
		name string
		b    Rect
		want bool
	}{
		{"overlap", Rect{X: 16, Y: 16, W: 32, H: 32}, true},
		{"shared_edge", Rect{X: 32, Y: 0, W: 32, H: 32}, false},
		{"apart", Rect{X: 100, Y: 100, W: 1, H: 1}, false},
		{"inflated_edge", Rect{X: 32, Y: 0, W: 32, H: 32}.Inflate(1), true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := a.Intersects(c.b); got != c.want {
				t.Fatalf("Intersects = %v, want %v", got, c.want)
			}
		})
	}
}
