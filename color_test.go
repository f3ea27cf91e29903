package sparrow

import (
	"image/color"
	"math"
	"testing"

	"github.com/gogpu/gputypes"
)

func TestColor_Pack(t *testing.T) {
	tests := []struct {
		name string
		c    Color
		want uint32
	}{
		{"black", Black, 0xff000000},
		{"white", White, 0xffffffff},
		{"red", Red, 0xff0000ff},
		{"blue", Blue, 0xffff0000},
		{"transparent", Transparent, 0},
		{"clamped", Color{R: 2, G: -1, B: 0.5, A: 1}, 0xff8000ff},
		{"nan", Color{R: float32NaN(), A: 1}, 0xff000000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.Pack(); got != tt.want {
				t.Errorf("Pack() = %#08x, want %#08x", got, tt.want)
			}
		})
	}
}

func TestColor_Unpack(t *testing.T) {
	c := Unpack(0x80ff4000)
	if c.R != 0 || c.G != 64.0/255 || c.B != 1 || c.A != 128.0/255 {
		t.Errorf("Unpack() = %+v", c)
	}
	if got := Unpack(0x80ff4000).Pack(); got != 0x80ff4000 {
		t.Errorf("Unpack().Pack() = %#08x", got)
	}
}

func TestColor_Premultiply(t *testing.T) {
	got := Color{R: 1, G: 0.5, B: 0, A: 0.5}.Premultiply()
	want := Color{R: 0.5, G: 0.25, B: 0, A: 0.5}
	if got != want {
		t.Errorf("Premultiply() = %+v, want %+v", got, want)
	}
}

func TestColor_Conversions(t *testing.T) {
	if got := FromGPU(gputypes.ColorWhite); got != White {
		t.Errorf("FromGPU(white) = %+v, want %+v", got, White)
	}
	if got := Red.GPU(); got != (gputypes.Color{R: 1, A: 1}) {
		t.Errorf("GPU() = %+v", got)
	}
	if got := FromColor(color.RGBA{R: 255, A: 255}); got != Red {
		t.Errorf("FromColor(red) = %+v, want %+v", got, Red)
	}
	if got := Green.RGBA8(); got != (color.RGBA{G: 255, A: 255}) {
		t.Errorf("RGBA8() = %+v", got)
	}
}

func TestColor_Lerp(t *testing.T) {
	got := Black.Lerp(White, 0.5)
	if got.R != 0.5 || got.A != 1 {
		t.Errorf("Lerp() = %+v", got)
	}
}

func TestHSL(t *testing.T) {
	tests := []struct {
		h    float64
		want Color
	}{
		{0, Red},
		{120, Green},
		{240, Blue},
		{360, Red},
		{-240, Green},
	}
	for _, tt := range tests {
		got := HSL(tt.h, 1, 0.5)
		if got.Pack() != tt.want.Pack() {
			t.Errorf("HSL(%v, 1, 0.5) = %+v, want %+v", tt.h, got, tt.want)
		}
	}
}

func float32NaN() float32 { return float32(math.NaN()) }
