package raster

import (
	"image"
	"image/color"
	"testing"
)

func TestToRGBAPassthrough(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	if got := ToRGBA(img); got != img {
		t.Error("zero-origin RGBA raster was copied")
	}
}

func TestToRGBAConverts(t *testing.T) {
	src := image.NewNRGBA(image.Rect(2, 3, 6, 7))
	src.Set(2, 3, color.NRGBA{R: 10, G: 20, B: 30, A: 255})

	got := ToRGBA(src)
	if got.Bounds() != image.Rect(0, 0, 4, 4) {
		t.Fatalf("bounds = %v, want 4x4 at origin", got.Bounds())
	}
	r, g, b := RGB(got, 0, 0)
	if r != 10 || g != 20 || b != 30 {
		t.Errorf("pixel = %v,%v,%v, want 10,20,30", r, g, b)
	}
}

func TestBrightness(t *testing.T) {
	if got := Brightness(10, 20, 30); got != 60 {
		t.Errorf("Brightness = %v, want 60", got)
	}
}
