// Package raster normalizes captured camera images into the RGBA form
// the detector consumes and provides per-pixel accessors.
package raster

import (
	"image"
	"image/draw"
)

// ToRGBA returns img as an *image.RGBA with origin (0,0), copying only
// when the input is not already in that form.
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}

// RGB returns the channels of the pixel at (x, y) as float64 values.
func RGB(img *image.RGBA, x, y int) (r, g, b float64) {
	i := img.PixOffset(x, y)
	return float64(img.Pix[i]), float64(img.Pix[i+1]), float64(img.Pix[i+2])
}

// Brightness is the channel sum used to rank pixels within a band.
func Brightness(r, g, b float64) float64 {
	return r + g + b
}
