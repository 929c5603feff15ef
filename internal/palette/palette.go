// Package palette defines the fixed 16-entry color alphabet of the
// visual channel and the matching functions that map observed colors
// back to 4-bit symbols.
package palette

import "math"

// Size is the number of palette entries; each carries one nibble.
const Size = 16

// Color is an 8-bit-per-channel RGB triple.
type Color struct {
	R, G, B uint8
}

// Colors is the wire-format palette, index order is significant.
var Colors = [Size]Color{
	{20, 60, 40},
	{30, 90, 50},
	{40, 120, 60},
	{50, 150, 70},
	{40, 160, 120},
	{50, 180, 150},
	{60, 200, 180},
	{80, 220, 200},
	{80, 140, 200},
	{100, 120, 200},
	{130, 100, 200},
	{160, 90, 200},
	{180, 100, 180},
	{200, 110, 160},
	{220, 130, 150},
	{240, 160, 160},
}

// confidenceScale is the weighted distance at which confidence
// reaches zero.
const confidenceScale = 150.0

// Euclidean returns the plain RGB distance between two colors.
func Euclidean(a, b Color) float64 {
	dr := float64(a.R) - float64(b.R)
	dg := float64(a.G) - float64(b.G)
	db := float64(a.B) - float64(b.B)
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

// Weighted returns a luminance-weighted RGB distance. The weights are
// the BT.601 luma coefficients, which track how cameras expose the
// three channels.
func Weighted(a, b Color) float64 {
	dr := float64(a.R) - float64(b.R)
	dg := float64(a.G) - float64(b.G)
	db := float64(a.B) - float64(b.B)
	return math.Sqrt(0.30*dr*dr + 0.59*dg*dg + 0.11*db*db)
}

// Closest returns the palette index nearest to c under the weighted
// distance. Ties break to the lowest index.
func Closest(c Color) int {
	best := 0
	bestDist := Weighted(c, Colors[0])
	for i := 1; i < Size; i++ {
		if d := Weighted(c, Colors[i]); d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}

// Confidence scores how well c matches its nearest palette entry,
// 1 for an exact match falling linearly to 0 at confidenceScale.
func Confidence(c Color) float64 {
	d := Weighted(c, Colors[Closest(c)])
	conf := 1 - d/confidenceScale
	if conf < 0 {
		return 0
	}
	return conf
}

// SplitByte returns the high and low nibbles of b as palette indices.
func SplitByte(b byte) (hi, lo byte) {
	return (b >> 4) & 0xF, b & 0xF
}

// JoinNibbles reassembles a byte from two palette indices.
func JoinNibbles(hi, lo byte) byte {
	return (hi&0xF)<<4 | lo&0xF
}
