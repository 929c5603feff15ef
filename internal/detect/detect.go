// Package detect locates the aurora strip in a captured raster,
// segments it into 32 bands, and reconstructs the candidate frame the
// strip encodes.
package detect

import (
	"image"
	"sort"

	"github.com/tuomas-lb/auroralink/internal/band"
	"github.com/tuomas-lb/auroralink/internal/frame"
	"github.com/tuomas-lb/auroralink/internal/palette"
	"github.com/tuomas-lb/auroralink/internal/raster"
)

// Status classifies a detection attempt.
type Status int

const (
	// NoRegion means no plausible aurora strip was found.
	NoRegion Status = iota
	// LowConfidence means a strip was found but the band colors sit
	// too far from the palette to trust.
	LowConfidence
	// ChecksumMismatch means bands decoded to a frame whose CRC fails.
	ChecksumMismatch
	// OK means a CRC-valid frame was reconstructed.
	OK
)

func (s Status) String() string {
	switch s {
	case NoRegion:
		return "no region"
	case LowConfidence:
		return "low confidence"
	case ChecksumMismatch:
		return "checksum mismatch"
	case OK:
		return "ok"
	default:
		return "unknown"
	}
}

// Result is the outcome of one detection attempt. Indices and
// Confidence are populated whenever a region was found, including on
// failed attempts, so hosts can surface diagnostics. Frame is
// meaningful for OK and ChecksumMismatch.
type Result struct {
	Status     Status
	Indices    [band.Count]byte
	Confidence float64
	Frame      frame.Frame
	Region     image.Rectangle
}

// Detector reconstructs frames from rasters using a fixed Config.
type Detector struct {
	cfg Config
}

// New returns a detector with the given thresholds.
func New(cfg Config) *Detector {
	return &Detector{cfg: cfg}
}

// Detect runs the full pipeline on one RGBA raster.
func (d *Detector) Detect(img *image.RGBA) Result {
	region, ok := d.findRegion(img)
	if !ok {
		return Result{Status: NoRegion}
	}

	res := Result{Region: region}
	confs := make([]float64, band.Count)
	for i := 0; i < band.Count; i++ {
		c := d.bandColor(img, region, i)
		res.Indices[i] = byte(palette.Closest(c))
		confs[i] = palette.Confidence(c)
	}
	res.Confidence = mean(confs)

	if res.Confidence < d.cfg.MinConfidence {
		res.Status = LowConfidence
		return res
	}

	raw, err := band.ToBytes(res.Indices[:])
	if err != nil {
		res.Status = LowConfidence
		return res
	}
	f, err := frame.Deserialize(raw[:])
	if err != nil {
		res.Status = LowConfidence
		return res
	}
	res.Frame = f
	if frame.Checksum(f.Chunk[:]) != f.Checksum {
		res.Status = ChecksumMismatch
		return res
	}
	res.Status = OK
	return res
}

// isAurora tests whether a pixel carries one of the strip's hue
// families: the green core, the cyan mid-tones, or the purple edge.
func isAurora(r, g, b float64) bool {
	green := g > 1.1*r && g > 30
	cyan := g > 0.9*r && b > 0.6*r && g+b > 80
	purple := b > 0.6*r && r > 0.4*g && r+b > 80
	if !green && !cyan && !purple {
		return false
	}
	return (r+g+b)/3 > 30
}

// findRegion scans the raster for the aurora strip and returns its
// bounding rectangle.
func (d *Detector) findRegion(img *image.RGBA) (image.Rectangle, bool) {
	w := img.Bounds().Dx()
	h := img.Bounds().Dy()
	if w == 0 || h == 0 {
		return image.Rectangle{}, false
	}

	rowScore := make([]float64, h)
	colScore := make([]float64, w)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b := raster.RGB(img, x, y)
			if isAurora(r, g, b) {
				rowScore[y]++
				colScore[x]++
			}
		}
	}

	maxRow := maxScore(rowScore)
	if maxRow < d.cfg.MinRowScoreFrac*float64(w) {
		return image.Rectangle{}, false
	}
	maxCol := maxScore(colScore)

	y0, y1 := span(rowScore, d.cfg.RowSpanFrac*maxRow)
	x0, x1 := span(colScore, d.cfg.ColSpanFrac*maxCol)
	if y0 < 0 || x0 < 0 {
		return image.Rectangle{}, false
	}
	if float64(y1-y0) < d.cfg.MinHeightFrac*float64(h) ||
		float64(x1-x0) < d.cfg.MinWidthFrac*float64(w) {
		return image.Rectangle{}, false
	}
	return image.Rect(x0, y0, x1+1, y1+1), true
}

func mean(xs []float64) float64 {
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func maxScore(scores []float64) float64 {
	m := scores[0]
	for _, s := range scores[1:] {
		if s > m {
			m = s
		}
	}
	return m
}

// span returns the first and last indices whose score exceeds the
// threshold, or (-1, -1) when none does.
func span(scores []float64, threshold float64) (int, int) {
	first, last := -1, -1
	for i, s := range scores {
		if s > threshold {
			if first < 0 {
				first = i
			}
			last = i
		}
	}
	return first, last
}

// bandColor averages the brightest pixels of the i-th of 32 equal
// horizontal slices of the region. An empty slice is black.
func (d *Detector) bandColor(img *image.RGBA, region image.Rectangle, i int) palette.Color {
	sliceW := float64(region.Dx()) / band.Count
	x0 := region.Min.X + int(float64(i)*sliceW)
	x1 := region.Min.X + int(float64(i+1)*sliceW)
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if x1 > region.Max.X {
		x1 = region.Max.X
	}

	type px struct {
		r, g, b    float64
		brightness float64
	}
	var pixels []px
	for y := region.Min.Y; y < region.Max.Y; y++ {
		for x := x0; x < x1; x++ {
			r, g, b := raster.RGB(img, x, y)
			if sum := raster.Brightness(r, g, b); sum > d.cfg.MinPixelBrightness {
				pixels = append(pixels, px{r, g, b, sum})
			}
		}
	}
	if len(pixels) == 0 {
		return palette.Color{}
	}

	sort.Slice(pixels, func(a, b int) bool {
		return pixels[a].brightness > pixels[b].brightness
	})
	top := int(float64(len(pixels)) * d.cfg.TopBrightnessFrac)
	if top < 1 {
		top = 1
	}

	var r, g, b float64
	for _, p := range pixels[:top] {
		r += p.r
		g += p.g
		b += p.b
	}
	n := float64(top)
	return palette.Color{
		R: clamp8(r / n),
		G: clamp8(g / n),
		B: clamp8(b / n),
	}
}

// clamp8 clamps a float64 value to [0, 255] and rounds to uint8.
func clamp8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
