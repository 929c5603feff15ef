package detect

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Config holds the detector's heuristic thresholds. The defaults were
// tuned against phone cameras filming a laptop display; hosts with
// different optics can override them from a YAML document.
type Config struct {
	// MinRowScoreFrac is the minimum peak row score, as a fraction of
	// the raster width, below which no aurora region is assumed.
	MinRowScoreFrac float64 `yaml:"min_row_score_frac"`
	// RowSpanFrac and ColSpanFrac set the score cutoffs, relative to
	// the peak row/column score, that bound the region vertically and
	// horizontally.
	RowSpanFrac float64 `yaml:"row_span_frac"`
	ColSpanFrac float64 `yaml:"col_span_frac"`
	// MinHeightFrac and MinWidthFrac reject regions smaller than these
	// fractions of the raster.
	MinHeightFrac float64 `yaml:"min_height_frac"`
	MinWidthFrac  float64 `yaml:"min_width_frac"`
	// MinPixelBrightness is the r+g+b floor for a pixel to count
	// toward a band's color.
	MinPixelBrightness float64 `yaml:"min_pixel_brightness"`
	// TopBrightnessFrac is the fraction of brightest band pixels
	// averaged into the band color.
	TopBrightnessFrac float64 `yaml:"top_brightness_frac"`
	// MinConfidence is the mean band confidence below which the frame
	// is reported as not detected.
	MinConfidence float64 `yaml:"min_confidence"`
}

// DefaultConfig returns the reference thresholds.
func DefaultConfig() Config {
	return Config{
		MinRowScoreFrac:    0.10,
		RowSpanFrac:        0.30,
		ColSpanFrac:        0.20,
		MinHeightFrac:      0.05,
		MinWidthFrac:       0.30,
		MinPixelBrightness: 30,
		TopBrightnessFrac:  0.25,
		MinConfidence:      0.15,
	}
}

// ParseConfig reads thresholds from a YAML document. Fields absent
// from the document keep their defaults.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("detect: failed to parse config: %w", err)
	}
	return cfg, nil
}
