package spritemesh

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Metric selects the per-pixel quantity compared against Policy.Threshold.
type Metric int

const (
	// MetricAlpha uses the alpha channel: a/255 > threshold.
	MetricAlpha Metric = iota
	// MetricLuminance uses Rec. 709 luma of the gamma-encoded channels.
	MetricLuminance
	// MetricValue uses the mean of the normalized r, g and b channels.
	MetricValue
)

func (m Metric) String() string {
	switch m {
	case MetricLuminance:
		return "luminance"
	case MetricValue:
		return "value"
	default:
		return "alpha"
	}
}

// ParseMetric accepts the names returned by Metric.String.
func ParseMetric(s string) (Metric, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "alpha", "":
		return MetricAlpha, nil
	case "luminance", "luma":
		return MetricLuminance, nil
	case "value":
		return MetricValue, nil
	}
	return MetricAlpha, fmt.Errorf("%w: unknown metric %q", ErrInvalidConfig, s)
}

// Policy decides which pixels belong to the silhouette.
type Policy struct {
	Metric Metric
	// Threshold in [0,1]. Also the chroma-key tolerance when AlphaColor is set.
	// Ideal start: 0.01 for alpha, 0.1-0.5 for luminance/value on dark backgrounds.
	Threshold float64
	// AlphaColor, when non-nil, is a background colour treated as transparent
	// regardless of the alpha channel. Its A component is ignored.
	AlphaColor *color.RGBA
}

// ColorDistance is the Euclidean distance of the RGB components of a and b,
// normalized to [0,1]. Alpha is ignored.
func ColorDistance(a, b color.Color) float64 {
	return rgbDistance(opaqueColorful(a), opaqueColorful(b))
}

func rgbDistance(a, b colorful.Color) float64 {
	return a.DistanceRgb(b) / math.Sqrt(3)
}

// opaqueColorful drops alpha without un-premultiplying, so fully transparent
// pixels keep the RGB bytes they were stored with.
func opaqueColorful(c color.Color) colorful.Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return colorful.Color{
		R: float64(n.R) / 255.0,
		G: float64(n.G) / 255.0,
		B: float64(n.B) / 255.0,
	}
}

// Classify reports whether c is a foreground pixel under p.
func Classify(p Policy, c color.NRGBA) bool {
	return p.Classifier()(c)
}

// Classifier returns p as a reusable predicate. The chroma key is converted
// once instead of per pixel.
func (p Policy) Classifier() func(color.NRGBA) bool {
	threshold := p.Threshold
	keyed := p.AlphaColor != nil
	var key colorful.Color
	if keyed {
		key = colorful.Color{
			R: float64(p.AlphaColor.R) / 255.0,
			G: float64(p.AlphaColor.G) / 255.0,
			B: float64(p.AlphaColor.B) / 255.0,
		}
	}
	metric := p.Metric
	return func(c color.NRGBA) bool {
		r := float64(c.R) / 255.0
		g := float64(c.G) / 255.0
		b := float64(c.B) / 255.0
		if keyed && rgbDistance(colorful.Color{R: r, G: g, B: b}, key) <= threshold {
			return false
		}
		switch metric {
		case MetricLuminance:
			return 0.2126*r+0.7152*g+0.0722*b > threshold
		case MetricValue:
			return (r+g+b)/3 > threshold
		default:
			return float64(c.A)/255.0 > threshold
		}
	}
}

func (p Policy) validate() error {
	if math.IsNaN(p.Threshold) || p.Threshold < 0 || p.Threshold > 1 {
		return fmt.Errorf("%w: threshold %v outside [0,1]", ErrInvalidConfig, p.Threshold)
	}
	switch p.Metric {
	case MetricAlpha, MetricLuminance, MetricValue:
		return nil
	}
	return fmt.Errorf("%w: unknown metric %d", ErrInvalidConfig, int(p.Metric))
}
