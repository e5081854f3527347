package spritemesh

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	key := &color.RGBA{R: 255, B: 255}
	tests := []struct {
		name   string
		policy Policy
		pixel  color.NRGBA
		want   bool
	}{
		{"alpha above", Policy{Metric: MetricAlpha, Threshold: 0.5}, color.NRGBA{A: 200}, true},
		{"alpha below", Policy{Metric: MetricAlpha, Threshold: 0.5}, color.NRGBA{R: 255, A: 100}, false},
		{"alpha equal is background", Policy{Metric: MetricAlpha, Threshold: 0}, color.NRGBA{}, false},
		{"luminance green is bright", Policy{Metric: MetricLuminance, Threshold: 0.7}, color.NRGBA{G: 255}, true},
		{"luminance blue is dark", Policy{Metric: MetricLuminance, Threshold: 0.1}, color.NRGBA{B: 255, A: 255}, false},
		{"luminance ignores alpha", Policy{Metric: MetricLuminance, Threshold: 0.5}, color.NRGBA{R: 255, G: 255, B: 255}, true},
		{"value mean", Policy{Metric: MetricValue, Threshold: 0.3}, color.NRGBA{B: 255}, true},
		{"value below", Policy{Metric: MetricValue, Threshold: 0.4}, color.NRGBA{B: 255, A: 255}, false},
		{"chroma key exact match at full alpha", Policy{Metric: MetricAlpha, Threshold: 0.01, AlphaColor: key}, magenta, false},
		{"chroma key within tolerance", Policy{Metric: MetricAlpha, Threshold: 0.1, AlphaColor: key}, color.NRGBA{R: 240, B: 250, A: 255}, false},
		{"chroma key other colour", Policy{Metric: MetricAlpha, Threshold: 0.01, AlphaColor: key}, opaqueWhite, true},
		{"chroma key precedes luminance", Policy{Metric: MetricLuminance, Threshold: 0.2, AlphaColor: key}, magenta, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.policy, tt.pixel))
		})
	}
}

func TestClassifyTotal(t *testing.T) {
	policies := []Policy{
		{Metric: MetricAlpha, Threshold: 0.5},
		{Metric: MetricLuminance, Threshold: 0.5, AlphaColor: &color.RGBA{G: 255}},
		{Metric: MetricValue, Threshold: 1},
	}
	for _, p := range policies {
		isFG := p.Classifier()
		for v := 0; v < 256; v += 5 {
			c := color.NRGBA{R: uint8(v), G: uint8(255 - v), B: uint8(v / 2), A: uint8(v)}
			assert.Equal(t, isFG(c), isFG(c))
			assert.Equal(t, Classify(p, c), isFG(c))
		}
	}
}

func TestColorDistance(t *testing.T) {
	assert.InDelta(t, 0, ColorDistance(color.White, color.White), 1e-12)
	assert.InDelta(t, 1, ColorDistance(color.Black, color.White), 1e-12)
	assert.InDelta(t, 1/1.7320508075688772, ColorDistance(color.NRGBA{R: 255, A: 255}, color.Black), 1e-9)
}

func TestParseMetric(t *testing.T) {
	for _, m := range []Metric{MetricAlpha, MetricLuminance, MetricValue} {
		got, err := ParseMetric(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
	_, err := ParseMetric("hue")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
