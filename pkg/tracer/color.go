package tracer

import (
	"image/color"
	"math"
)

// PathColor encodes wavelength and intensity as a draw color. Wavelengths in
// the visible band map onto an approximate spectral RGB; wavelength 0
// (unspecified) draws white. Intensity becomes the alpha channel.
func PathColor(wavelengthNm, intensity float64) color.RGBA {
	alpha := uint8(math.Round(clamp01(intensity) * 255))
	if wavelengthNm == 0 {
		return color.RGBA{R: 255, G: 255, B: 255, A: alpha}
	}

	r, g, b := wavelengthRGB(wavelengthNm)
	return color.RGBA{
		R: uint8(math.Round(r * 255)),
		G: uint8(math.Round(g * 255)),
		B: uint8(math.Round(b * 255)),
		A: alpha,
	}
}

// wavelengthRGB approximates the visible spectrum (380-780nm) with piecewise
// linear ramps, dimming toward the band edges. Out-of-band wavelengths
// render as a dim gray rather than disappearing entirely.
func wavelengthRGB(nm float64) (r, g, b float64) {
	switch {
	case nm >= 380 && nm < 440:
		r, g, b = -(nm-440)/(440-380), 0, 1
	case nm >= 440 && nm < 490:
		r, g, b = 0, (nm-440)/(490-440), 1
	case nm >= 490 && nm < 510:
		r, g, b = 0, 1, -(nm-510)/(510-490)
	case nm >= 510 && nm < 580:
		r, g, b = (nm-510)/(580-510), 1, 0
	case nm >= 580 && nm < 645:
		r, g, b = 1, -(nm-645)/(645-580), 0
	case nm >= 645 && nm <= 780:
		r, g, b = 1, 0, 0
	default:
		return 0.3, 0.3, 0.3
	}

	// Intensity falloff near the limits of vision
	var factor float64
	switch {
	case nm >= 380 && nm < 420:
		factor = 0.3 + 0.7*(nm-380)/(420-380)
	case nm >= 420 && nm <= 700:
		factor = 1.0
	case nm > 700 && nm <= 780:
		factor = 0.3 + 0.7*(780-nm)/(780-700)
	}

	return r * factor, g * factor, b * factor
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
