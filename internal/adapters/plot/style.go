// Package plot renders the distribution and resolution figures in a CMS-like
// style.
package plot

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/cmsperf/topreco/internal/domain/model"
)

// CMS note palette.
var (
	ColorGray   = color.NRGBA{R: 0x94, G: 0xa4, B: 0xa2, A: 0xff} // target
	ColorYellow = color.NRGBA{R: 0xff, G: 0xa9, B: 0x0e, A: 0xff}
	ColorRed    = color.NRGBA{R: 0xbd, G: 0x1f, B: 0x01, A: 0xff} // mlb-weighting
	ColorBlue   = color.NRGBA{R: 0x3f, G: 0x90, B: 0xda, A: 0xff} // transformer
)

// MethodColor returns the palette color of a reconstruction method.
func MethodColor(m model.Method) color.NRGBA {
	switch m {
	case model.MethodGen:
		return ColorGray
	case model.MethodMlb:
		return ColorRed
	case model.MethodTransformer:
		return ColorBlue
	default:
		return ColorYellow
	}
}

// withAlpha returns c with the given opacity.
func withAlpha(c color.NRGBA, a uint8) color.NRGBA {
	c.A = a
	return c
}

// CoMEnergy returns the centre-of-mass energy in TeV for an era.
func CoMEnergy(era string) (float64, error) {
	switch {
	case strings.Contains(era, "2016"), strings.Contains(era, "2017"), strings.Contains(era, "2018"):
		return 13, nil
	case strings.Contains(era, "2022"), strings.Contains(era, "2023"), strings.Contains(era, "2024"):
		return 13.6, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownEra, era)
	}
}

// cmsLabel builds the "CMS Preliminary" annotation placed in the plot title.
func cmsLabel(era string) (string, error) {
	com, err := CoMEnergy(era)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("CMS Preliminary (Simulation)   %s (%g TeV)", era, com), nil
}
