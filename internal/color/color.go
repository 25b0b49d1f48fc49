// Package color extracts malt color specifications from free text and scores
// how close two color specs are. Suppliers describe the same malt in
// different conventions ("Crystal 60L", "Caramel 150 EBC", "EBC 140-160"),
// so matching crystal/caramel malts across catalogs has to go through a
// parsed color band rather than the name string.
package color

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/brewmatch/internal/units"
)

// BandSource records which convention a color band was parsed from.
type BandSource string

const (
	SourceSupplied     BandSource = "supplied"
	SourceLovibondText BandSource = "lovibond_text"
	SourceEBCRangeText BandSource = "ebc_range_text"
	SourceEBCPointText BandSource = "ebc_single_text"
)

// DefaultToleranceEBC is the color distance at which a candidate stops being
// considered a substitute at all.
const DefaultToleranceEBC = 30.0

// Band is a malt color spec, either a point or a range.
// Invariant: EBCMin <= EBCMid <= EBCMax; all three equal for point specs.
type Band struct {
	Lovibond float64
	EBCMin   float64
	EBCMid   float64
	EBCMax   float64
	Source   BandSource
}

// IsPoint reports whether the band is a single value rather than a range.
func (b Band) IsPoint() bool {
	return b.EBCMin == b.EBCMax
}

// String renders the band the way a maltster would print it.
func (b Band) String() string {
	if b.IsPoint() {
		return fmt.Sprintf("%.0f EBC", b.EBCMid)
	}
	return fmt.Sprintf("%.0f-%.0f EBC", b.EBCMin, b.EBCMax)
}

// PointFromLovibond builds a point band from a Lovibond value.
func PointFromLovibond(lovibond float64, source BandSource) Band {
	ebc := units.LovibondToEBC(lovibond)
	return Band{Lovibond: lovibond, EBCMin: ebc, EBCMid: ebc, EBCMax: ebc, Source: source}
}

// PointFromEBC builds a point band from an EBC value.
func PointFromEBC(ebc float64, source BandSource) Band {
	return Band{Lovibond: units.EBCToLovibond(ebc), EBCMin: ebc, EBCMid: ebc, EBCMax: ebc, Source: source}
}

// RangeFromEBC builds a range band from EBC bounds.
func RangeFromEBC(min, max float64) Band {
	if max < min {
		min, max = max, min
	}
	mid := (min + max) / 2
	return Band{
		Lovibond: units.EBCToLovibond(mid),
		EBCMin:   min,
		EBCMid:   mid,
		EBCMax:   max,
		Source:   SourceEBCRangeText,
	}
}

// Textual conventions, in the order ParseBand tries them. Range patterns run
// before single-EBC patterns so "140-160 EBC" is never mis-split into a
// false point match on 160.
var (
	reLovibondSuffix = regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?)\s*°?\s*l(?:ovibond)?\b`)
	reCrystalNumber  = regexp.MustCompile(`(?i)\b(?:crystal|caramel|cara)\s*(\d+(?:\.\d+)?)`)
	reEBCRangeAfter  = regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?)\s*-\s*(\d+(?:\.\d+)?)\s*ebc\b`)
	reEBCRangeBefore = regexp.MustCompile(`(?i)\bebc\s*:?\s*(\d+(?:\.\d+)?)\s*-\s*(\d+(?:\.\d+)?)`)
	reEBCPointAfter  = regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?)\s*ebc\b`)
	reEBCPointBefore = regexp.MustCompile(`(?i)\bebc\s*:?\s*(\d+(?:\.\d+)?)`)
)

// ParseBand extracts a color band from free text (a product name or
// description). Returns false when no recognized convention matches; callers
// treat that the same as having no color information at all.
func ParseBand(text string) (Band, bool) {
	if strings.TrimSpace(text) == "" {
		return Band{}, false
	}

	// 1. Lovibond point: "60L", "60 °L", or crystal/caramel followed by a
	// bare number. "Caramel 150 EBC" is an EBC spec, not 150 Lovibond, so
	// the crystal-number rule skips digits adjacent to an EBC token.
	if m := reLovibondSuffix.FindStringSubmatch(text); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			return PointFromLovibond(v, SourceLovibondText), true
		}
	}
	if loc := reCrystalNumber.FindStringSubmatchIndex(text); loc != nil {
		if !continuesEBCSpec(text, loc[3]) {
			if v, err := strconv.ParseFloat(text[loc[2]:loc[3]], 64); err == nil {
				return PointFromLovibond(v, SourceLovibondText), true
			}
		}
	}

	// 2. EBC range.
	for _, re := range []*regexp.Regexp{reEBCRangeAfter, reEBCRangeBefore} {
		if m := re.FindStringSubmatch(text); m != nil {
			lo, err1 := strconv.ParseFloat(m[1], 64)
			hi, err2 := strconv.ParseFloat(m[2], 64)
			if err1 == nil && err2 == nil {
				return RangeFromEBC(lo, hi), true
			}
		}
	}

	// 3. EBC point.
	for _, re := range []*regexp.Regexp{reEBCPointAfter, reEBCPointBefore} {
		if m := re.FindStringSubmatch(text); m != nil {
			if v, err := strconv.ParseFloat(m[1], 64); err == nil {
				return PointFromEBC(v, SourceEBCPointText), true
			}
		}
	}

	return Band{}, false
}

// continuesEBCSpec reports whether the text immediately following offset
// continues into an EBC spec: either an EBC token ("Caramel 150 EBC") or a
// range dash ("Crystal 140-160 EBC"). In both cases the number is not a
// Lovibond value and the EBC rules must handle it instead.
func continuesEBCSpec(text string, offset int) bool {
	rest := strings.TrimLeft(text[offset:], " \t°")
	if strings.HasPrefix(rest, "-") {
		return true
	}
	return len(rest) >= 3 && strings.EqualFold(rest[:3], "ebc")
}

// crystalWords classify a malt name as crystal/caramel family. The "cara"
// prefix covers the continental naming family (CaraMunich, Carapils,
// Caraamber, Carafa).
var crystalWords = []string{"crystal", "caramel", "cara"}

// IsCrystalName reports whether an ingredient name belongs to the
// crystal/caramel malt family and should be matched by color band.
func IsCrystalName(name string) bool {
	lower := strings.ToLower(name)
	for _, w := range crystalWords {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

// MatchScore scores how well a candidate color band substitutes for a target
// color, on a 0-100 scale. A target inside the candidate band is a perfect
// 100. Outside the band the score decays linearly from 100 at distance zero
// to 50 at the tolerance, and is 0 beyond it. Distance is measured to the
// nearest band edge, not the midpoint, so wide candidate bands are not
// unfairly penalized.
func MatchScore(targetEBCMid, candEBCMin, candEBCMax, tolerance float64) float64 {
	if targetEBCMid >= candEBCMin && targetEBCMid <= candEBCMax {
		return 100
	}

	var distance float64
	if targetEBCMid < candEBCMin {
		distance = candEBCMin - targetEBCMid
	} else {
		distance = targetEBCMid - candEBCMax
	}

	if tolerance <= 0 || distance > tolerance {
		return 0
	}
	return 100 - 50*distance/tolerance
}
