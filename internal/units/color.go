package units

// Color scale conversions for malt and wort color.
//
// Lovibond is the scale maltsters print on grain sacks, EBC is what European
// suppliers and recipe tools use, SRM is the US beer color standard. All
// conversions here are fixed linear factors; none of them validate input.
// Malt color is never legitimately negative but negative values pass through
// unchanged - validation is the caller's responsibility.

const (
	lovibondToEBCFactor = 2.63
	srmToEBCFactor      = 1.97
)

// LovibondToEBC converts degrees Lovibond to EBC.
func LovibondToEBC(lovibond float64) float64 {
	return lovibond * lovibondToEBCFactor
}

// EBCToLovibond converts EBC to degrees Lovibond.
func EBCToLovibond(ebc float64) float64 {
	return ebc / lovibondToEBCFactor
}

// SRMToEBC converts SRM (Standard Reference Method) to EBC.
func SRMToEBC(srm float64) float64 {
	return srm * srmToEBCFactor
}

// EBCToSRM converts EBC to SRM.
func EBCToSRM(ebc float64) float64 {
	return ebc / srmToEBCFactor
}
