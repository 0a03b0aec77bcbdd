// Package geo converts the coordinate notations found in operator incident
// reports into signed decimal-degree WGS84 values and validates them against
// the basin bounding box. Everything here is pure computation.
package geo

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// ErrMalformedAngle reports a coordinate string that matches none of the
// recognized angular notations.
var ErrMalformedAngle = errors.New("malformed angle")

var (
	// minuteMarks covers every minutes symbol observed in source documents:
	// acute accent (U+00B4), prime (U+2032), left/right single quotes, and
	// the modifier apostrophe.
	minuteMarks = strings.NewReplacer(
		"´", "'", // ´ acute accent
		"′", "'", // ′ prime
		"‘", "'", // ' left single quote
		"’", "'", // ' right single quote
		"ʼ", "'", // ʼ modifier apostrophe
	)
	secondMarks = strings.NewReplacer(
		"″", `"`, // ″ double prime
		"“", `"`, // " left double quote
		"”", `"`, // " right double quote
	)

	spaceRe         = regexp.MustCompile(`\s+`)
	doubleApostRe   = regexp.MustCompile(`'{2}`)
	decimalCommaRe  = regexp.MustCompile(`(\d),(\d)`)
	hemisphereTail  = regexp.MustCompile(`\s*[NSEOW]\s*$`)
	dmsFullRe       = regexp.MustCompile(`^(\d+)\s*[°º]\s*(\d+)\s*'\s*([\d.]+)\s*"?`)
	dmsDecMinRe     = regexp.MustCompile(`^(\d+)\s*[°º]\s*([\d.]+)\s*'`)
	dmsSlashRe      = regexp.MustCompile(`^(\d+)\s*[°º]\s*/?\s*(\d+\.?\d*)\s*'\s*/?\s*([\d.]+)`)
	decimalDegreeRe = regexp.MustCompile(`^[-+]?\d+(?:\.\d+)?\s*[°º]?$`)
)

// normalizeSymbols rewrites every Unicode variant of the DMS marks to plain
// ASCII and converts decimal commas to periods, so the notation patterns stay
// simple. Two consecutive apostrophes become a seconds mark.
func normalizeSymbols(s string) string {
	s = minuteMarks.Replace(s)
	s = secondMarks.Replace(s)
	s = doubleApostRe.ReplaceAllString(s, `"`)
	s = decimalCommaRe.ReplaceAllString(s, "$1.$2")
	return s
}

// ParseDMS parses a hand-typed coordinate string and returns its unsigned
// decimal-degree magnitude. Recognized notations:
//
//   - compact DMS with comma decimals:  33°30'57,62"
//   - acute-accent minutes mark:        34°57´51,5"
//   - degrees with decimal minutes:     37°20.936'
//   - slash-separated DMS:              37 ° / 20 ' / 56.2
//   - plain decimal degrees:            37.348933 or 37,348933
//
// Surrounding whitespace and a trailing hemisphere letter (N/S/E/O/W) are
// tolerated. Returns ErrMalformedAngle when nothing matches.
func ParseDMS(raw string) (float64, error) {
	normalized := spaceRe.ReplaceAllString(strings.TrimSpace(raw), " ")
	normalized = normalizeSymbols(normalized)
	normalized = hemisphereTail.ReplaceAllString(normalized, "")
	normalized = strings.TrimSpace(normalized)
	if normalized == "" {
		return 0, fmt.Errorf("%w: empty input", ErrMalformedAngle)
	}

	if m := dmsFullRe.FindStringSubmatch(normalized); m != nil {
		return dmsValue(m[1], m[2], m[3])
	}
	if m := dmsDecMinRe.FindStringSubmatch(normalized); m != nil {
		return dmsValue(m[1], m[2], "0")
	}
	if m := dmsSlashRe.FindStringSubmatch(normalized); m != nil {
		return dmsValue(m[1], m[2], m[3])
	}
	if decimalDegreeRe.MatchString(normalized) {
		v, err := strconv.ParseFloat(strings.TrimRight(normalized, "°º"), 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrMalformedAngle, raw)
		}
		return math.Abs(v), nil
	}

	return 0, fmt.Errorf("%w: %q", ErrMalformedAngle, raw)
}

func dmsValue(deg, min, sec string) (float64, error) {
	d, errD := strconv.ParseFloat(deg, 64)
	m, errM := strconv.ParseFloat(min, 64)
	s, errS := strconv.ParseFloat(sec, 64)
	if errD != nil || errM != nil || errS != nil {
		return 0, fmt.Errorf("%w: %s°%s'%s\"", ErrMalformedAngle, deg, min, sec)
	}
	return DMSToDecimal(d, m, s), nil
}

// dmsTripleRe is the unanchored full-triple pattern used by IsCompleteDMS.
var dmsTripleRe = regexp.MustCompile(`\d+\s*[°º]\s*\d+\s*'\s*[\d.]+`)

// IsCompleteDMS reports whether s already contains a full
// degrees-minutes-seconds triple after symbol normalization. Callers that
// reassemble coordinates split across lines use it to know when to stop:
// a bare "33°34'" must not be mistaken for degrees with decimal minutes.
func IsCompleteDMS(s string) bool {
	n := normalizeSymbols(spaceRe.ReplaceAllString(s, " "))
	return dmsTripleRe.MatchString(n)
}

// DMSToDecimal converts a degree/minute/second triple into unsigned decimal
// degrees, rounded to 1e-6 (about 0.1 m on the ground).
func DMSToDecimal(degrees, minutes, seconds float64) float64 {
	dd := degrees + minutes/60.0 + seconds/3600.0
	return math.Round(dd*1e6) / 1e6
}

// ApplyBasinSign applies the fixed hemisphere rule: the basin lies entirely
// south and west, so both axes are negative. Used whenever the source text
// carries only an unsigned magnitude; values with an explicit sign bypass it.
func ApplyBasinSign(magnitude float64) float64 {
	return -math.Abs(magnitude)
}
