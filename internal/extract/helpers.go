// Package extract maps raw report text to incident records, one extractor
// per operator dialect. All extractors share the same helper contract:
// pattern lookup where absence is a normal value, numeric parsing that
// accepts regional comma decimals, date normalization, and DMS handling
// delegated to the geo package so every dialect converts identically.
package extract

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/basinwatch/incident-data-etl/internal/geo"
)

var (
	// ErrNumericParse reports a field that matched its pattern but could not
	// be read as a number. A missing match is not an error.
	ErrNumericParse = errors.New("numeric field parse failure")

	// ErrDateParse reports a date that matched no supported notation.
	ErrDateParse = errors.New("unrecognized date format")
)

// FindField returns the first capture group of re in text, trimmed, or ""
// when the pattern does not match. It never fails: a field absent from a
// document is a representable, ordinary outcome.
func FindField(text string, re *regexp.Regexp) string {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	if len(m) > 1 {
		return strings.TrimSpace(m[1])
	}
	return strings.TrimSpace(m[0])
}

// FindFloat looks up a numeric field. Comma and period decimal separators
// are both accepted (regional convention). Returns nil with no error when
// the pattern does not match, and wraps ErrNumericParse when a match exists
// but is not a number.
func FindFloat(text string, re *regexp.Regexp) (*float64, error) {
	raw := FindField(text, re)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrNumericParse, raw)
	}
	return &v, nil
}

// dateLayouts covers the slash/dash notations observed across the five
// operators' documents.
var dateLayouts = []string{
	"02/01/2006",
	"2/1/2006",
	"02/01/06",
	"02-01-2006",
	"2-1-2006",
	"02-01-06",
	"2006-01-02",
}

var spanishMonths = map[string]time.Month{
	"enero": time.January, "febrero": time.February, "marzo": time.March,
	"abril": time.April, "mayo": time.May, "junio": time.June,
	"julio": time.July, "agosto": time.August, "septiembre": time.September,
	"setiembre": time.September, "octubre": time.October,
	"noviembre": time.November, "diciembre": time.December,
	"ene": time.January, "feb": time.February, "mar": time.March,
	"abr": time.April, "may": time.May, "jun": time.June, "jul": time.July,
	"ago": time.August, "sep": time.September, "set": time.September,
	"oct": time.October, "nov": time.November, "dic": time.December,
}

var spelledDateRe = regexp.MustCompile(`(?i)^(\d{1,2})(?:\s+de\s+|[-\s])([a-zñ]+)(?:\s+de\s+|[-\s])(\d{4})$`)

// NormalizeDate converts any supported date notation (day-month-year with
// slash, dash, or spelled Spanish month, plus ISO) to canonical dd-mm-yyyy.
// Fails with ErrDateParse when nothing applies.
func NormalizeDate(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("%w: empty input", ErrDateParse)
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("02-01-2006"), nil
		}
	}
	if m := spelledDateRe.FindStringSubmatch(foldASCII(raw)); m != nil {
		if month, ok := spanishMonths[strings.ToLower(m[2])]; ok {
			day, _ := strconv.Atoi(m[1])
			year, _ := strconv.Atoi(m[3])
			if day >= 1 && day <= 31 {
				t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
				return t.Format("02-01-2006"), nil
			}
		}
	}
	return "", fmt.Errorf("%w: %q", ErrDateParse, raw)
}

// ParseDMSMagnitude delegates to the transform module so every extractor
// shares identical DMS handling.
func ParseDMSMagnitude(raw string) (float64, error) {
	return geo.ParseDMS(raw)
}

// ValidCoordinates delegates to the basin bounding-box gate.
func ValidCoordinates(lat, lon float64) bool {
	return geo.InBasin(lat, lon)
}

// accentFolder strips combining marks so keyword and month matching ignores
// accents (PETRÓLEOS vs PETROLEOS, "miércoles" typos and the like).
var accentFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

func foldASCII(s string) string {
	out, _, err := transform.String(accentFolder, s)
	if err != nil {
		return s
	}
	return out
}

// foldUpper is the comparison form used for operator keyword detection.
func foldUpper(s string) string {
	return strings.ToUpper(foldASCII(s))
}

const maxDescriptionRunes = 120

// abbreviate truncates long free-text descriptions for the summary column.
func abbreviate(desc string) string {
	desc = strings.TrimSpace(desc)
	if utf8.RuneCountInString(desc) <= maxDescriptionRunes {
		return desc
	}
	r := []rune(desc)
	return string(r[:maxDescriptionRunes]) + "..."
}
