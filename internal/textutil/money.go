// Package textutil normalizes the currency strings and address fragments
// that show up in county tax-sale and clerk data. Parse failures resolve
// to nil/empty results, never errors.
package textutil

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	moneyStripRe   = regexp.MustCompile(`[^0-9.\-]`)
	zipRe          = regexp.MustCompile(`\b(\d{5})(?:-\d{4})?\b`)
	cityStateZipRe = regexp.MustCompile(`^\s*(.*?),\s*([A-Z]{2})\s+(\d{5}(?:-\d{4})?)`)
)

// ParseMoney extracts a decimal amount from a currency string such as
// "$ 12,345.67". Returns nil when the input contains no parseable
// number. A minus sign is only meaningful in the leading position; an
// interior minus marks a range ("1,500-2,000") or an address fragment,
// not an amount, so the whole input is unparseable.
func ParseMoney(text string) *float64 {
	cleaned := moneyStripRe.ReplaceAllString(text, "")
	if strings.LastIndex(cleaned, "-") > 0 {
		return nil
	}
	if cleaned == "" || cleaned == "-" {
		return nil
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return nil
	}
	return &v
}

// NormalizeZip finds the first 5-digit zip in text, dropping any 4-digit
// extension. Returns "" when no zip is present.
func NormalizeZip(text string) string {
	m := zipRe.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return m[1]
}

// SplitCityStateZip splits "Houston, TX 77002-1234" into its parts.
// When the full pattern does not match, city and state come back empty
// but the zip is still recovered best-effort; a zip is useful on its
// own while city/state are unreliable outside the full pattern.
func SplitCityStateZip(text string) (city, state, zip string) {
	m := cityStateZipRe.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return "", "", NormalizeZip(text)
	}
	return m[1], m[2], NormalizeZip(m[3])
}

// Round2 rounds a money amount to two decimal places.
func Round2(f float64) float64 {
	return math.Round(f*100) / 100
}
