package utils

import "strings"

// CityFromAddress pulls a display city out of a free-text, comma-separated
// address ("221B Baker St, Marylebone, London NW1 6XE, UK" → "London").
// Heuristic, not geocoding: the final segment is assumed to be the country
// and dropped, then segments are walked right to left skipping postal-code
// lookalikes, and any trailing postcode is stripped from the winner.
// Returns "" when nothing usable is found; callers fall back to the place
// name.
func CityFromAddress(address string) string {
	segs := strings.Split(address, ",")
	if len(segs) > 1 {
		segs = segs[:len(segs)-1] // drop country
	}
	for i := len(segs) - 1; i >= 0; i-- {
		seg := strings.TrimSpace(segs[i])
		if seg == "" || looksLikePostalCode(seg) {
			continue
		}
		if city := stripTrailingPostcode(seg); city != "" {
			return city
		}
	}
	return ""
}

// Bare region/postal segments: short all-caps ("UK", "NSW") or mostly
// digits ("NY 10118").
func looksLikePostalCode(seg string) bool {
	if len(seg) <= 3 && seg == strings.ToUpper(seg) {
		return true
	}
	digits := 0
	for _, r := range seg {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return digits > len(seg)/2
}

// "London NW1 6XE" → "London"
func stripTrailingPostcode(seg string) string {
	words := strings.Fields(seg)
	for len(words) > 0 {
		last := words[len(words)-1]
		if hasDigit(last) || (len(last) <= 3 && last == strings.ToUpper(last) && len(words) > 1) {
			words = words[:len(words)-1]
			continue
		}
		break
	}
	return strings.Join(words, " ")
}

func hasDigit(s string) bool {
	for _, r := range s {
		if r >= '0' && r <= '9' {
			return true
		}
	}
	return false
}
