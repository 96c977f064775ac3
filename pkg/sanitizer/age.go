package sanitizer

import (
	"math"
	"strconv"
	"strings"
)

// NormalizeAge returns the canonical integer text of an age within r.
// A literal zero stays "0"; it is never folded into Invalid.
func NormalizeAge(raw any, r Range) Result[string] {
	s, ok := coerceString(raw)
	if !ok {
		return Invalid[string]()
	}

	s = strings.TrimSpace(s)
	if s == "" || strings.ContainsRune(s, '_') {
		return Invalid[string]()
	}

	s = strings.TrimLeft(s, "0")
	if s == "" {
		s = "0"
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return Invalid[string]()
	}
	if f != math.Trunc(f) {
		return Invalid[string]()
	}
	if f < float64(r.Min) || f > float64(r.Max) {
		return Invalid[string]()
	}

	return Valid(strconv.Itoa(int(f)))
}
