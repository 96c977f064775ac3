//go:build go1.18

package sanitizer

import (
	"regexp"
	"strconv"
	"testing"
)

var cleanedDate = regexp.MustCompile(`^\d{2}-\d{2}-\d{4}$`)

// FuzzNormalizers checks that every normalizer is total over arbitrary text
// and that valid outputs are canonical fixed points.
func FuzzNormalizers(f *testing.F) {
	f.Add("")
	f.Add("FEMALE")
	f.Add("fem3le")
	f.Add("007")
	f.Add("13/05/2024")
	f.Add("02/29/2024")
	f.Add("twenty one")
	f.Add("5 units")
	f.Add("one hundred hundred hundred hundred hundred")
	f.Add("9999999999999999999999")
	f.Add(string([]byte{0xff, 0xfe, 0x00}))

	f.Fuzz(func(t *testing.T, input string) {
		if g, ok := NormalizeGender(input).Value(); ok {
			if g != GenderFemale && g != GenderMale {
				t.Errorf("NormalizeGender(%q) = %q, want F or M", input, g)
			}
		}

		age := NormalizeAge(input, DefaultAgeRange)
		if s, ok := age.Value(); ok {
			n, err := strconv.Atoi(s)
			if err != nil || !DefaultAgeRange.Contains(n) {
				t.Errorf("NormalizeAge(%q) = %q, not an integer in %s", input, s, DefaultAgeRange)
			}
			if again := NormalizeAge(s, DefaultAgeRange); again != age {
				t.Errorf("NormalizeAge not idempotent: %q -> %q -> %v", input, s, again)
			}
		}

		date := NormalizeDate(input)
		if s, ok := date.Value(); ok {
			if !cleanedDate.MatchString(s) {
				t.Errorf("NormalizeDate(%q) = %q, not MM-DD-YYYY", input, s)
			}
			if again := NormalizeDate(s); again != date {
				t.Errorf("NormalizeDate not idempotent: %q -> %q -> %v", input, s, again)
			}
		}

		if s, ok := NormalizeDateFixedYear(input, 2025).Value(); ok {
			if s[len(s)-4:] != "2025" {
				t.Errorf("NormalizeDateFixedYear(%q) = %q, year not fixed", input, s)
			}
		}

		qty := NormalizeQuantity(input, DefaultQuantityRange)
		if n, ok := qty.Value(); ok {
			if !DefaultQuantityRange.Contains(n) {
				t.Errorf("NormalizeQuantity(%q) = %d, outside %s", input, n, DefaultQuantityRange)
			}
			if again := NormalizeQuantity(qty.String(), DefaultQuantityRange); again != qty {
				t.Errorf("NormalizeQuantity not idempotent: %q -> %d -> %v", input, n, again)
			}
		}
	})
}
