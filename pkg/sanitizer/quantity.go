package sanitizer

import (
	"math"
	"strconv"
	"strings"
)

// maxWordTotal saturates the running word total so repeated "hundred"
// cannot wrap around into range. Totals never shrink.
const maxWordTotal = math.MaxInt / 2

var numberWords = map[string]int{
	"zero": 0, "one": 1, "two": 2, "three": 3, "four": 4,
	"five": 5, "six": 6, "seven": 7, "eight": 8, "nine": 9,
	"ten": 10, "eleven": 11, "twelve": 12, "thirteen": 13, "fourteen": 14,
	"fifteen": 15, "sixteen": 16, "seventeen": 17, "eighteen": 18, "nineteen": 19,
	"twenty": 20, "thirty": 30, "forty": 40, "fifty": 50,
	"sixty": 60, "seventy": 70, "eighty": 80, "ninety": 90,
	"hundred": 100,
}

// NormalizeQuantity extracts an order quantity from number words
// ("twenty one", "forty-two") or, failing that, from the digits embedded in
// the value ("5 units"). Zero is a valid quantity.
func NormalizeQuantity(raw any, r Range) Result[int] {
	s, ok := raw.(string)
	if !ok {
		return Invalid[int]()
	}

	s = trimAndLower(s)

	quantity := sumNumberWords(strings.Fields(strings.ReplaceAll(s, "-", " ")))
	if quantity <= 0 {
		digits := keepDigits(s)
		if digits == "" {
			return Invalid[int]()
		}
		n, err := strconv.Atoi(digits)
		if err != nil {
			return Invalid[int]()
		}
		quantity = n
	}

	if !r.Contains(quantity) {
		return Invalid[int]()
	}
	return Valid(quantity)
}

// sumNumberWords adds recognized number words; "hundred" multiplies a
// non-zero running total instead of adding. Unknown words are ignored.
func sumNumberWords(words []string) int {
	total := 0
	for _, w := range words {
		value, ok := numberWords[w]
		if !ok {
			continue
		}
		if w == "hundred" && total != 0 {
			if total > maxWordTotal/100 {
				total = maxWordTotal
			} else {
				total *= 100
			}
		} else {
			total = min(total+value, maxWordTotal)
		}
	}
	return total
}

func keepDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
