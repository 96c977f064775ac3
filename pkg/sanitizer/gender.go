package sanitizer

import "regexp"

type Gender string

const (
	GenderFemale Gender = "F"
	GenderMale   Gender = "M"
)

var (
	// "female" / "male" with e<->3 and a<->@ substitutions, whole tokens only.
	// The vowel before the "l" accepts 3 so "fem3le" is recovered, but never
	// a plain e: "feel" and "mel" are not genders.
	reFemaleTypos = regexp.MustCompile(`\b(f[e3]{0,2}m?[a@3]l[e3]?)\b`)
	reMaleTypos   = regexp.MustCompile(`\b(m[a@3]l[e3]?)\b`)

	genderWords = map[string]string{
		"female": string(GenderFemale),
		"male":   string(GenderMale),
	}

	genderWordsAndLetters = map[string]string{
		"female": string(GenderFemale),
		"male":   string(GenderMale),
		"f":      string(GenderFemale),
		"m":      string(GenderMale),
	}

	// Order matters: the female rule runs first so "female" typos are never
	// read as "male" ones.
	genderPipeline = Pipeline{
		trimAndLower,
		Dictionary(genderWords),
		Rules(
			Rule{Pattern: reFemaleTypos, Canonical: string(GenderFemale)},
			Rule{Pattern: reMaleTypos, Canonical: string(GenderMale)},
		),
		Dictionary(genderWordsAndLetters),
	}
)

// NormalizeGender maps free-text gender values to "F" or "M".
func NormalizeGender(raw any) Result[Gender] {
	s, ok := coerceString(raw)
	if !ok {
		return Invalid[Gender]()
	}

	switch g := Gender(genderPipeline.Apply(s)); g {
	case GenderFemale, GenderMale:
		return Valid(g)
	default:
		return Invalid[Gender]()
	}
}
