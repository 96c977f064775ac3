package sanitizer

import "testing"

func TestNormalizeGender(t *testing.T) {
	tests := []struct {
		name      string
		input     any
		want      Gender
		wantValid bool
	}{
		{name: "uppercase female", input: "FEMALE", want: GenderFemale, wantValid: true},
		{name: "lowercase female", input: "female", want: GenderFemale, wantValid: true},
		{name: "female with 3", input: "fem3le", want: GenderFemale, wantValid: true},
		{name: "female with 3 and @", input: "f3m@le", want: GenderFemale, wantValid: true},
		{name: "female trailing 3", input: "femal3", want: GenderFemale, wantValid: true},
		{name: "female dropped m", input: "feale", want: GenderFemale, wantValid: true},
		{name: "uppercase male", input: "MALE", want: GenderMale, wantValid: true},
		{name: "male with @", input: "m@le", want: GenderMale, wantValid: true},
		{name: "male with 3", input: "mal3", want: GenderMale, wantValid: true},
		{name: "letter f", input: "f", want: GenderFemale, wantValid: true},
		{name: "letter M", input: "M", want: GenderMale, wantValid: true},
		{name: "surrounding whitespace", input: "  Female \t", want: GenderFemale, wantValid: true},
		{name: "unknown", input: "unknown", wantValid: false},
		{name: "empty", input: "", wantValid: false},
		{name: "only whitespace", input: "   ", wantValid: false},
		{name: "nil", input: nil, wantValid: false},
		{name: "number", input: 42, wantValid: false},
		{name: "bool", input: true, wantValid: false},
		{name: "partial word is not corrected", input: "malevolent", wantValid: false},
		{name: "embedded male is not corrected", input: "email", wantValid: false},
		{name: "two genders", input: "female male", wantValid: false},
		{name: "other", input: "other", wantValid: false},
		{name: "feel is not female", input: "feel", wantValid: false},
		{name: "fel is not female", input: "fel", wantValid: false},
		{name: "fele is not female", input: "fele", wantValid: false},
		{name: "mel is not male", input: "mel", wantValid: false},
		{name: "mele is not male", input: "mele", wantValid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NormalizeGender(tt.input).Value()
			if ok != tt.wantValid {
				t.Fatalf("NormalizeGender(%#v) valid = %v, want %v (value %q)", tt.input, ok, tt.wantValid, got)
			}
			if ok && got != tt.want {
				t.Errorf("NormalizeGender(%#v) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeGender_Idempotent(t *testing.T) {
	for _, in := range []string{"female", "m@le", "F", "M", "fem3le"} {
		first := NormalizeGender(in)
		second := NormalizeGender(first.String())
		if first != second {
			t.Errorf("NormalizeGender not idempotent for %q: %v then %v", in, first, second)
		}
	}
}
