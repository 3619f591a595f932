package docgen

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   Value
		want string
	}{
		{"nil", nil, ""},
		{"integral float", 781128.0, "781128"},
		{"fractional float", 12.5, "12.5"},
		{"negative integral", -3.0, "-3"},
		{"negative zero", math.Copysign(0, -1), "0"},
		{"large fraction", 1234567.5, "1234567.5"},
		{"float32", float32(42), "42"},
		{"int", 7, "7"},
		{"int64", int64(560001), "560001"},
		{"uint", uint(9), "9"},
		{"padded string", "  abc  ", "abc"},
		{"numeric string kept", "781128.0", "781128.0"},
		{"bool", true, "true"},
		{"nan", math.NaN(), ""},
		{"nan32", float32(math.NaN()), ""},
		{"inf", math.Inf(1), "+Inf"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestApplyCase(t *testing.T) {
	assert.Equal(t, "Abc Def", ApplyCase("abc def", CaseTitle))
	assert.Equal(t, "abc", ApplyCase("ABC", CaseLower))
	assert.Equal(t, "ABC DEF", ApplyCase("abc Def", CaseUpper))
	assert.Equal(t, "aBc", ApplyCase("aBc", CaseOriginal))
	assert.Equal(t, "Usa Office", ApplyCase("USA office", CaseTitle), "acronyms flatten")
	assert.Equal(t, "  Two  Spaces\tTab", ApplyCase("  two  SPACES\ttab", CaseTitle))
	assert.Equal(t, "", ApplyCase("", CaseTitle))
}

func TestApplyCaseIdempotent(t *testing.T) {
	inputs := []string{"", "abc def", "ABC", "MiXeD cAsE words", "  x  y ", "straße", "ǆemal", "o'neil-smith", "123 main st"}
	modes := []CaseMode{CaseOriginal, CaseUpper, CaseLower, CaseTitle}
	for _, m := range modes {
		for _, s := range inputs {
			once := ApplyCase(s, m)
			assert.Equal(t, once, ApplyCase(once, m), "mode %s input %q", m, s)
		}
	}
}

func TestCaseModeText(t *testing.T) {
	var m CaseMode
	assert.NoError(t, m.UnmarshalText([]byte("Title")))
	assert.Equal(t, CaseTitle, m)
	assert.NoError(t, m.UnmarshalText([]byte("")))
	assert.Equal(t, CaseOriginal, m)
	assert.Error(t, m.UnmarshalText([]byte("shouting")))

	b, err := CaseUpper.MarshalText()
	assert.NoError(t, err)
	assert.Equal(t, "upper", string(b))
}
