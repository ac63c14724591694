package slug

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "simple", input: "Knee Replacement", want: "knee-replacement"},
		{name: "diacritics", input: "Rinoplastía Estética", want: "rinoplastia-estetica"},
		{name: "punctuation collapses", input: "  LASIK -- Eye Surgery!!  ", want: "lasik-eye-surgery"},
		{name: "digits kept", input: "Top 10 Tips for 2026", want: "top-10-tips-for-2026"},
		{name: "sharp s", input: "Fußpflege", want: "fusspflege"},
		{name: "turkish", input: "Göz Kapağı Estetiği", want: "goz-kapagi-estetigi"},
		{name: "only symbols", input: "***", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Make(tt.input))
		})
	}
}

func TestMake_Truncates(t *testing.T) {
	out := Make(strings.Repeat("ab ", 200))
	assert.LessOrEqual(t, len(out), MaxLength)
	assert.False(t, strings.HasSuffix(out, "-"))
	assert.True(t, Valid(out))
}

func TestValid(t *testing.T) {
	assert.True(t, Valid("hair-transplant"))
	assert.True(t, Valid("a1"))
	assert.False(t, Valid("Hair-Transplant"))
	assert.False(t, Valid("-leading"))
	assert.False(t, Valid("double--hyphen"))
	assert.False(t, Valid(""))
}

func TestResolve(t *testing.T) {
	assert.Equal(t, "custom", Resolve(" custom ", "Ignored Title"))
	assert.Equal(t, "derived-title", Resolve("", "Derived Title"))
}
