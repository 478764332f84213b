package classifier

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"ticket text", "Impresora NO funciona!!! código: 502", []string{"impresora", "no", "funciona", "código", "502"}},
		{"empty", "", []string{}},
		{"symbols only", "!!!???", []string{}},
		{"accented capitals", "ÁRBOL ÉXITO ÍNDICE ÓRBITA ÚLTIMO", []string{"árbol", "éxito", "índice", "órbita", "último"}},
		{"repeated spaces", "  lento    muy   lento ", []string{"lento", "muy", "lento"}},
		{"deletion merges words", "no-funciona", []string{"nofunciona"}},
		{"tabs are deleted not split", "red\twifi", []string{"redwifi"}},
		{"newlines are deleted", "hola\nmundo", []string{"holamundo"}},
		{"other accents dropped", "ñandú pingüino à", []string{"andú", "pingino"}},
		{"digits kept", "error 404 en aula 3b", []string{"error", "404", "en", "aula", "3b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Tokenize(tt.input))
		})
	}
}

func TestTokenize_Idempotent(t *testing.T) {
	inputs := []string{
		"Gracias, pero el sistema está muy LENTO",
		"Impresora NO funciona!!! código: 502",
		"  a--b  c//d ",
		"",
	}
	for _, in := range inputs {
		first := Tokenize(in)
		again := Tokenize(strings.Join(first, " "))
		assert.Equal(t, first, again, "input %q", in)
	}
}

func TestTokenizer_UnicodeComposition(t *testing.T) {
	decomposed := "co\u0301digo"

	assert.Equal(t, []string{"codigo"}, NewTokenizer().Tokenize(decomposed))
	assert.Equal(t, []string{"código"}, NewTokenizer(WithUnicodeComposition(true)).Tokenize(decomposed))
}

func TestTokenizer_NilUsesDefaults(t *testing.T) {
	var tok *Tokenizer
	assert.Equal(t, []string{"hola"}, tok.Tokenize("HOLA!"))
}

func FuzzTokenize(f *testing.F) {
	f.Add("Impresora NO funciona!!! código: 502")
	f.Add("")
	f.Add("!!!???")
	f.Add("ÁÉÍÓÚ áéíóú ñ ü")
	f.Add("\xff\xfe broken utf8")

	f.Fuzz(func(t *testing.T, input string) {
		tokens := Tokenize(input)
		for _, tok := range tokens {
			if tok == "" {
				t.Fatal("empty token produced")
			}
			for _, r := range tok {
				if !allowedRune(r) {
					t.Fatalf("token %q contains disallowed rune %q", tok, r)
				}
			}
		}

		again := Tokenize(strings.Join(tokens, " "))
		if strings.Join(again, " ") != strings.Join(tokens, " ") {
			t.Fatalf("re-tokenizing changed %v into %v", tokens, again)
		}
	})
}

func allowedRune(r rune) bool {
	if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
		return true
	}
	return strings.ContainsRune("áéíóú", r)
}
