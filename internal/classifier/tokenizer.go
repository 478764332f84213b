package classifier

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Tokenizer turns free-form ticket text into a bag of words.
type Tokenizer struct {
	compose bool
}

// TokenizerOption customizes a Tokenizer.
type TokenizerOption func(*Tokenizer)

// WithUnicodeComposition applies NFC composition before folding, so a vowel
// followed by a combining acute accent is kept as the precomposed letter.
func WithUnicodeComposition(enabled bool) TokenizerOption {
	return func(t *Tokenizer) {
		t.compose = enabled
	}
}

// NewTokenizer builds a tokenizer.
func NewTokenizer(opts ...TokenizerOption) *Tokenizer {
	t := &Tokenizer{}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Tokenize lowercases text, deletes every character outside [a-z0-9áéíóú ]
// and splits the remainder on spaces, dropping empty fragments. Deleted
// characters are not replaced, so "no-funciona" yields "nofunciona".
func (t *Tokenizer) Tokenize(text string) []string {
	if t != nil && t.compose {
		text = norm.NFC.String(text)
	}
	cleaned := strings.Map(fold, text)

	fragments := strings.Split(cleaned, " ")
	tokens := make([]string, 0, len(fragments))
	for _, f := range fragments {
		if strings.TrimSpace(f) == "" {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

// Tokenize runs the default tokenizer.
func Tokenize(text string) []string {
	return defaultTokenizer.Tokenize(text)
}

var defaultTokenizer = NewTokenizer()

// fold maps a rune to its kept lowercase form, or -1 to delete it.
func fold(r rune) rune {
	switch {
	case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == ' ':
		return r
	case r >= 'A' && r <= 'Z':
		return r + ('a' - 'A')
	}
	switch r {
	case 'á', 'é', 'í', 'ó', 'ú':
		return r
	case 'Á':
		return 'á'
	case 'É':
		return 'é'
	case 'Í':
		return 'í'
	case 'Ó':
		return 'ó'
	case 'Ú':
		return 'ú'
	}
	return -1
}
