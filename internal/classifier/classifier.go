package classifier

import (
	"errors"
	"fmt"
)

// Outcome is the result of a dictionary insert.
type Outcome string

const (
	OutcomeAdded         Outcome = "added"
	OutcomeAlreadyExists Outcome = "already exists"
)

// Result holds the tags suggested for a text.
type Result struct {
	Tokens               []string `json:"tokens"`
	Emotions             []string `json:"emotions"`
	Categories           []string `json:"categories"`
	EmotionalVersion     uint64   `json:"emotional_version"`
	TechnicalVersion     uint64   `json:"technical_version"`
	EmotionalFingerprint string   `json:"emotional_fingerprint"`
	TechnicalFingerprint string   `json:"technical_fingerprint"`
}

// Classifier owns the emotional and technical dictionaries.
type Classifier struct {
	tokenizer *Tokenizer
	emotional *Dictionary
	technical *Dictionary
}

// New builds a classifier with two empty dictionaries.
func New(tokenizer *Tokenizer) *Classifier {
	if tokenizer == nil {
		tokenizer = NewTokenizer()
	}
	return &Classifier{
		tokenizer: tokenizer,
		emotional: NewDictionary(KindEmotional),
		technical: NewDictionary(KindTechnical),
	}
}

// Tokenizer returns the tokenizer in use.
func (c *Classifier) Tokenizer() *Tokenizer {
	return c.tokenizer
}

// Emotional returns the emotional dictionary.
func (c *Classifier) Emotional() *Dictionary {
	return c.emotional
}

// Technical returns the technical dictionary.
func (c *Classifier) Technical() *Dictionary {
	return c.technical
}

// Dictionary selects a dictionary by kind.
func (c *Classifier) Dictionary(kind Kind) (*Dictionary, error) {
	switch kind {
	case KindEmotional:
		return c.emotional, nil
	case KindTechnical:
		return c.technical, nil
	default:
		return nil, fmt.Errorf("unknown dictionary %q", kind)
	}
}

// Tokenize delegates to the tokenizer.
func (c *Classifier) Tokenize(text string) []string {
	return c.tokenizer.Tokenize(text)
}

// Classify tokenizes text once and matches it against both dictionaries.
// Categories repeat when several tokens share one.
func (c *Classifier) Classify(text string) Result {
	return c.ClassifyTokens(c.tokenizer.Tokenize(text))
}

// ClassifyTokens matches an existing token sequence.
func (c *Classifier) ClassifyTokens(tokens []string) Result {
	emo := c.emotional.Snapshot()
	tech := c.technical.Snapshot()
	res := Result{
		Tokens:               tokens,
		Emotions:             []string{},
		Categories:           []string{},
		EmotionalVersion:     emo.Version(),
		TechnicalVersion:     tech.Version(),
		EmotionalFingerprint: emo.Fingerprint(),
		TechnicalFingerprint: tech.Fingerprint(),
	}
	for _, m := range MatchSnapshot(tokens, emo) {
		res.Emotions = append(res.Emotions, m.Entry.Category)
	}
	for _, m := range MatchSnapshot(tokens, tech) {
		res.Categories = append(res.Categories, m.Entry.Category)
	}
	return res
}

// AddEmotionalWord inserts into the emotional dictionary.
func (c *Classifier) AddEmotionalWord(word, category string) (Outcome, error) {
	return addWord(c.emotional, word, category)
}

// AddTechnicalWord inserts into the technical dictionary.
func (c *Classifier) AddTechnicalWord(word, category string) (Outcome, error) {
	return addWord(c.technical, word, category)
}

func addWord(d *Dictionary, word, category string) (Outcome, error) {
	if _, err := d.Add(word, category); err != nil {
		if errors.Is(err, ErrDuplicateWord) {
			return OutcomeAlreadyExists, err
		}
		return "", err
	}
	return OutcomeAdded, nil
}
