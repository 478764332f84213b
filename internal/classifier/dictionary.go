package classifier

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/zeebo/blake3"
)

// Kind names one of the two dictionaries.
type Kind string

const (
	KindEmotional Kind = "emotional"
	KindTechnical Kind = "technical"
)

// Valid reports whether k is a known dictionary kind.
func (k Kind) Valid() bool {
	return k == KindEmotional || k == KindTechnical
}

// ParseKind resolves a kind from user input.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if !k.Valid() {
		return "", fmt.Errorf("unknown dictionary %q", s)
	}
	return k, nil
}

// Entry maps a word to the category it signals.
type Entry struct {
	Word     string `json:"word" yaml:"word"`
	Category string `json:"category" yaml:"category"`
}

// Key is the identity of the entry within a dictionary.
func (e Entry) Key() string {
	return WordKey(e.Word)
}

// WordKey normalizes a word for case-insensitive identity. Plain lowercasing
// is the identity rule; strings.EqualFold folds more (Kelvin sign, long s)
// and must not replace it.
func WordKey(word string) string {
	return strings.ToLower(word)
}

// ErrDuplicateWord is matched by every DuplicateWordError.
var ErrDuplicateWord = errors.New("word already exists")

// DuplicateWordError reports a rejected insert.
type DuplicateWordError struct {
	Kind     Kind
	Word     string
	Existing Entry
}

func (e *DuplicateWordError) Error() string {
	return fmt.Sprintf("%s dictionary: %q already exists as %q (%s)", e.Kind, e.Word, e.Existing.Word, e.Existing.Category)
}

func (e *DuplicateWordError) Is(target error) bool {
	return target == ErrDuplicateWord
}

// Snapshot is an immutable version of a dictionary.
type Snapshot struct {
	version     uint64
	fingerprint [32]byte
	entries     []Entry
	index       map[string]int
}

// Version increases by one with every accepted insert.
func (s *Snapshot) Version() uint64 {
	return s.version
}

// Fingerprint identifies the snapshot by content: the blake3 chain of every
// appended key and category. Dictionaries built from the same inserts in the
// same order share it, whichever process holds them.
func (s *Snapshot) Fingerprint() string {
	return hex.EncodeToString(s.fingerprint[:])
}

// Len returns the number of entries.
func (s *Snapshot) Len() int {
	return len(s.entries)
}

// Lookup finds the entry whose word equals word ignoring case.
func (s *Snapshot) Lookup(word string) (Entry, bool) {
	i, ok := s.index[WordKey(word)]
	if !ok {
		return Entry{}, false
	}
	return s.entries[i], true
}

// Entries returns a copy of the entries in insertion order.
func (s *Snapshot) Entries() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Dictionary is an append-only set of entries unique by case-insensitive word.
// Writers are serialized; readers work on the current snapshot without locking.
type Dictionary struct {
	kind    Kind
	writeMu sync.Mutex
	current atomic.Pointer[Snapshot]
}

// NewDictionary returns an empty dictionary.
func NewDictionary(kind Kind) *Dictionary {
	d := &Dictionary{kind: kind}
	d.current.Store(&Snapshot{index: map[string]int{}})
	return d
}

// Kind returns the dictionary name.
func (d *Dictionary) Kind() Kind {
	return d.kind
}

// Snapshot returns the current version.
func (d *Dictionary) Snapshot() *Snapshot {
	return d.current.Load()
}

// Fingerprint returns the current snapshot fingerprint.
func (d *Dictionary) Fingerprint() string {
	return d.Snapshot().Fingerprint()
}

// Version returns the current snapshot version.
func (d *Dictionary) Version() uint64 {
	return d.Snapshot().Version()
}

// Len returns the number of entries.
func (d *Dictionary) Len() int {
	return d.Snapshot().Len()
}

// Lookup finds an entry by word ignoring case.
func (d *Dictionary) Lookup(word string) (Entry, bool) {
	return d.Snapshot().Lookup(word)
}

// Entries lists entries in insertion order.
func (d *Dictionary) Entries() []Entry {
	return d.Snapshot().Entries()
}

// Add appends a new entry, or returns a *DuplicateWordError leaving the
// dictionary unchanged.
func (d *Dictionary) Add(word, category string) (Entry, error) {
	return d.AddCommit(word, category, nil)
}

// AddCommit is Add with a hook that runs under the writer lock after the
// duplicate check and before the new version is published. A hook error
// aborts the insert.
func (d *Dictionary) AddCommit(word, category string, commit func(Entry) error) (Entry, error) {
	entry := Entry{Word: word, Category: category}

	d.writeMu.Lock()
	defer d.writeMu.Unlock()

	prev := d.current.Load()
	if existing, ok := prev.Lookup(word); ok {
		return Entry{}, &DuplicateWordError{Kind: d.kind, Word: word, Existing: existing}
	}
	if commit != nil {
		if err := commit(entry); err != nil {
			return Entry{}, err
		}
	}

	next := &Snapshot{
		version:     prev.version + 1,
		fingerprint: chain(prev.fingerprint, entry),
		entries:     make([]Entry, len(prev.entries), len(prev.entries)+1),
		index:       make(map[string]int, len(prev.index)+1),
	}
	copy(next.entries, prev.entries)
	for k, v := range prev.index {
		next.index[k] = v
	}
	next.index[entry.Key()] = len(next.entries)
	next.entries = append(next.entries, entry)

	d.current.Store(next)
	return entry, nil
}

func chain(prev [32]byte, e Entry) [32]byte {
	buf := make([]byte, 0, len(prev)+len(e.Word)+len(e.Category)+2)
	buf = append(buf, prev[:]...)
	buf = append(buf, e.Key()...)
	buf = append(buf, 0)
	buf = append(buf, e.Category...)
	buf = append(buf, 0)
	return blake3.Sum256(buf)
}
