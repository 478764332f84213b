package seed

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/spec-kit/helpdesk-service/internal/classifier"
)

// Department is a department to register at startup.
type Department struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Contact     string `yaml:"contact"`
}

// Dictionaries lists initial words per dictionary.
type Dictionaries struct {
	Emotional []classifier.Entry `yaml:"emotional"`
	Technical []classifier.Entry `yaml:"technical"`
}

// File is the seed document.
type File struct {
	Departments  []Department `yaml:"departments"`
	Dictionaries Dictionaries `yaml:"dictionaries"`
}

// Entries returns the seed words for kind.
func (f *File) Entries(kind classifier.Kind) []classifier.Entry {
	switch kind {
	case classifier.KindEmotional:
		return f.Dictionaries.Emotional
	case classifier.KindTechnical:
		return f.Dictionaries.Technical
	}
	return nil
}

// Load reads and validates a seed file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a seed document.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	for i, d := range f.Departments {
		if d.Name == "" {
			return nil, fmt.Errorf("department %d: name required", i)
		}
	}
	for _, kind := range []classifier.Kind{classifier.KindEmotional, classifier.KindTechnical} {
		for i, e := range f.Entries(kind) {
			if e.Word == "" || e.Category == "" {
				return nil, fmt.Errorf("%s entry %d: word and category required", kind, i)
			}
		}
	}
	return &f, nil
}
