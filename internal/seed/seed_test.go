package seed

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/helpdesk-service/internal/classifier"
)

const sample = `
departments:
  - name: Soporte TI
    description: Equipos y redes
    contact: ti@uni.ac.cr
dictionaries:
  emotional:
    - {word: lento, category: frustración}
    - {word: gracias, category: satisfacción}
  technical:
    - {word: impresora, category: hardware}
`

func TestParse(t *testing.T) {
	f, err := Parse([]byte(sample))
	require.NoError(t, err)

	require.Len(t, f.Departments, 1)
	assert.Equal(t, "Soporte TI", f.Departments[0].Name)
	assert.Equal(t, []classifier.Entry{
		{Word: "lento", Category: "frustración"},
		{Word: "gracias", Category: "satisfacción"},
	}, f.Entries(classifier.KindEmotional))
	assert.Equal(t, []classifier.Entry{{Word: "impresora", Category: "hardware"}}, f.Entries(classifier.KindTechnical))
	assert.Nil(t, f.Entries(classifier.Kind("other")))
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte("departments: [{description: x}]"))
	assert.Error(t, err)

	_, err = Parse([]byte("dictionaries: {technical: [{word: red}]}"))
	assert.Error(t, err)

	_, err = Parse([]byte("departments: {"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	f, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, f.Dictionaries.Emotional, 2)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
