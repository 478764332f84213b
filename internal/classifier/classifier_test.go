package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify_MatchesBothEmotions(t *testing.T) {
	c := New(nil)
	_, err := c.AddEmotionalWord("lento", "frustración")
	require.NoError(t, err)
	_, err = c.AddEmotionalWord("gracias", "satisfacción")
	require.NoError(t, err)

	res := c.Classify("Gracias, pero el sistema está muy LENTO")

	assert.ElementsMatch(t, []string{"satisfacción", "frustración"}, res.Emotions)
	assert.Empty(t, res.Categories)
	assert.Equal(t, uint64(2), res.EmotionalVersion)
	assert.Equal(t, uint64(0), res.TechnicalVersion)
}

func TestClassify_KeepsRepeatedCategories(t *testing.T) {
	c := New(nil)
	_, _ = c.AddTechnicalWord("impresora", "hardware")
	_, _ = c.AddTechnicalWord("monitor", "hardware")

	res := c.Classify("la impresora y el monitor; la IMPRESORA otra vez")

	assert.Equal(t, []string{"hardware", "hardware", "hardware"}, res.Categories)
	assert.Equal(t, []string{"hardware"}, Distinct(res.Categories))
}

func TestClassify_NoPartialMatches(t *testing.T) {
	c := New(nil)
	_, _ = c.AddTechnicalWord("red", "redes")

	res := c.Classify("redes reducido redondo")
	assert.Empty(t, res.Categories)
}

func TestClassify_MixedCaseEntryMatchesLowercaseToken(t *testing.T) {
	c := New(nil)
	_, _ = c.AddTechnicalWord("WiFi", "redes")

	res := c.Classify("el wifi no conecta")
	assert.Equal(t, []string{"redes"}, res.Categories)
}

func TestAddWord_Outcomes(t *testing.T) {
	c := New(nil)

	out, err := c.AddEmotionalWord("Lento", "frustración")
	require.NoError(t, err)
	assert.Equal(t, OutcomeAdded, out)

	out, err = c.AddEmotionalWord("lento", "tristeza")
	assert.ErrorIs(t, err, ErrDuplicateWord)
	assert.Equal(t, OutcomeAlreadyExists, out)

	entry, ok := c.Emotional().Lookup("lento")
	require.True(t, ok)
	assert.Equal(t, "frustración", entry.Category)
	assert.Equal(t, 1, c.Emotional().Len())
}

func TestDictionaries_AreIndependent(t *testing.T) {
	c := New(nil)
	_, err := c.AddEmotionalWord("bloqueado", "enojo")
	require.NoError(t, err)

	out, err := c.AddTechnicalWord("bloqueado", "cuentas")
	require.NoError(t, err)
	assert.Equal(t, OutcomeAdded, out)

	emo, _ := c.Emotional().Lookup("bloqueado")
	tech, _ := c.Technical().Lookup("bloqueado")
	assert.Equal(t, "enojo", emo.Category)
	assert.Equal(t, "cuentas", tech.Category)

	res := c.Classify("usuario bloqueado")
	assert.Equal(t, []string{"enojo"}, res.Emotions)
	assert.Equal(t, []string{"cuentas"}, res.Categories)
}

func TestClassifier_DictionaryByKind(t *testing.T) {
	c := New(nil)

	d, err := c.Dictionary(KindEmotional)
	require.NoError(t, err)
	assert.Same(t, c.Emotional(), d)

	d, err = c.Dictionary(KindTechnical)
	require.NoError(t, err)
	assert.Same(t, c.Technical(), d)

	_, err = c.Dictionary(Kind("other"))
	assert.Error(t, err)
}

func TestMatchSnapshot_ReportsTokens(t *testing.T) {
	d := NewDictionary(KindTechnical)
	_, _ = d.Add("Correo", "email")

	matches := MatchSnapshot([]string{"mi", "correo", "falla"}, d.Snapshot())
	require.Len(t, matches, 1)
	assert.Equal(t, "correo", matches[0].Token)
	assert.Equal(t, Entry{Word: "Correo", Category: "email"}, matches[0].Entry)

	assert.Nil(t, MatchSnapshot([]string{"correo"}, NewDictionary(KindTechnical).Snapshot()))
	assert.Equal(t, []string{"email"}, Categories([]string{"correo"}, d))
}
