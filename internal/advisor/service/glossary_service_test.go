package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGlossaryExplain_AllDefinedTerms(t *testing.T) {
	svc := NewGlossaryService()

	for _, term := range []string{"pe", "eps", "dividend", "market_cap"} {
		response, err := svc.Explain(term)
		require.NoError(t, err, "term %q", term)
		assert.Equal(t, term, response.Term)
		assert.NotEmpty(t, response.Meaning)
	}
}

func TestGlossaryExplain_CaseInsensitive(t *testing.T) {
	svc := NewGlossaryService()

	response, err := svc.Explain("EPS")
	require.NoError(t, err)
	assert.Equal(t, "eps", response.Term)
	assert.Contains(t, response.Meaning, "Earnings per share")
}

func TestGlossaryExplain_UnknownTerm(t *testing.T) {
	svc := NewGlossaryService()

	_, err := svc.Explain("ebitda")
	assert.ErrorIs(t, err, ErrTermNotFound)
}

func TestGlossaryTerms_Sorted(t *testing.T) {
	svc := NewGlossaryService()
	assert.Equal(t, []string{"dividend", "eps", "market_cap", "pe"}, svc.Terms())
}
