package humanizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
	require.NoError(t, Config{}.Validate())
}

func TestConfigValidateRejectsBadValues(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LexiconProbability = 1.5
	cfg.FillerMinWords = -1
	cfg.ClauseMaxWords = 2
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lexicon_probability")
	assert.Contains(t, err.Error(), "filler_min_words")
	assert.Contains(t, err.Error(), "clause_max_words")
}

func TestConfigMapCoversEveryField(t *testing.T) {
	m := DefaultConfig().Map()
	assert.Len(t, m, 22)
	assert.Equal(t, 0.6, m["lexicon_probability"])
	assert.Equal(t, 20, m["split_min_words"])
}
