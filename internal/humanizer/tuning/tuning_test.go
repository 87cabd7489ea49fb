package tuning

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/humanizer-backend/internal/humanizer"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, humanizer.DefaultConfig(), cfg)
}

func TestLoadPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "humanizer.yaml")
	require.NoError(t, os.WriteFile(path, []byte("lexicon_probability: 0.9\nfiller_probability: 0.5\nsplit_min_words: 30\n"), 0o600))

	t.Setenv("HUMANIZER_FILLER_PROBABILITY", "0.25")
	t.Setenv("HUMANIZER_UNRELATED", "ignored")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	fs.String("mode", "casual", "")
	require.NoError(t, fs.Parse([]string{"--lexicon-probability=1", "--mode=academic"}))

	cfg, err := Load(path, fs)
	require.NoError(t, err)
	assert.Equal(t, 1.0, cfg.LexiconProbability)
	assert.Equal(t, 0.25, cfg.FillerProbability)
	assert.Equal(t, 30, cfg.SplitMinWords)
	assert.Equal(t, humanizer.DefaultConfig().OpenerProbability, cfg.OpenerProbability)
}

func TestLoadRejectsInvalid(t *testing.T) {
	t.Setenv("HUMANIZER_TAG_PROBABILITY", "3")
	_, err := Load("", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tag_probability")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	require.Error(t, err)
}

func TestYAMLRoundTrip(t *testing.T) {
	raw, err := YAML(humanizer.DefaultConfig())
	require.NoError(t, err)
	assert.Contains(t, string(raw), "lexicon_probability: 0.6")

	path := filepath.Join(t.TempDir(), "dump.yaml")
	require.NoError(t, os.WriteFile(path, raw, 0o600))
	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, humanizer.DefaultConfig(), cfg)
}
