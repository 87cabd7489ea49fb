package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const quietConfig = `opener_probability: 0
lexicon_probability: 0
contraction_probability: 0
filler_probability: 0
clarifier_probability: 0
transition_probability: 0
bridge_probability: 0
tag_probability: 0
question_probability: 0
clause_probability: 0
split_probability: 0
fronting_probability: 0
`

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HUMANIZER_CONFIG", "")
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestRewriteQuietConfigOnlyNormalizes(t *testing.T) {
	cfgPath := writeFile(t, "quiet.yaml", quietConfig)
	out, err := run(t, "hello   world", "rewrite", "--config", cfgPath, "--seed", "1")
	require.NoError(t, err)
	assert.Equal(t, "Hello world.\n", out)
}

func TestRewriteReadsFileArgument(t *testing.T) {
	cfgPath := writeFile(t, "quiet.yaml", quietConfig)
	input := writeFile(t, "in.txt", "the cat sat on the mat.  it was happy")
	out, err := run(t, "", "rewrite", input, "--config", cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "The cat sat on the mat. It was happy.\n", out)
}

func TestRewriteJSONWithDiff(t *testing.T) {
	cfgPath := writeFile(t, "quiet.yaml", quietConfig)
	out, err := run(t, "We must utilize the tool in order to win.",
		"rewrite", "--config", cfgPath, "--lexicon-probability", "1", "--seed", "7", "--json", "--diff")
	require.NoError(t, err)

	var got struct {
		HumanizedText string `json:"humanized_text"`
		Replacements  []struct {
			Original  string `json:"original"`
			Humanized string `json:"humanized"`
		} `json:"replacements"`
		Mode string `json:"mode"`
		Seed uint64 `json:"seed"`
		Diff []struct {
			Original  string `json:"original"`
			Humanized string `json:"humanized"`
			Position  int    `json:"position"`
		} `json:"diff"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "We must use the tool to win.", got.HumanizedText)
	assert.Len(t, got.Replacements, 2)
	assert.Equal(t, "casual", got.Mode)
	assert.Equal(t, uint64(7), got.Seed)
	assert.NotEmpty(t, got.Diff)
}

func TestRewriteEditLog(t *testing.T) {
	cfgPath := writeFile(t, "quiet.yaml", quietConfig)
	out, err := run(t, "We must utilize the tool in order to win.",
		"rewrite", "--config", cfgPath, "--lexicon-probability", "1", "--edits")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "We must use the tool to win.\n"), out)
	assert.Contains(t, out, "edits (2):")
	assert.Contains(t, out, `"utilize" -> "use"`)
}

func TestRewriteSameSeedSameOutput(t *testing.T) {
	in := "Furthermore, the committee will not approve the budget. It is evident that the numbers do not add up."
	a, err := run(t, in, "rewrite", "--seed", "42")
	require.NoError(t, err)
	b, err := run(t, in, "rewrite", "--seed", "42")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestRewriteRejectsBadInput(t *testing.T) {
	_, err := run(t, "Some text.", "rewrite", "--mode", "loud")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown humanization mode")

	_, err = run(t, "   \n", "rewrite")
	require.Error(t, err)

	_, err = run(t, "Some text.", "rewrite", "--tag-probability", "2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tag_probability")
}

func TestConfigPrintsEffectiveSettings(t *testing.T) {
	out, err := run(t, "", "config", "--lexicon-probability", "0.9")
	require.NoError(t, err)
	assert.Contains(t, out, "lexicon_probability: 0.9")
	assert.Contains(t, out, "split_min_words: 20")
}
