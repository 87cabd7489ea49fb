package humanizer

import (
	"encoding/json"
	"strings"
	"testing"
	"unicode"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// allOn fires every gate while keeping the default thresholds.
func allOn() Config {
	cfg := DefaultConfig()
	cfg.OpenerProbability = 1
	cfg.LexiconProbability = 1
	cfg.ContractionProbability = 1
	cfg.FillerProbability = 1
	cfg.ClarifierProbability = 1
	cfg.TransitionProbability = 1
	cfg.BridgeProbability = 1
	cfg.TagProbability = 1
	cfg.QuestionProbability = 1
	cfg.ClauseProbability = 1
	cfg.SplitProbability = 1
	cfg.FrontingProbability = 1
	return cfg
}

func TestRewriteBlankInput(t *testing.T) {
	r := New(allOn())
	for _, in := range []string{"", "   ", "\n\t  \n", "...", "?!"} {
		res := r.Rewrite(in, Options{Rand: NewRand(1)})
		assert.Equal(t, "", res.HumanizedText, "input %q", in)
		require.NotNil(t, res.Replacements, "input %q", in)
		assert.Empty(t, res.Replacements, "input %q", in)
	}

	raw, err := json.Marshal(r.Rewrite("", Options{}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"humanized_text":"","replacements":[]}`, string(raw))
	assert.Equal(t, `{"humanized_text":"","replacements":[]}`, string(raw))
}

func TestRewriteShortInputSuppressesInsertions(t *testing.T) {
	r := New(allOn())
	for seed := uint64(0); seed < 10; seed++ {
		res := r.Rewrite("Yes.", Options{Rand: NewRand(seed)})
		assert.Equal(t, "Yes.", res.HumanizedText)
		assert.Empty(t, res.Replacements)
	}
}

func TestRewriteFormalPhraseAndContraction(t *testing.T) {
	r := New(Config{LexiconProbability: 1, ContractionProbability: 1})
	res := r.Rewrite("It is important to note that the system will not fail.", Options{Rand: NewRand(7)})

	assert.Equal(t, "Worth noting that the system won't fail.", res.HumanizedText)
	require.Len(t, res.Replacements, 1)
	assert.Equal(t, Edit{
		Original:  "It is important to note that",
		Humanized: "Worth noting that",
		Position:  0,
	}, res.Replacements[0])
}

func TestRewriteFormalPhraseGoneUnderDefaults(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LexiconProbability = 1
	cfg.ContractionProbability = 1
	r := New(cfg)
	for seed := uint64(0); seed < 50; seed++ {
		out := r.Rewrite("It is important to note that the system will not fail.", Options{Rand: NewRand(seed)}).HumanizedText
		assert.Contains(t, out, "won't", "seed %d", seed)
		assert.NotContains(t, strings.ToLower(out), "it is important to note that", "seed %d", seed)
	}
}

func TestRewriteSameSeedSameOutput(t *testing.T) {
	r := Default()
	in := "Furthermore, the committee will not approve the budget. It is evident that the numbers do not add up. We are going to revisit the plan next quarter because the forecast changed substantially over the summer."
	for seed := uint64(0); seed < 10; seed++ {
		a := r.Rewrite(in, Options{Rand: NewRand(seed)})
		b := r.Rewrite(in, Options{Rand: NewRand(seed)})
		assert.Equal(t, a, b, "seed %d", seed)
	}
}

func TestRewriteVariesAcrossSeeds(t *testing.T) {
	r := Default()
	in := "The report is finished. It is important to note that the data is incomplete. We will not publish it until the review is done. The team is working on it."
	seen := map[string]struct{}{}
	for seed := uint64(0); seed < 20; seed++ {
		seen[r.Rewrite(in, Options{Rand: NewRand(seed)}).HumanizedText] = struct{}{}
	}
	assert.GreaterOrEqual(t, len(seen), 2)
}

func TestRewriteIsNotIdempotent(t *testing.T) {
	r := Default()
	in := "The report is finished. The data is incomplete and the numbers are still being checked by the analytics team. We will not publish it until the review is done. The team is working on it."
	changed := 0
	for seed := uint64(0); seed < 20; seed++ {
		first := r.Rewrite(in, Options{Rand: NewRand(seed)}).HumanizedText
		second := r.Rewrite(first, Options{Rand: NewRand(seed + 1000)}).HumanizedText
		if second != first {
			changed++
		}
	}
	assert.Positive(t, changed)
}

func TestRewriteWithoutMatchesOnlyNormalizes(t *testing.T) {
	r := New(Config{})
	cases := map[string]string{
		"the cat sat on the mat.  it was happy": "The cat sat on the mat. It was happy.",
		"hello   world!!  how are you??":        "Hello world! How are you?",
		"  a plain line without an ending  ":    "A plain line without an ending.",
		"Wait ,what happened ?":                 "Wait, what happened?",
		"first line\nsecond line. third one!":   "First line second line. Third one!",
	}
	for in, want := range cases {
		res := r.Rewrite(in, Options{Rand: NewRand(3)})
		assert.Equal(t, want, res.HumanizedText, "input %q", in)
		assert.Empty(t, res.Replacements)
	}
}

func TestRewriteKeepsInputWordsInOrder(t *testing.T) {
	cfg := allOn()
	cfg.LexiconProbability = 0
	cfg.ContractionProbability = 0
	cfg.FrontingProbability = 0
	r := New(cfg)

	in := "The migration finished overnight without any data loss. " +
		"Operators watched the dashboards closely while the replicas caught up with the primary and the queue drained to zero before the morning traffic started arriving. " +
		"Nobody was paged. The new cluster is faster. Latency dropped by half."
	want := tokens(in)
	for seed := uint64(0); seed < 25; seed++ {
		got := tokens(r.Rewrite(in, Options{Rand: NewRand(seed)}).HumanizedText)
		assert.True(t, isSubsequence(want, got), "seed %d: %v not within %v", seed, want, got)
	}
}

func TestRewriteOutputShape(t *testing.T) {
	r := Default()
	inputs := []string{
		"the quick brown fox jumps over the lazy dog because it was bored and the sun was out",
		"i am not sure this will work. we are trying anyway!",
		"Furthermore, it is evident that the results are good",
		"Consequently we utilize numerous tools in order to facilitate the work. It is not easy. They are tired",
		"lowercase start with no punctuation",
	}
	for _, in := range inputs {
		for seed := uint64(0); seed < 30; seed++ {
			out := r.Rewrite(in, Options{Rand: NewRand(seed)}).HumanizedText
			require.NotEmpty(t, out)
			first, _ := utf8.DecodeRuneInString(out)
			assert.True(t, unicode.IsUpper(first), "seed %d: %q", seed, out)
			last, _ := utf8.DecodeLastRuneInString(out)
			assert.Contains(t, ".!?", string(last), "seed %d: %q", seed, out)
		}
	}
}

func TestRewriteLexiconEditsPointIntoWorkingText(t *testing.T) {
	r := New(Config{LexiconProbability: 1})
	in := "We must utilize the tool in order to win."
	res := r.Rewrite(in, Options{Rand: NewRand(1)})

	assert.Equal(t, "We must use the tool to win.", res.HumanizedText)
	require.Len(t, res.Replacements, 2)
	for _, e := range res.Replacements {
		assert.Equal(t, e.Original, in[e.Position:e.Position+len(e.Original)])
	}
}

func TestRewriteOpenerKeepsPronounCase(t *testing.T) {
	r := New(Config{OpenerProbability: 1, OpenerMinWords: 3})
	res := r.Rewrite("I think this works fine.", Options{Rand: NewRand(2)})
	assert.Contains(t, res.HumanizedText, " I think this works fine.")
	require.Len(t, res.Replacements, 1)
	assert.Equal(t, "I think this works fine", res.Replacements[0].Original)
	assert.Equal(t, 0, res.Replacements[0].Position)
}

func TestRewriteFrontsBecauseClause(t *testing.T) {
	r := New(Config{FrontingProbability: 1, FrontingMinWords: 8, ClauseMinWords: 1, SplitMinWords: 100})
	res := r.Rewrite("The launch slipped a week because the vendor shipped late.", Options{Rand: NewRand(1)})
	assert.Equal(t, "Because the vendor shipped late, the launch slipped a week.", res.HumanizedText)
}

func TestRewriteSplitsLongSentence(t *testing.T) {
	r := New(Config{SplitProbability: 1, SplitMinWords: 10})
	in := "one two three four five six seven eight nine ten eleven twelve."
	out := r.Rewrite(in, Options{Rand: NewRand(4)}).HumanizedText
	parts := strings.SplitN(out, ". ", 2)
	require.Len(t, parts, 2, out)
	assert.Equal(t, "One two three four five six", parts[0])
	assert.True(t, strings.HasSuffix(parts[1], "seven eight nine ten eleven twelve."), out)
}

func TestPassesRunInFixedOrder(t *testing.T) {
	assert.Equal(t, []string{
		"opener", "lexicon", "contractions", "filler", "clarifier",
		"transitions", "rhetorical", "length_variation",
	}, Default().Passes())
}

func tokens(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})
}

func isSubsequence(want, got []string) bool {
	i := 0
	for _, g := range got {
		if i < len(want) && want[i] == g {
			i++
		}
	}
	return i == len(want)
}

func TestSplitPointSkipsSplicedPhrases(t *testing.T) {
	words := strings.Fields("we shipped more or less, the release on time today")
	plain := &sentence{}
	assert.Equal(t, 4, plain.splitPoint(words, 4))

	withFiller := &sentence{spliced: []string{"more or less,"}}
	assert.Equal(t, 5, withFiller.splitPoint(words, 4))
	assert.Equal(t, 2, withFiller.splitPoint(words, 3))

	whole := &sentence{spliced: []string{"one two three four"}}
	assert.Equal(t, -1, whole.splitPoint(strings.Fields("one two three four"), 2))
}

func TestRewriteSplitKeepsFillersWhole(t *testing.T) {
	r := New(Config{FillerProbability: 1, SplitProbability: 1, SplitMinWords: 6})
	in := "The team shipped the release on time and the customers were happy about it."
	for seed := uint64(0); seed < 40; seed++ {
		out := strings.ToLower(r.Rewrite(in, Options{Rand: NewRand(seed)}).HumanizedText)
		whole := false
		for _, f := range fillers {
			if strings.Contains(out, strings.ToLower(strings.TrimRight(f, ","))) {
				whole = true
				break
			}
		}
		assert.True(t, whole, "seed %d: %q", seed, out)
	}
}

func TestRewriteNeverSplitsClarifiedSentence(t *testing.T) {
	r := New(Config{ClarifierProbability: 1, ClarifierMinWords: 4, SplitProbability: 1, SplitMinWords: 6})
	in := "The team shipped the release on time and the customers were happy about it."
	for seed := uint64(0); seed < 20; seed++ {
		out := r.Rewrite(in, Options{Rand: NewRand(seed)}).HumanizedText
		assert.Contains(t, out, " — ", "seed %d", seed)
		assert.Equal(t, 1, strings.Count(out, "."), "seed %d: %q", seed, out)
	}
}

func TestRewriteTransitionsDoNotStackOnConnectives(t *testing.T) {
	r := New(Config{LexiconProbability: 1, TransitionProbability: 1})
	res := r.Rewrite("The docs were late. However, it is evident that the documentation improved.", Options{Rand: NewRand(5)})
	assert.Equal(t, "The docs were late. But, clearly the documentation improved.", res.HumanizedText)
}

func TestRewriteCapitalizesFirstLetterAndSplitsDecimals(t *testing.T) {
	r := New(Config{})
	cases := map[string]string{
		"(note) it is fine.":           "(Note) it is fine.",
		`"hello there," she said.`:     `"Hello there," she said.`,
		"the rate is 3.5 percent.":     "The rate is 3. 5 percent.",
		"42 tests passed. all is well": "42 tests passed. All is well.",
	}
	for in, want := range cases {
		assert.Equal(t, want, r.Rewrite(in, Options{Rand: NewRand(1)}).HumanizedText, "input %q", in)
	}
}
