package humanizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiffRebuildsAfter(t *testing.T) {
	pairs := [][2]string{
		{"", ""},
		{"same text", "same text"},
		{"It is important to note that the system will not fail.", "Worth noting that the system won't fail."},
		{"abc", ""},
		{"", "abc"},
		{"The café is closed.", "Honestly, the café isn't open."},
	}
	for _, p := range pairs {
		edits := Diff(p[0], p[1])
		assert.NotNil(t, edits)
		assert.Equal(t, p[1], Apply(p[0], edits), "%q -> %q", p[0], p[1])
		last := -1
		for _, e := range edits {
			assert.GreaterOrEqual(t, e.Position, last)
			assert.Equal(t, e.Original, p[0][e.Position:e.Position+len(e.Original)])
			last = e.Position
		}
	}
}

func TestDiffAgainstRewrite(t *testing.T) {
	r := Default()
	in := "Furthermore, we will not utilize the old servers. It is evident that the migration is done. The team is celebrating tonight because the work is over."
	for seed := uint64(0); seed < 10; seed++ {
		out := r.Rewrite(in, Options{Rand: NewRand(seed)}).HumanizedText
		assert.Equal(t, out, Apply(in, Diff(in, out)), "seed %d", seed)
	}
}

func TestDiffIdenticalIsEmpty(t *testing.T) {
	assert.Empty(t, Diff("x", "x"))
}
