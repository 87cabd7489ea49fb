// Package humanizer rewrites formal, machine-sounding prose into a looser
// conversational register. The rewrite is a fixed pipeline of string passes,
// each gated by probabilities from Config and an injected random source.
package humanizer

import (
	"math/rand/v2"
	"strings"
)

// Edit is one recorded change. Position is a byte offset into the working
// text as it stood when the pass ran, so it is only advisory once later
// passes have shifted the text. Use Diff for offsets valid against the input.
type Edit struct {
	Original  string `json:"original"`
	Humanized string `json:"humanized"`
	Position  int    `json:"position"`
}

type Result struct {
	HumanizedText string `json:"humanized_text"`
	Replacements  []Edit `json:"replacements"`
}

type Options struct {
	Mode Mode
	// Rand drives every gate. A nil Rand gets a randomly seeded generator.
	Rand *rand.Rand
}

type Rewriter struct {
	cfg    Config
	passes []pass
}

func New(cfg Config) *Rewriter {
	return &Rewriter{cfg: cfg, passes: pipeline()}
}

// Default returns a rewriter tuned with DefaultConfig.
func Default() *Rewriter {
	return New(DefaultConfig())
}

func (r *Rewriter) Config() Config { return r.cfg }

// Passes lists the pipeline in execution order.
func (r *Rewriter) Passes() []string {
	out := make([]string, 0, len(r.passes))
	for _, p := range r.passes {
		out = append(out, p.name)
	}
	return out
}

// Rewrite runs every pass over text. Blank input, or input with no letters
// or digits, yields an empty result.
func (r *Rewriter) Rewrite(text string, opts Options) Result {
	empty := Result{HumanizedText: "", Replacements: []Edit{}}
	if strings.TrimSpace(text) == "" {
		return empty
	}
	sentences := segment(text)
	if len(sentences) == 0 {
		return empty
	}

	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	st := &state{
		cfg:       r.cfg,
		rng:       rng,
		mode:      opts.Mode,
		sentences: sentences,
		edits:     []Edit{},
	}
	for _, p := range r.passes {
		p.apply(st)
	}
	return Result{HumanizedText: normalize(st.join()), Replacements: st.edits}
}

// NewRand returns a deterministic generator for seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
