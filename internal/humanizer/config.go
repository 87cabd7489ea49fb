package humanizer

import (
	"errors"
	"fmt"
)

// Config holds every gate probability and word/sentence threshold the
// pipeline uses. The zero value disables every randomized pass.
type Config struct {
	OpenerProbability float64 `koanf:"opener_probability" yaml:"opener_probability" json:"opener_probability"`
	OpenerMinWords    int     `koanf:"opener_min_words" yaml:"opener_min_words" json:"opener_min_words"`

	LexiconProbability     float64 `koanf:"lexicon_probability" yaml:"lexicon_probability" json:"lexicon_probability"`
	ContractionProbability float64 `koanf:"contraction_probability" yaml:"contraction_probability" json:"contraction_probability"`

	FillerProbability float64 `koanf:"filler_probability" yaml:"filler_probability" json:"filler_probability"`
	FillerMinWords    int     `koanf:"filler_min_words" yaml:"filler_min_words" json:"filler_min_words"`

	ClarifierProbability float64 `koanf:"clarifier_probability" yaml:"clarifier_probability" json:"clarifier_probability"`
	ClarifierMinWords    int     `koanf:"clarifier_min_words" yaml:"clarifier_min_words" json:"clarifier_min_words"`

	TransitionProbability float64 `koanf:"transition_probability" yaml:"transition_probability" json:"transition_probability"`
	BridgeProbability     float64 `koanf:"bridge_probability" yaml:"bridge_probability" json:"bridge_probability"`
	BridgeMinSentences    int     `koanf:"bridge_min_sentences" yaml:"bridge_min_sentences" json:"bridge_min_sentences"`

	TagProbability       float64 `koanf:"tag_probability" yaml:"tag_probability" json:"tag_probability"`
	TagMinWords          int     `koanf:"tag_min_words" yaml:"tag_min_words" json:"tag_min_words"`
	QuestionProbability  float64 `koanf:"question_probability" yaml:"question_probability" json:"question_probability"`
	QuestionMinSentences int     `koanf:"question_min_sentences" yaml:"question_min_sentences" json:"question_min_sentences"`

	ClauseProbability float64 `koanf:"clause_probability" yaml:"clause_probability" json:"clause_probability"`
	ClauseMinWords    int     `koanf:"clause_min_words" yaml:"clause_min_words" json:"clause_min_words"`
	ClauseMaxWords    int     `koanf:"clause_max_words" yaml:"clause_max_words" json:"clause_max_words"`

	SplitProbability float64 `koanf:"split_probability" yaml:"split_probability" json:"split_probability"`
	SplitMinWords    int     `koanf:"split_min_words" yaml:"split_min_words" json:"split_min_words"`

	FrontingProbability float64 `koanf:"fronting_probability" yaml:"fronting_probability" json:"fronting_probability"`
	FrontingMinWords    int     `koanf:"fronting_min_words" yaml:"fronting_min_words" json:"fronting_min_words"`
}

func DefaultConfig() Config {
	return Config{
		OpenerProbability: 0.3,
		OpenerMinWords:    3,

		LexiconProbability:     0.6,
		ContractionProbability: 0.7,

		FillerProbability: 0.2,
		FillerMinWords:    5,

		ClarifierProbability: 0.1,
		ClarifierMinWords:    12,

		TransitionProbability: 0.4,
		BridgeProbability:     0.3,
		BridgeMinSentences:    3,

		TagProbability:       0.1,
		TagMinWords:          6,
		QuestionProbability:  0.15,
		QuestionMinSentences: 2,

		ClauseProbability: 0.15,
		ClauseMinWords:    4,
		ClauseMaxWords:    8,

		SplitProbability: 0.3,
		SplitMinWords:    20,

		FrontingProbability: 0.4,
		FrontingMinWords:    8,
	}
}

// Map flattens the config into koanf keys.
func (c Config) Map() map[string]any {
	return map[string]any{
		"opener_probability":      c.OpenerProbability,
		"opener_min_words":        c.OpenerMinWords,
		"lexicon_probability":     c.LexiconProbability,
		"contraction_probability": c.ContractionProbability,
		"filler_probability":      c.FillerProbability,
		"filler_min_words":        c.FillerMinWords,
		"clarifier_probability":   c.ClarifierProbability,
		"clarifier_min_words":     c.ClarifierMinWords,
		"transition_probability":  c.TransitionProbability,
		"bridge_probability":      c.BridgeProbability,
		"bridge_min_sentences":    c.BridgeMinSentences,
		"tag_probability":         c.TagProbability,
		"tag_min_words":           c.TagMinWords,
		"question_probability":    c.QuestionProbability,
		"question_min_sentences":  c.QuestionMinSentences,
		"clause_probability":      c.ClauseProbability,
		"clause_min_words":        c.ClauseMinWords,
		"clause_max_words":        c.ClauseMaxWords,
		"split_probability":       c.SplitProbability,
		"split_min_words":         c.SplitMinWords,
		"fronting_probability":    c.FrontingProbability,
		"fronting_min_words":      c.FrontingMinWords,
	}
}

func (c Config) Validate() error {
	probs := map[string]float64{
		"opener_probability":      c.OpenerProbability,
		"lexicon_probability":     c.LexiconProbability,
		"contraction_probability": c.ContractionProbability,
		"filler_probability":      c.FillerProbability,
		"clarifier_probability":   c.ClarifierProbability,
		"transition_probability":  c.TransitionProbability,
		"bridge_probability":      c.BridgeProbability,
		"tag_probability":         c.TagProbability,
		"question_probability":    c.QuestionProbability,
		"clause_probability":      c.ClauseProbability,
		"split_probability":       c.SplitProbability,
		"fronting_probability":    c.FrontingProbability,
	}
	var errs []error
	for k, p := range probs {
		if p < 0 || p > 1 {
			errs = append(errs, fmt.Errorf("%s must be within [0,1], got %v", k, p))
		}
	}
	counts := map[string]int{
		"opener_min_words":       c.OpenerMinWords,
		"filler_min_words":       c.FillerMinWords,
		"clarifier_min_words":    c.ClarifierMinWords,
		"bridge_min_sentences":   c.BridgeMinSentences,
		"tag_min_words":          c.TagMinWords,
		"question_min_sentences": c.QuestionMinSentences,
		"clause_min_words":       c.ClauseMinWords,
		"clause_max_words":       c.ClauseMaxWords,
		"split_min_words":        c.SplitMinWords,
		"fronting_min_words":     c.FrontingMinWords,
	}
	for k, n := range counts {
		if n < 0 {
			errs = append(errs, fmt.Errorf("%s must not be negative, got %d", k, n))
		}
	}
	if c.ClauseMaxWords < c.ClauseMinWords {
		errs = append(errs, fmt.Errorf("clause_max_words (%d) is below clause_min_words (%d)", c.ClauseMaxWords, c.ClauseMinWords))
	}
	return errors.Join(errs...)
}
