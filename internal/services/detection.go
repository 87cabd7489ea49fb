package services

import (
	"math"
	"math/rand/v2"
	"sync"
	"time"
)

const (
	GradeHighlyHuman = "Highly Human"
	GradeGood        = "Good"
	GradeNeedsWork   = "Needs Work"
)

// DetectionScores is an estimate shown next to a rewrite. It is generated,
// not measured: no detector is consulted.
type DetectionScores struct {
	OriginalAIScore  float64 `json:"original_ai_score"`
	HumanizedAIScore float64 `json:"humanized_ai_score"`
	HumanScore       float64 `json:"human_score"`
	Improvement      float64 `json:"improvement"`
	Grade            string  `json:"grade"`
}

type DetectionScorer struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewDetectionScorer(rng *rand.Rand) *DetectionScorer {
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>1|1))
	}
	return &DetectionScorer{rng: rng}
}

// Score draws an original score in [75, 98] and derives the rest from it.
func (d *DetectionScorer) Score() DetectionScores {
	d.mu.Lock()
	original := 75 + d.rng.Float64()*23
	d.mu.Unlock()
	return d.Rescore(original)
}

// Rescore keeps the original score and redraws the humanized one as
// max(5, original * U[0.2, 0.6)).
func (d *DetectionScorer) Rescore(original float64) DetectionScores {
	d.mu.Lock()
	factor := 0.2 + d.rng.Float64()*0.4
	d.mu.Unlock()
	original = round1(original)
	humanized := round1(math.Max(5, original*factor))
	human := round1(100 - humanized)
	return DetectionScores{
		OriginalAIScore:  original,
		HumanizedAIScore: humanized,
		HumanScore:       human,
		Improvement:      round1(original - humanized),
		Grade:            Grade(human),
	}
}

func Grade(humanScore float64) string {
	switch {
	case humanScore >= 80:
		return GradeHighlyHuman
	case humanScore >= 60:
		return GradeGood
	default:
		return GradeNeedsWork
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
