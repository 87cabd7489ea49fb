package humanizer

import (
	"math/rand/v2"
	"strings"
)

type state struct {
	cfg       Config
	rng       *rand.Rand
	mode      Mode
	sentences []*sentence
	edits     []Edit
}

// chance is the gate every pass consults. p <= 0 never fires and p >= 1
// always fires without consuming randomness.
func (st *state) chance(p float64) bool {
	switch {
	case p <= 0:
		return false
	case p >= 1:
		return true
	default:
		return st.rng.Float64() < p
	}
}

func (st *state) pick(list []string) string {
	return list[st.rng.IntN(len(list))]
}

func (st *state) join() string {
	parts := make([]string, 0, len(st.sentences))
	for _, s := range st.sentences {
		parts = append(parts, s.text+s.mark)
	}
	return strings.Join(parts, " ")
}

// offset is the byte position of sentence i within join().
func (st *state) offset(i int) int {
	n := 0
	for _, s := range st.sentences[:i] {
		n += len(s.text) + len(s.mark) + 1
	}
	return n
}

func (st *state) record(original, humanized string, pos int) {
	st.edits = append(st.edits, Edit{Original: original, Humanized: humanized, Position: pos})
}

type pass struct {
	name  string
	apply func(*state)
}

func pipeline() []pass {
	return []pass{
		{"opener", applyOpener},
		{"lexicon", applyLexicon},
		{"contractions", applyContractions},
		{"filler", applyFiller},
		{"clarifier", applyClarifier},
		{"transitions", applyTransitions},
		{"rhetorical", applyRhetorical},
		{"length_variation", applyLengthVariation},
	}
}

func applyOpener(st *state) {
	first := st.sentences[0]
	if first.words() < st.cfg.OpenerMinWords || !st.chance(st.cfg.OpenerProbability) {
		return
	}
	before := first.text
	opener := st.pick(openers)
	first.text = opener + " " + lowerFirst(first.text)
	first.prefixed = true
	first.spliced = append(first.spliced, opener)
	st.record(before, first.text, 0)
}

func applyLexicon(st *state) {
	for _, r := range lexiconRules {
		if !st.chance(st.cfg.LexiconProbability) {
			continue
		}
		for i, s := range st.sentences {
			locs := r.re.FindAllStringIndex(s.text, -1)
			if len(locs) == 0 {
				continue
			}
			base := st.offset(i)
			var b strings.Builder
			last := 0
			for _, loc := range locs {
				match := s.text[loc[0]:loc[1]]
				repl := matchCase(match, r.Casual)
				st.record(match, repl, base+loc[0])
				b.WriteString(s.text[last:loc[0]])
				b.WriteString(repl)
				last = loc[1]
			}
			b.WriteString(s.text[last:])
			s.text = b.String()
		}
	}
}

func applyContractions(st *state) {
	for _, r := range contractionRules {
		if !st.chance(st.cfg.ContractionProbability) {
			continue
		}
		for _, s := range st.sentences {
			s.text = r.re.ReplaceAllStringFunc(s.text, func(m string) string {
				return matchCase(m, r.Casual)
			})
		}
	}
}

func applyFiller(st *state) {
	for _, s := range st.sentences {
		words := strings.Fields(s.text)
		if len(words) <= st.cfg.FillerMinWords || len(words) < 3 || !st.chance(st.cfg.FillerProbability) {
			continue
		}
		at := 1 + st.rng.IntN(len(words)-2)
		filler := st.pick(fillers)
		out := make([]string, 0, len(words)+1)
		out = append(out, words[:at]...)
		out = append(out, filler)
		out = append(out, words[at:]...)
		s.text = joinWords(out)
		s.spliced = append(s.spliced, filler)
	}
}

func applyClarifier(st *state) {
	for i, s := range st.sentences {
		words := strings.Fields(s.text)
		if len(words) < st.cfg.ClarifierMinWords || len(words) < 4 || !st.chance(st.cfg.ClarifierProbability) {
			continue
		}
		mid := len(words) / 2
		left := trimJoin(joinWords(words[:mid]))
		right := joinWords(words[mid:])
		marker := st.pick(clarifiers)

		lastWord := words[mid-1]
		pos := st.offset(i)
		if at := strings.Index(s.text, lastWord+" "+words[mid]); at >= 0 {
			pos += at
		}
		s.text = left + " — " + marker + " " + right
		s.clarified = true
		st.record(lastWord+" "+words[mid], strings.TrimRight(lastWord, ",;:")+" — "+marker+" "+words[mid], pos)
	}
}

func applyTransitions(st *state) {
	for i, s := range st.sentences {
		if i == 0 || s.prefixed || startsWithConnective(s.text) || !st.chance(st.cfg.TransitionProbability) {
			continue
		}
		t := st.pick(transitions)
		s.text = t + " " + lowerFirst(s.text)
		s.prefixed = true
		s.spliced = append(s.spliced, t)
	}
	if len(st.sentences) < st.cfg.BridgeMinSentences || len(st.sentences) < 2 {
		return
	}
	mid := st.sentences[len(st.sentences)/2]
	if mid.prefixed || startsWithConnective(mid.text) || !st.chance(st.cfg.BridgeProbability) {
		return
	}
	bridge := st.pick(bridges)
	mid.text = bridge + " " + lowerFirst(mid.text)
	mid.prefixed = true
	mid.spliced = append(mid.spliced, bridge)
}

func applyRhetorical(st *state) {
	for _, s := range st.sentences {
		if s.mark != "." || s.words() < st.cfg.TagMinWords || s.words() == 0 || !st.chance(st.cfg.TagProbability) {
			continue
		}
		tag := st.pick(tags)
		s.text = trimJoin(s.text) + ", " + tag
		s.spliced = append(s.spliced, tag)
	}
	n := len(st.sentences)
	if n < st.cfg.QuestionMinSentences || n < 2 || !st.chance(st.cfg.QuestionProbability) {
		return
	}
	q := st.pick(questions)
	at := 1 + st.rng.IntN(n-1)
	inserted := &sentence{
		text:     strings.TrimSuffix(q, "?"),
		mark:     "?",
		prefixed: true,
		inserted: true,
	}
	st.sentences = append(st.sentences[:at], append([]*sentence{inserted}, st.sentences[at:]...)...)
}

func applyLengthVariation(st *state) {
	out := make([]*sentence, 0, len(st.sentences))
	for _, s := range st.sentences {
		if s.inserted {
			out = append(out, s)
			continue
		}
		n := s.words()
		switch {
		case n >= st.cfg.ClauseMinWords && n <= st.cfg.ClauseMaxWords && n > 0 && s.mark == ".":
			if st.chance(st.cfg.ClauseProbability) {
				clause := st.pick(clauses)
				s.text = trimJoin(s.text) + ", " + clause
				s.spliced = append(s.spliced, clause)
			}
		case n > st.cfg.SplitMinWords && n >= 6 && !s.clarified:
			if st.chance(st.cfg.SplitProbability) {
				words := strings.Fields(s.text)
				at := s.splitPoint(words, n/2)
				if at < 0 {
					break
				}
				head := &sentence{text: trimJoin(joinWords(words[:at])), mark: ".", prefixed: s.prefixed}
				rest := joinWords(words[at:])
				if !startsWithConnective(rest) {
					rest = st.pick(splitWords) + " " + lowerFirst(rest)
				}
				tail := &sentence{text: rest, mark: s.mark, prefixed: true}
				out = append(out, front(st, head), tail)
				continue
			}
		}
		out = append(out, front(st, s))
	}
	st.sentences = out
}

// front moves a trailing "because" or "although" clause to the front of a
// long sentence: "x because y" becomes "Because y, x".
func front(st *state, s *sentence) *sentence {
	if s.prefixed || s.words() <= st.cfg.FrontingMinWords {
		return s
	}
	for _, conj := range []string{"because", "although"} {
		sep := " " + conj + " "
		if strings.Count(s.text, sep) != 1 {
			continue
		}
		if !st.chance(st.cfg.FrontingProbability) {
			return s
		}
		parts := strings.SplitN(s.text, sep, 2)
		head, tail := trimJoin(parts[0]), trimJoin(parts[1])
		if head == "" || tail == "" {
			return s
		}
		s.text = upperFirst(conj) + " " + tail + ", " + lowerFirst(head)
		return s
	}
	return s
}
