package humanizer

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

type sentence struct {
	text string
	mark string
	// prefixed is set once an opener, transition or bridge has been spliced
	// in front so a second prefix never stacks on it.
	prefixed bool
	// inserted marks sentences the pipeline created from the catalog.
	inserted bool
	// clarified is set once a clarifier has been spliced into the middle.
	clarified bool
	// spliced holds the catalog phrases added to text, so a later split
	// never cuts through one.
	spliced []string
}

func (s *sentence) words() int { return len(strings.Fields(s.text)) }

// segment splits on runs of . ! ? with no awareness of abbreviations,
// decimals or quotations. Each sentence keeps the first mark of its run.
func segment(text string) []*sentence {
	var (
		out  []*sentence
		buf  strings.Builder
		mark string
	)
	flush := func() {
		s := strings.TrimSpace(buf.String())
		buf.Reset()
		m := mark
		mark = ""
		if s == "" || !hasWord(s) {
			return
		}
		if m == "" {
			m = "."
		}
		out = append(out, &sentence{text: s, mark: m})
	}
	for _, r := range text {
		if isTerminal(r) {
			if mark == "" {
				mark = string(r)
			}
			continue
		}
		if mark != "" {
			flush()
		}
		buf.WriteRune(r)
	}
	flush()
	return out
}

func isTerminal(r rune) bool { return r == '.' || r == '!' || r == '?' }

func hasWord(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

var (
	reSpaces      = regexp.MustCompile(`\s+`)
	reSpaceBefore = regexp.MustCompile(`\s+([,.!?;:])`)
	reRepeatMark  = regexp.MustCompile(`([.!?])[.!?]+`)
	reRepeatComma = regexp.MustCompile(`,{2,}`)
	reCommaMark   = regexp.MustCompile(`,+([.!?])`)
	reMarkComma   = regexp.MustCompile(`([.!?]),+`)
	reSpaceAfter  = regexp.MustCompile(`([,;:.!?])(\p{L})`)
	reCapAfter    = regexp.MustCompile(`[.!?]\s+\p{Ll}`)
)

// normalize cleans the spliced text: whitespace, duplicate punctuation,
// spacing around punctuation, sentence capitalization and a closing mark.
func normalize(s string) string {
	s = reSpaces.ReplaceAllString(s, " ")
	s = reSpaceBefore.ReplaceAllString(s, "$1")
	s = reRepeatMark.ReplaceAllString(s, "$1")
	s = reRepeatComma.ReplaceAllString(s, ",")
	s = reCommaMark.ReplaceAllString(s, "$1")
	s = reMarkComma.ReplaceAllString(s, "$1")
	s = reSpaceAfter.ReplaceAllString(s, "$1 $2")
	s = strings.TrimSpace(reSpaces.ReplaceAllString(s, " "))
	if s == "" {
		return ""
	}
	s = reCapAfter.ReplaceAllStringFunc(s, upperLast)
	s = strings.TrimRightFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == ',' || r == ';' || r == ':' || r == '-' || r == '—'
	})
	if r, _ := utf8.DecodeLastRuneInString(s); !isTerminal(r) {
		s += "."
	}
	return capitalizeLead(s)
}

func upperLast(m string) string {
	r, size := utf8.DecodeLastRuneInString(m)
	return m[:len(m)-size] + string(unicode.ToUpper(r))
}

// capitalizeLead upper-cases the first letter of s, skipping leading quotes
// and brackets. A leading digit leaves s untouched.
func capitalizeLead(s string) string {
	for i, r := range s {
		switch {
		case unicode.IsLetter(r):
			return s[:i] + string(unicode.ToUpper(r)) + s[i+utf8.RuneLen(r):]
		case unicode.IsDigit(r):
			return s
		}
	}
	return s
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || !unicode.IsLetter(r) {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// lowerFirst lower-cases the leading letter so s can follow a spliced
// prefix. The pronoun I and acronyms keep their case.
func lowerFirst(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return s
	}
	first := strings.TrimRight(fields[0], ",;:")
	if first == "I" || strings.HasPrefix(first, "I'") || isAcronym(first) {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || !unicode.IsUpper(r) {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}

func isAcronym(w string) bool {
	upper := 0
	for _, r := range w {
		if unicode.IsUpper(r) {
			upper++
		}
	}
	return upper >= 2
}

// matchCase carries the capitalization of the first letter of src onto repl.
func matchCase(src, repl string) string {
	r, _ := utf8.DecodeRuneInString(src)
	if unicode.IsUpper(r) {
		return upperFirst(repl)
	}
	return repl
}

// splitPoint picks the word boundary nearest mid that leaves at least two
// words on each side and does not fall inside a spliced phrase. It returns
// -1 when there is none.
func (s *sentence) splitPoint(words []string, mid int) int {
	blocked := make([]bool, len(words)+1)
	for _, phrase := range s.spliced {
		pw := strings.Fields(phrase)
		if len(pw) < 2 {
			continue
		}
		for j := 0; j+len(pw) <= len(words); j++ {
			if equalWords(words[j:j+len(pw)], pw) {
				for k := j + 1; k < j+len(pw); k++ {
					blocked[k] = true
				}
			}
		}
	}
	for d := 0; d < len(words); d++ {
		for _, at := range []int{mid - d, mid + d} {
			if at >= 2 && at <= len(words)-2 && !blocked[at] {
				return at
			}
		}
	}
	return -1
}

func equalWords(a, b []string) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// startsWithConnective reports whether text already opens with a linking
// word such as "But" or "Also,".
func startsWithConnective(text string) bool {
	first, _, _ := strings.Cut(strings.TrimSpace(text), " ")
	_, ok := connectives[strings.ToLower(strings.TrimRight(first, ",;:"))]
	return ok
}

func joinWords(words []string) string {
	return strings.Join(words, " ")
}

func trimJoin(s string) string {
	return strings.TrimRight(strings.TrimSpace(s), ",;:")
}
