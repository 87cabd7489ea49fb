package humanizer

import (
	"regexp"
	"strings"
)

// Substitution maps one formal phrase onto exactly one casual form.
type Substitution struct {
	Formal string
	Casual string
}

type rule struct {
	Substitution
	re *regexp.Regexp
}

// Table order matters: longer phrases that contain shorter ones come first.
var lexicon = []Substitution{
	{"it is important to note that", "worth noting that"},
	{"it should be mentioned that", "also,"},
	{"it is evident that", "clearly"},
	{"it can be observed that", "you can see that"},
	{"due to the fact that", "because"},
	{"at this point in time", "right now"},
	{"in the event that", "if"},
	{"a significant number of", "a lot of"},
	{"with regard to", "about"},
	{"in order to", "to"},
	{"in conclusion", "all in all"},
	{"in addition", "plus"},
	{"prior to", "before"},
	{"consequently", "so"},
	{"therefore", "so"},
	{"furthermore", "also"},
	{"moreover", "plus"},
	{"additionally", "also"},
	{"nevertheless", "still"},
	{"however", "but"},
	{"subsequently", "later"},
	{"approximately", "about"},
	{"numerous", "lots of"},
	{"utilize", "use"},
	{"demonstrate", "show"},
	{"commence", "start"},
	{"facilitate", "help"},
}

var contractions = []Substitution{
	{"do not", "don't"},
	{"does not", "doesn't"},
	{"did not", "didn't"},
	{"will not", "won't"},
	{"would not", "wouldn't"},
	{"should not", "shouldn't"},
	{"could not", "couldn't"},
	{"cannot", "can't"},
	{"is not", "isn't"},
	{"are not", "aren't"},
	{"was not", "wasn't"},
	{"were not", "weren't"},
	{"have not", "haven't"},
	{"has not", "hasn't"},
	{"had not", "hadn't"},
	{"it is", "it's"},
	{"that is", "that's"},
	{"there is", "there's"},
	{"you are", "you're"},
	{"we are", "we're"},
	{"they are", "they're"},
	{"I am", "I'm"},
	{"you will", "you'll"},
	{"we will", "we'll"},
	{"they will", "they'll"},
}

var openers = []string{
	"You know what's interesting?",
	"Here's the thing -",
	"I've been thinking about this, and",
	"Let me tell you something:",
	"The way I see it,",
	"Honestly,",
	"To be frank,",
	"I have to say,",
	"Looking at this from my perspective,",
}

var fillers = []string{
	"you know,",
	"I mean,",
	"like,",
	"well,",
	"actually,",
	"basically,",
	"pretty much,",
	"kind of,",
	"sort of,",
	"more or less,",
}

var clarifiers = []string{
	"or rather,",
	"well, actually,",
	"I mean,",
	"let me put it another way,",
	"to put it simply,",
}

var transitions = []string{
	"Also,",
	"Plus,",
	"What's more,",
	"On top of that,",
	"Besides that,",
	"Another thing is",
	"Not to mention,",
	"And get this -",
	"Here's another point:",
}

// bridges prefix the sentence nearest the middle of the text.
var bridges = []string{
	"Speaking of which,",
	"Here's where it gets good:",
	"Now, here's the interesting part:",
	"From my experience,",
	"I've found that",
	"In my opinion,",
	"It seems to me",
	"I've noticed",
	"Personally,",
}

var tags = []string{
	"which is pretty cool",
	"if you ask me",
	"and that matters",
	"believe it or not",
	"for what it's worth",
}

var questions = []string{
	"Does this make sense?",
	"Why does this matter?",
	"Sound familiar?",
	"See what I mean?",
	"Pretty wild, right?",
}

var clauses = []string{
	"and that's the point",
	"at least in most cases",
	"if that makes sense",
	"which says a lot",
	"more or less",
}

var splitWords = []string{
	"And",
	"But",
	"So",
	"Plus,",
	"Also,",
}

// connectives are sentence-initial linking words. A sentence that already
// starts with one gets no transition in front of it.
var connectives = map[string]struct{}{
	"and": {}, "but": {}, "so": {}, "also": {}, "plus": {}, "still": {}, "yet": {},
	"besides": {}, "however": {}, "moreover": {}, "furthermore": {}, "additionally": {},
	"consequently": {}, "therefore": {}, "nevertheless": {},
}

var (
	lexiconRules     = compileTable(lexicon)
	contractionRules = compileTable(contractions)
)

func compileTable(table []Substitution) []rule {
	out := make([]rule, 0, len(table))
	for _, s := range table {
		out = append(out, rule{Substitution: s, re: phrasePattern(s.Formal)})
	}
	return out
}

// phrasePattern matches phrase case-insensitively on word boundaries,
// tolerating any run of whitespace between its words.
func phrasePattern(phrase string) *regexp.Regexp {
	words := strings.Fields(phrase)
	for i, w := range words {
		words[i] = regexp.QuoteMeta(w)
	}
	return regexp.MustCompile(`(?i)\b` + strings.Join(words, `\s+`) + `\b`)
}

// Lexicon returns a copy of the formal-to-casual table.
func Lexicon() []Substitution {
	return append([]Substitution(nil), lexicon...)
}

// Contractions returns a copy of the contraction table.
func Contractions() []Substitution {
	return append([]Substitution(nil), contractions...)
}
