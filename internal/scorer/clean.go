package scorer

import "strings"

// Fixed refusal strings.
const (
	RefusalUnsupported  = "I can only provide information based on the specific documentation I was trained on. I don't have enough reliable information to answer this question accurately."
	RefusalInsufficient = "I don't have enough specific information in my training data to provide a detailed answer to this question."
)

// RefusalReason labels why an answer was replaced.
type RefusalReason string

const (
	ReasonNone          RefusalReason = ""
	ReasonHallucination RefusalReason = "hallucination_signal"
	ReasonTooShort      RefusalReason = "too_short"
)

const (
	maxWordRepeats     = 2   // repeats kept after the first occurrence
	maxSentenceOverlap = 0.7 // share of the previous sentence's words
	minSentenceWords   = 4
	maxSentences       = 8
	minAnswerWords     = 5
)

var (
	skippedSentencePrefixes = []string{"what is", "was ist", "question:", "answer:"}
	brokenSentenceMarkers   = []string{"???", "...", "####"}
	hallucinationSignals    = []string{
		"according to", "based on research", "studies show",
		"it is widely known", "generally", "typically",
		"commonly used", "often used", "usually",
	}
)

// CollapseRepeats limits runs of the same word (case-insensitive) to the first occurrence
// plus maxWordRepeats repeats. Whitespace is normalized to single spaces.
func CollapseRepeats(text string) string {
	words := strings.Fields(text)
	out := make([]string, 0, len(words))
	var last string
	repeat := 0
	for _, w := range words {
		if strings.ToLower(w) == strings.ToLower(last) {
			repeat++
			if repeat <= maxWordRepeats {
				out = append(out, w)
			}
		} else {
			out = append(out, w)
			repeat = 0
		}
		last = w
	}
	return strings.Join(out, " ")
}

// CleanAnswer collapses repeated words, then keeps well-formed sentences until a sentence
// repeats the previous kept one or maxSentences are kept. When nothing survives the
// sentence filter the collapsed text is returned.
func CleanAnswer(text string) string {
	text = CollapseRepeats(text)
	var kept []string
	for i, raw := range strings.Split(text, ".") {
		sentence := strings.TrimSpace(raw)
		if sentence == "" {
			continue
		}
		if i > 0 && len(kept) > 0 && wordOverlap(kept[len(kept)-1], sentence) > maxSentenceOverlap {
			break
		}
		if keepSentence(sentence) {
			kept = append(kept, sentence)
		}
		if len(kept) >= maxSentences {
			break
		}
	}
	if len(kept) == 0 {
		return strings.TrimSpace(text)
	}
	out := strings.Join(kept, ". ")
	if !strings.HasSuffix(out, ".") {
		out += "."
	}
	return strings.TrimSpace(out)
}

// wordOverlap is the share of prev's distinct lowercase words that also occur in cur.
func wordOverlap(prev, cur string) float64 {
	prevWords := wordSet(prev)
	if len(prevWords) == 0 {
		return 0
	}
	curWords := wordSet(cur)
	shared := 0
	for w := range prevWords {
		if curWords[w] {
			shared++
		}
	}
	return float64(shared) / float64(len(prevWords))
}

func wordSet(s string) map[string]bool {
	fields := strings.Fields(strings.ToLower(s))
	set := make(map[string]bool, len(fields))
	for _, f := range fields {
		set[f] = true
	}
	return set
}

func keepSentence(s string) bool {
	if len(strings.Fields(s)) < minSentenceWords {
		return false
	}
	for _, p := range skippedSentencePrefixes {
		if strings.HasPrefix(s, p) {
			return false
		}
	}
	for _, m := range brokenSentenceMarkers {
		if strings.Contains(s, m) {
			return false
		}
	}
	return true
}

// Validate replaces answers that look invented or too thin with a fixed refusal.
func Validate(answer string) (string, RefusalReason) {
	lower := strings.ToLower(answer)
	for _, sig := range hallucinationSignals {
		if strings.Contains(lower, sig) {
			return RefusalUnsupported, ReasonHallucination
		}
	}
	if len(strings.Fields(answer)) < minAnswerWords {
		return RefusalInsufficient, ReasonTooShort
	}
	return answer, ReasonNone
}
