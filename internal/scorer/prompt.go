package scorer

import "strings"

const (
	answerMarker   = "Answer:"
	questionMarker = "Question:"
)

// leftoverMarkers are stripped from the extracted answer.
var leftoverMarkers = []string{"Answer:", "answer:", "Question:", "question:"}

// FormatPrompt renders a prompt in the question/answer layout the adapter was trained on.
func FormatPrompt(prompt string) string {
	return "<s>Question: " + strings.TrimSpace(prompt) + "\n" + answerMarker
}

// ExtractAnswer isolates the answer from a full generation: the text after the first
// "Answer:" (or the text without the formatted prompt) up to the next "Question:",
// with leftover markers removed.
func ExtractAnswer(full, formatted string) string {
	var answer string
	if _, after, ok := strings.Cut(full, answerMarker); ok {
		answer = strings.TrimSpace(after)
	} else {
		answer = strings.TrimSpace(strings.ReplaceAll(full, formatted, ""))
	}
	if before, _, ok := strings.Cut(answer, questionMarker); ok {
		answer = strings.TrimSpace(before)
	}
	for _, m := range leftoverMarkers {
		answer = strings.TrimSpace(strings.ReplaceAll(answer, m, ""))
	}
	return answer
}

// Postprocess runs extraction, cleanup and validation on a full generation.
// The returned reason is empty unless the answer was replaced by a refusal.
func Postprocess(full, formatted string) (string, RefusalReason) {
	return Validate(CleanAnswer(ExtractAnswer(full, formatted)))
}
