package scorer

import "testing"

func TestFormatPrompt(t *testing.T) {
	got := FormatPrompt("  What is LoRA? \n")
	want := "<s>Question: What is LoRA?\nAnswer:"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestExtractAnswer(t *testing.T) {
	formatted := FormatPrompt("What is LoRA?")
	cases := []struct {
		name, full, want string
	}{
		{"plain", formatted + " LoRA adds adapters.", "LoRA adds adapters."},
		{"stops at next question", formatted + " LoRA adds adapters.\nQuestion: What is QLoRA?\nAnswer: more", "LoRA adds adapters."},
		{"removes leftover markers", formatted + " First part Answer: second part", "First part  second part"},
		{"lowercase markers", formatted + " answer: the reply question: x", "the reply  x"},
		{"no marker", "<s>raw prompt\n the reply", "<s>raw prompt\n the reply"},
	}
	for _, tc := range cases {
		if got := ExtractAnswer(tc.full, formatted); got != tc.want {
			t.Fatalf("%s: got %q want %q", tc.name, got, tc.want)
		}
	}
}

func TestExtractAnswer_NoMarkerRemovesFormattedPrompt(t *testing.T) {
	formatted := "<s>Q\n"
	if got := ExtractAnswer(formatted+"the reply", formatted); got != "the reply" {
		t.Fatalf("got %q", got)
	}
}

func TestPostprocess(t *testing.T) {
	formatted := FormatPrompt("What is LoRA?")
	full := formatted + " LoRA is a method that trains low rank adapter matrices. Question: What else?"
	got, reason := Postprocess(full, formatted)
	if got != "LoRA is a method that trains low rank adapter matrices." || reason != ReasonNone {
		t.Fatalf("got %q/%q", got, reason)
	}
	got, reason = Postprocess(formatted+" Yes.", formatted)
	if got != RefusalInsufficient || reason != ReasonTooShort {
		t.Fatalf("got %q/%q", got, reason)
	}
}
