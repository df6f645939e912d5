package scorer

import (
	"fmt"
	"strings"
	"testing"
)

func TestCollapseRepeats(t *testing.T) {
	cases := map[string]string{
		"the model model model model works": "the model model model works",
		"Go go GO go go":                     "Go go GO",
		"a b a b":                            "a b a b",
		"  spaced \n\t words  ":              "spaced words",
		"":                                   "",
	}
	for in, want := range cases {
		if got := CollapseRepeats(in); got != want {
			t.Fatalf("CollapseRepeats(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCollapseRepeats_RunRestartsAfterOtherWord(t *testing.T) {
	in := "yes yes yes yes no yes yes yes yes"
	want := "yes yes yes no yes yes yes"
	if got := CollapseRepeats(in); got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestCleanAnswer_DropsNearDuplicateSentence(t *testing.T) {
	in := "LoRA trains small low rank matrices. LoRA trains small low rank matrices again. It is cheap to store many adapters."
	want := "LoRA trains small low rank matrices."
	if got := CleanAnswer(in); got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestCleanAnswer_KeepsDistinctSentences(t *testing.T) {
	in := "LoRA trains small low rank matrices. Adapters are cheap to store and share"
	want := "LoRA trains small low rank matrices. Adapters are cheap to store and share."
	if got := CleanAnswer(in); got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestCleanAnswer_FiltersShortAndMalformedSentences(t *testing.T) {
	in := "Yes. what is meant here is simple. LoRA adds trainable low rank matrices. Ok. #### broken header line here."
	want := "LoRA adds trainable low rank matrices."
	if got := CleanAnswer(in); got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestCleanAnswer_CapsSentences(t *testing.T) {
	var parts []string
	for i := 0; i < 12; i++ {
		parts = append(parts, fmt.Sprintf("Sentence%d has word%d and more%d", i, i, i))
	}
	got := CleanAnswer(strings.Join(parts, ". "))
	if n := strings.Count(got, "."); n != maxSentences {
		t.Fatalf("expected %d sentences, got %d: %q", maxSentences, n, got)
	}
	if strings.Contains(got, "Sentence8") {
		t.Fatalf("ninth sentence kept: %q", got)
	}
}

func TestCleanAnswer_NoSentenceSurvivesReturnsCollapsedText(t *testing.T) {
	if got := CleanAnswer("Yes it is."); got != "Yes it is." {
		t.Fatalf("got %q", got)
	}
	if got := CleanAnswer("  no no no no  "); got != "no no no" {
		t.Fatalf("got %q", got)
	}
}

func TestValidate(t *testing.T) {
	got, reason := Validate("According to the docs, LoRA trains adapters on top of frozen weights.")
	if got != RefusalUnsupported || reason != ReasonHallucination {
		t.Fatalf("hallucination: got %q/%q", got, reason)
	}
	got, reason = Validate("LoRA is USUALLY applied to attention layers only.")
	if got != RefusalUnsupported || reason != ReasonHallucination {
		t.Fatalf("case-insensitive signal: got %q/%q", got, reason)
	}
	got, reason = Validate("Too short answer.")
	if got != RefusalInsufficient || reason != ReasonTooShort {
		t.Fatalf("short: got %q/%q", got, reason)
	}
	got, reason = Validate("")
	if got != RefusalInsufficient || reason != ReasonTooShort {
		t.Fatalf("empty: got %q/%q", got, reason)
	}
	ok := "LoRA trains five small matrices."
	got, reason = Validate(ok)
	if got != ok || reason != ReasonNone {
		t.Fatalf("valid answer changed: got %q/%q", got, reason)
	}
}

func TestValidate_SignalWinsOverLength(t *testing.T) {
	got, _ := Validate("studies show")
	if got != RefusalUnsupported {
		t.Fatalf("got %q", got)
	}
}

func TestPostprocess_ShortAnswersUseInsufficientRefusal(t *testing.T) {
	formatted := FormatPrompt("What is LoRA?")
	for _, gen := range []string{"", " LoRA.", " Low rank adapters.", " It trains low rank."} {
		got, reason := Postprocess(formatted+gen, formatted)
		if got != RefusalInsufficient || reason != ReasonTooShort {
			t.Fatalf("%q: got %q/%q", gen, got, reason)
		}
	}
}
