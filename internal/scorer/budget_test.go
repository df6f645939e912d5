package scorer

import "testing"

func TestSelectBudget(t *testing.T) {
	cases := []struct {
		prompt string
		bucket Bucket
		tokens int
	}{
		{"What is X?", BucketShortDefinition, 200},
		{"Was ist LoRA?", BucketShortDefinition, 200},
		{"  define   adapter  ", BucketShortDefinition, 200},
		{"What is the difference between LoRA and QLoRA?", BucketShortDefinition, 300},
		{"Explain", BucketExplanatory, 500},
		{"Please explain LoRA adapters in detail for a complete beginner with examples", BucketExplanatory, 500},
		{"Why does quantization save memory?", BucketExplanatory, 500},
		// substring match: "show" contains "how"
		{"Show me a diagram", BucketExplanatory, 500},
		{"List the methods for fine tuning", BucketExhaustive, 700},
		{"Give me a step by step guide", BucketExhaustive, 700},
		{"Tell me about quantization", BucketDefault, 350},
		{"", BucketDefault, 350},
	}
	for _, tc := range cases {
		got := SelectBudget(tc.prompt)
		if got.Bucket != tc.bucket || got.MaxTokens != tc.tokens {
			t.Fatalf("SelectBudget(%q) = %+v, want %s/%d", tc.prompt, got, tc.bucket, tc.tokens)
		}
	}
}

func TestSelectBudget_DefinitionWinsOverExplanatory(t *testing.T) {
	got := SelectBudget("What is it and how does it work?")
	if got.Bucket != BucketShortDefinition || got.MaxTokens != 300 {
		t.Fatalf("got %+v", got)
	}
}
