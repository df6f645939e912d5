package scorer

import "strings"

// Bucket names a token budget class.
type Bucket string

const (
	BucketShortDefinition Bucket = "short-definition"
	BucketExplanatory     Bucket = "explanatory"
	BucketExhaustive      Bucket = "exhaustive"
	BucketDefault         Bucket = "default"
)

// Budget is the generation length chosen for a prompt.
type Budget struct {
	Bucket    Bucket
	MaxTokens int
}

// Keyword lists are matched as substrings of the lowercased prompt, in this order.
var (
	definitionKeywords  = []string{"what is", "was ist", "define", "definiere"}
	explanatoryKeywords = []string{"explain", "describe", "how", "why", "compare", "analyze", "erkläre", "beschreibe", "wie", "warum", "vergleiche"}
	exhaustiveKeywords  = []string{"methods", "methodn", "different", "verschiedene", "all", "alle", "process", "prozess", "step by step", "schritt für schritt"}
)

const (
	shortDefinitionWords  = 4
	shortDefinitionTokens = 200
	definitionTokens      = 300
	explanatoryTokens     = 500
	exhaustiveTokens      = 700
	defaultTokens         = 350
)

// SelectBudget picks the max generation length for prompt.
func SelectBudget(prompt string) Budget {
	lower := strings.ToLower(strings.TrimSpace(prompt))
	switch {
	case containsAny(lower, definitionKeywords):
		if len(strings.Fields(prompt)) <= shortDefinitionWords {
			return Budget{Bucket: BucketShortDefinition, MaxTokens: shortDefinitionTokens}
		}
		return Budget{Bucket: BucketShortDefinition, MaxTokens: definitionTokens}
	case containsAny(lower, explanatoryKeywords):
		return Budget{Bucket: BucketExplanatory, MaxTokens: explanatoryTokens}
	case containsAny(lower, exhaustiveKeywords):
		return Budget{Bucket: BucketExhaustive, MaxTokens: exhaustiveTokens}
	default:
		return Budget{Bucket: BucketDefault, MaxTokens: defaultTokens}
	}
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
