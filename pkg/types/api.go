package types

// ScoreRequest is the payload accepted by POST /score.
// Fields other than prompt are passed through to every result; a list whose length matches
// the number of prompts is aligned with the prompts by position.
type ScoreRequest struct {
	// Prompt text, or a list of prompts.
	// example: What is LoRA?
	Prompt any `json:"prompt" swaggertype:"string" example:"What is LoRA?"`
}

// ScoreResult is one element of the POST /score response list.
// Passthrough fields from the request are merged into the same JSON object.
type ScoreResult struct {
	// The prompt as received.
	// example: What is LoRA?
	Prompt any `json:"prompt,omitempty" swaggertype:"string" example:"What is LoRA?"`
	// Cleaned answer (or a fixed refusal string).
	// example: LoRA is a parameter efficient fine tuning method that trains low rank matrices.
	Answer string `json:"answer,omitempty" example:"LoRA is a parameter efficient fine tuning method that trains low rank matrices."`
	// Raw generated text including the formatted prompt.
	FullResponse string `json:"full_response,omitempty"`
	// Error message when generation for this prompt failed.
	Error string `json:"error,omitempty"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: invalid JSON body
	Error string `json:"error" example:"invalid JSON body"`
	// HTTP status code.
	// example: 400
	Code int `json:"code" example:"400"`
}
