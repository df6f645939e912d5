//go:build !llama

package llm

// llamaBuilt indicates this binary was compiled with real llama support.
var llamaBuilt = false

// NewLlama fails fast: the in-process runtime needs the 'llama' build tag (cgo + libllama).
func NewLlama(opts Options) (Generator, error) {
	return nil, ErrDependencyUnavailable("llama support not built (missing 'llama' build tag)")
}
