package llm

// LlamaBuilt reports whether the in-process llama backend is compiled in.
func LlamaBuilt() bool { return llamaBuilt }
