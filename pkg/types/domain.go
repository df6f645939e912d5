package types

// ArtifactKind classifies a file found in a fine-tuned model artifact directory.
type ArtifactKind string

const (
	KindAdapterConfig  ArtifactKind = "adapter_config"
	KindAdapterWeights ArtifactKind = "adapter_weights"
	KindTokenizer      ArtifactKind = "tokenizer"
	KindGGUF           ArtifactKind = "gguf"
	KindOther          ArtifactKind = "other"
)

// ArtifactFile is one file inside a model artifact directory.
type ArtifactFile struct {
	// File name relative to the artifact directory.
	// example: adapter_config.json
	Name string `json:"name" example:"adapter_config.json"`
	// Absolute path to the file on disk.
	// example: /var/azureml-app/models/mistral-finetune-job-20250625100239/adapter_config.json
	Path string `json:"path" example:"/var/azureml-app/models/mistral-finetune-job-20250625100239/adapter_config.json"`
	// Classification of the file.
	// example: adapter_config
	Kind ArtifactKind `json:"kind" example:"adapter_config"`
	// Size in bytes.
	// example: 712
	Size int64 `json:"size" example:"712"`
}
