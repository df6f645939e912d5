package scorer

import "errors"

// noArtifactError signals that no usable model artifact directory was found.
type noArtifactError struct{ msg string }

func (e noArtifactError) Error() string { return e.msg }

// IsNoArtifact reports whether err indicates a missing model artifact.
func IsNoArtifact(err error) bool {
	var ne noArtifactError
	return errors.As(err, &ne)
}

// errNoPipeline is returned when a backend builds without error but yields no generator.
var errNoPipeline = errors.New("failed to create text-generation pipeline: check model and tokenizer setup")
