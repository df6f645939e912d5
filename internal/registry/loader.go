package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"askrelay/internal/common/fsutil"
	"askrelay/pkg/types"
)

// Scan lists the regular files of a model artifact directory and classifies them.
// Subdirectories are not descended into. Results are sorted by name.
func Scan(dir string) ([]types.ArtifactFile, error) {
	base, err := fsutil.ExpandHome(dir)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(base)
	if err != nil {
		return nil, fmt.Errorf("abs path: %w", err)
	}
	entries, err := os.ReadDir(abs)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}
	var files []types.ArtifactFile
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		name := e.Name()
		files = append(files, types.ArtifactFile{
			Name: name,
			Path: filepath.Join(abs, name),
			Kind: Classify(name),
			Size: info.Size(),
		})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}

// Classify maps a file name to its artifact kind.
func Classify(name string) types.ArtifactKind {
	lower := strings.ToLower(name)
	switch {
	case lower == "adapter_config.json":
		return types.KindAdapterConfig
	case strings.HasSuffix(lower, ".gguf"):
		return types.KindGGUF
	case strings.HasPrefix(lower, "adapter_model.") || lower == "ggml-adapter-model.bin":
		return types.KindAdapterWeights
	case strings.HasPrefix(lower, "tokenizer") || lower == "special_tokens_map.json":
		return types.KindTokenizer
	default:
		return types.KindOther
	}
}

// FirstOfKind returns the first file of the given kind, if any.
func FirstOfKind(files []types.ArtifactFile, kind types.ArtifactKind) (types.ArtifactFile, bool) {
	for _, f := range files {
		if f.Kind == kind {
			return f, true
		}
	}
	return types.ArtifactFile{}, false
}

// Names returns the file names, for logging.
func Names(files []types.ArtifactFile) []string {
	out := make([]string, 0, len(files))
	for _, f := range files {
		out = append(out, f.Name)
	}
	return out
}
