package question

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
)

// FileSource reads the bank document from a local JSON file. The document is
// a plain array of question records.
type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (f *FileSource) Load(ctx context.Context) ([]Question, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("read bank file: %w", err)
	}
	var bank []Question
	if err := json.Unmarshal(data, &bank); err != nil {
		return nil, fmt.Errorf("decode bank file %s: %w", f.path, err)
	}
	return bank, nil
}
