package mail

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StaticSource serves a fixed list of messages regardless of the requested range.
type StaticSource struct {
	Messages []Message
}

// NewStaticSource creates a StaticSource over msgs.
func NewStaticSource(msgs []Message) *StaticSource {
	return &StaticSource{Messages: msgs}
}

func (s *StaticSource) Name() string { return "static" }

// FetchMessages returns a copy of the configured messages.
func (s *StaticSource) FetchMessages(ctx context.Context, _, _ time.Time) ([]Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]Message, len(s.Messages))
	copy(out, s.Messages)
	return out, nil
}

// FileSource reads a JSON array of messages from disk on every fetch.
// Exports are already scoped by whoever produced them, so the requested
// range is not applied.
type FileSource struct {
	Path string
}

// NewFileSource creates a FileSource reading path.
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

func (s *FileSource) Name() string { return "file" }

// FetchMessages decodes the file.
func (s *FileSource) FetchMessages(ctx context.Context, _, _ time.Time) ([]Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read messages file: %w", err)
	}
	var msgs []Message
	if err := json.Unmarshal(data, &msgs); err != nil {
		return nil, fmt.Errorf("failed to decode messages file %s: %w", s.Path, err)
	}
	return msgs, nil
}
