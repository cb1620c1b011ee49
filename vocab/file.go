package vocab

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"wordmatch-pk-server/matcherrors"
)

// DefaultListID is the id given to a file that holds a bare array of pairs.
const DefaultListID = "default"

type fileList struct {
	ID    string           `json:"id"`
	Name  string           `json:"name"`
	Words []VocabularyPair `json:"words"`
}

// FileSource serves lists parsed once from a JSON file.
// The file is either an array of lists ({id, name, words}) or a bare array of pairs.
type FileSource struct {
	lists []fileList
}

// LoadFile reads and validates the vocabulary file at path.
func LoadFile(path string) (*FileSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read vocabulary file %s: %w", path, err)
	}
	return ParseFile(data)
}

// ParseFile parses vocabulary file contents. Every list is validated.
func ParseFile(data []byte) (*FileSource, error) {
	var probe []map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("parse vocabulary file: %w", err)
	}

	var lists []fileList
	if len(probe) > 0 && probe[0]["words"] != nil {
		if err := json.NewDecoder(bytes.NewReader(data)).Decode(&lists); err != nil {
			return nil, fmt.Errorf("parse vocabulary lists: %w", err)
		}
	} else {
		var pairs []VocabularyPair
		if err := json.Unmarshal(data, &pairs); err != nil {
			return nil, fmt.Errorf("parse vocabulary pairs: %w", err)
		}
		lists = []fileList{{ID: DefaultListID, Name: "Default", Words: pairs}}
	}

	for i := range lists {
		if lists[i].ID == "" {
			return nil, fmt.Errorf("list %d: missing id: %w", i, matcherrors.ErrInvalidVocabulary)
		}
		valid, err := Validate(lists[i].Words)
		if err != nil {
			return nil, fmt.Errorf("list %q: %w", lists[i].ID, err)
		}
		lists[i].Words = valid
	}
	return &FileSource{lists: lists}, nil
}

// Lists returns the summaries in file order.
func (s *FileSource) Lists(_ context.Context) ([]ListSummary, error) {
	out := make([]ListSummary, 0, len(s.lists))
	for _, l := range s.lists {
		out = append(out, ListSummary{ID: l.ID, Name: l.Name, Count: len(l.Words)})
	}
	return out, nil
}

// Pairs returns a copy of the pairs of listID. An empty listID selects the first list.
func (s *FileSource) Pairs(_ context.Context, listID string) ([]VocabularyPair, error) {
	for _, l := range s.lists {
		if listID == "" || l.ID == listID {
			out := make([]VocabularyPair, len(l.Words))
			copy(out, l.Words)
			return out, nil
		}
	}
	return nil, matcherrors.ErrListNotFound
}
