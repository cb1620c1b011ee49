package vocab

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"wordmatch-pk-server/matcherrors"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		pairs   []VocabularyPair
		wantErr error
	}{
		{"empty", nil, matcherrors.ErrInsufficientVocabulary},
		{"missing id", []VocabularyPair{{Word: "cat", Meaning: "猫"}}, matcherrors.ErrInvalidVocabulary},
		{"blank word", []VocabularyPair{{ID: "1", Word: "  ", Meaning: "猫"}}, matcherrors.ErrInvalidVocabulary},
		{"blank meaning", []VocabularyPair{{ID: "1", Word: "cat"}}, matcherrors.ErrInvalidVocabulary},
		{"duplicate", []VocabularyPair{{ID: "1", Word: "cat", Meaning: "猫"}, {ID: "1", Word: "dog", Meaning: "狗"}}, matcherrors.ErrDuplicatePair},
		{"ok", []VocabularyPair{{ID: "1", Word: "cat", Meaning: "猫"}, {ID: "2", Word: "dog", Meaning: "狗"}}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Validate(tt.pairs)
			if tt.wantErr == nil && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidateTrims(t *testing.T) {
	out, err := Validate([]VocabularyPair{{ID: " a ", Word: " apple ", Meaning: " 苹果"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out[0].ID != "a" || out[0].Word != "apple" || out[0].Meaning != "苹果" {
		t.Errorf("expected trimmed pair, got %+v", out[0])
	}
}

func TestParseFileBareArray(t *testing.T) {
	src, err := ParseFile([]byte(`[{"id":"1","word":"cat","meaning":"猫"},{"id":"2","word":"dog","meaning":"狗"}]`))
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	lists, _ := src.Lists(context.Background())
	if len(lists) != 1 || lists[0].ID != DefaultListID || lists[0].Count != 2 {
		t.Fatalf("unexpected lists: %+v", lists)
	}
	pairs, err := src.Pairs(context.Background(), "")
	if err != nil {
		t.Fatalf("Pairs: %v", err)
	}
	if len(pairs) != 2 {
		t.Errorf("expected 2 pairs, got %d", len(pairs))
	}
}

func TestParseFileLists(t *testing.T) {
	data := `[
		{"id":"animals","name":"Animals","words":[{"id":"1","word":"cat","meaning":"猫"}]},
		{"id":"fruit","name":"Fruit","words":[{"id":"1","word":"apple","meaning":"苹果"},{"id":"2","word":"pear","meaning":"梨"}]}
	]`
	src, err := ParseFile([]byte(data))
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	pairs, err := src.Pairs(context.Background(), "fruit")
	if err != nil {
		t.Fatalf("Pairs: %v", err)
	}
	if len(pairs) != 2 || pairs[0].Word != "apple" {
		t.Errorf("unexpected fruit pairs: %+v", pairs)
	}
	if _, err := src.Pairs(context.Background(), "missing"); !errors.Is(err, matcherrors.ErrListNotFound) {
		t.Errorf("expected ErrListNotFound, got %v", err)
	}
}

func TestParseFileRejectsInvalidList(t *testing.T) {
	_, err := ParseFile([]byte(`[{"id":"x","name":"X","words":[]}]`))
	if !errors.Is(err, matcherrors.ErrInsufficientVocabulary) {
		t.Errorf("expected ErrInsufficientVocabulary, got %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vocabulary.json")
	if err := os.WriteFile(path, []byte(`[{"id":"1","word":"sun","meaning":"太阳"}]`), 0o644); err != nil {
		t.Fatal(err)
	}
	src, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	pairs, _ := src.Pairs(context.Background(), DefaultListID)
	if len(pairs) != 1 || pairs[0].Meaning != "太阳" {
		t.Errorf("unexpected pairs: %+v", pairs)
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestNewPostgresSourceEmptyURL(t *testing.T) {
	src, err := NewPostgresSource(context.Background(), "")
	if err != nil || src != nil {
		t.Errorf("expected (nil, nil) for empty URL, got (%v, %v)", src, err)
	}
}
