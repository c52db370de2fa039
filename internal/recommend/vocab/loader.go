// Castmatch - Explainable 3D Character Selection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/castmatch

package vocab

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

type fileEntry struct {
	Word     string    `json:"word" yaml:"word"`
	Vector   []float64 `json:"vector" yaml:"vector"`
	Synonyms []string  `json:"synonyms,omitempty" yaml:"synonyms"`
}

type fileDocument struct {
	Words []fileEntry `json:"words" yaml:"words"`
}

// LoadFile reads a vocabulary from a .yaml, .yml or .json file:
//
//	words:
//	  - word: walk
//	    vector: [0.9, 0.4, 0.1, 0, 0.3, 0.1]
//	    synonyms: [walking, stroll]
func LoadFile(path string) (*Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read vocabulary %s: %w", path, err)
	}

	var doc fileDocument
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &doc)
	case ".json":
		err = json.Unmarshal(data, &doc)
	default:
		return nil, fmt.Errorf("%w: unsupported format %q", ErrInvalidVocabulary, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrInvalidVocabulary, path, err)
	}

	entries := make([]Entry, 0, len(doc.Words))
	for _, fe := range doc.Words {
		if len(fe.Vector) != Dims {
			return nil, fmt.Errorf("%w: %q has %d components, want %d", ErrInvalidVocabulary, fe.Word, len(fe.Vector), Dims)
		}
		var vec Vector
		copy(vec[:], fe.Vector)
		entries = append(entries, Entry{Word: fe.Word, Vector: vec, Synonyms: fe.Synonyms})
	}
	return New(entries)
}
