// Package dictfile parses the line-oriented bilingual dictionary file into
// an in-memory lookup map. Pure parsing: reader in, map out, no database or
// network dependencies.
//
// File format, one entry per line:
//
//	english_phrase # german_phrase
//
// Lines starting with // are comments. Malformed lines (no separator, empty
// halves) are skipped; parsing always continues. A UTF-8 BOM on the first
// line is tolerated.
package dictfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/thoga72-SAP/birkenbihllab/internal/domain"
)

// Dictionary is a read-only english → german candidate mapping.
type Dictionary struct {
	entries map[string][]string
}

// Load reads and parses the dictionary file at path.
func Load(path string) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dictionary file: %w", err)
	}
	defer f.Close()

	d, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse dictionary file %s: %w", path, err)
	}
	return d, nil
}

// Parse reads dictionary entries from r. Duplicate german phrases for the
// same english key are dropped case-insensitively, keeping the first
// spelling seen.
func Parse(r io.Reader) (*Dictionary, error) {
	entries := make(map[string][]string)
	seen := make(map[string]map[string]struct{})

	scanner := bufio.NewScanner(r)
	first := true
	for scanner.Scan() {
		line := scanner.Text()
		if first {
			line = strings.TrimPrefix(line, "\ufeff")
			first = false
		}

		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}

		eng, ger, ok := strings.Cut(line, "#")
		if !ok {
			continue
		}
		key := domain.NormalizeKey(eng)
		val := strings.TrimSpace(ger)
		if key == "" || val == "" {
			continue
		}

		dedup := seen[key]
		if dedup == nil {
			dedup = make(map[string]struct{})
			seen[key] = dedup
		}
		valKey := domain.NormalizeKey(val)
		if _, dup := dedup[valKey]; dup {
			continue
		}
		dedup[valKey] = struct{}{}
		entries[key] = append(entries[key], val)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}

	return &Dictionary{entries: entries}, nil
}

// Empty returns a dictionary with no entries, for deployments without a
// dictionary file.
func Empty() *Dictionary {
	return &Dictionary{entries: map[string][]string{}}
}

// Lookup returns the candidates for word (case-insensitive), or nil.
// The returned slice is a copy; callers may reorder it.
func (d *Dictionary) Lookup(word string) []string {
	vals := d.entries[domain.NormalizeKey(word)]
	if len(vals) == 0 {
		return nil
	}
	out := make([]string, len(vals))
	copy(out, vals)
	return out
}

// Len returns the number of english keys.
func (d *Dictionary) Len() int {
	return len(d.entries)
}
