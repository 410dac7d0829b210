// Package keywords ships the built-in genre and tag tables and loads
// user-supplied replacements from YAML files.
//
// A table file is a list of entries, each with a name and an ordered
// keyword list:
//
//	- name: Fantasy
//	  keywords: [magic, spell, wizard]
//	- name: Mystery
//	  keywords: [detective, murder, clue]
//
// Entry order is preserved; it decides tie-breaks in the ranked output.
package keywords

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hdfiresky/ePub-Genre-Finder/scan"
)

//go:embed genres.yaml
var genresYAML []byte

//go:embed tags.yaml
var tagsYAML []byte

var (
	defaultGenres scan.Table
	defaultTags   scan.Table
)

func init() {
	defaultGenres = mustParse(genresYAML)
	defaultTags = mustParse(tagsYAML)
}

// Genres returns a copy of the built-in genre table.
func Genres() scan.Table {
	return copyTable(defaultGenres)
}

// Tags returns a copy of the built-in tag table.
func Tags() scan.Table {
	return copyTable(defaultTags)
}

// Load reads a keyword table from the YAML file at path.
func Load(path string) (scan.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("keywords: read table %s: %w", path, err)
	}
	table, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("keywords: table %s: %w", path, err)
	}
	return table, nil
}

// Parse decodes a keyword table from YAML data. Every entry must carry a
// non-empty name.
func Parse(data []byte) (scan.Table, error) {
	var table scan.Table
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("parse table: %w", err)
	}
	for i, cat := range table {
		if cat.Name == "" {
			return nil, fmt.Errorf("parse table: entry %d has no name", i+1)
		}
	}
	return table, nil
}

func mustParse(data []byte) scan.Table {
	table, err := Parse(data)
	if err != nil {
		panic("keywords: built-in table: " + err.Error())
	}
	return table
}

func copyTable(t scan.Table) scan.Table {
	out := make(scan.Table, len(t))
	for i, c := range t {
		out[i] = scan.Category{
			Name:     c.Name,
			Keywords: append([]string(nil), c.Keywords...),
		}
	}
	return out
}
