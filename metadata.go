package genrefinder

import (
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/language"
)

// extractInfo converts the decoded package metadata into the public BookInfo.
func extractInfo(pkg *packageDocument) BookInfo {
	om := &pkg.Metadata

	// Refines lookup for the ePub 3 metadata model: "#id" -> refining metas.
	refines := buildRefinesMap(om.Metas)

	info := BookInfo{Version: strings.TrimSpace(pkg.Version)}
	if titles := orderedTitles(om.Titles, refines); len(titles) > 0 {
		info.Title = titles[0]
	}
	info.Authors = extractAuthors(om.Creators, refines)

	for _, l := range om.Languages {
		if v := strings.TrimSpace(l); v != "" {
			info.Language = append(info.Language, normalizeLanguageTag(v))
		}
	}
	for _, s := range om.Subjects {
		if v := strings.TrimSpace(s); v != "" {
			info.Subjects = append(info.Subjects, v)
		}
	}
	for _, d := range om.Descriptions {
		if v := strings.TrimSpace(d); v != "" {
			info.Description = v
			break
		}
	}
	for _, p := range om.Publishers {
		if v := strings.TrimSpace(p); v != "" {
			info.Publisher = v
			break
		}
	}
	for _, d := range om.Dates {
		if v := strings.TrimSpace(d.Value); v != "" {
			info.Date = v
			break
		}
	}
	return info
}

// normalizeLanguageTag canonicalizes a BCP 47 tag ("EN-us" becomes "en-US").
// Tags that do not parse are kept verbatim.
func normalizeLanguageTag(tag string) string {
	if t, err := language.Parse(tag); err == nil {
		return t.String()
	}
	return tag
}

// buildRefinesMap builds a map from element ID (without "#") to the list of
// <meta refines="#id" ...> elements that refine it.
func buildRefinesMap(metas []opfMeta) map[string][]opfMeta {
	m := make(map[string][]opfMeta)
	for _, meta := range metas {
		ref := meta.Refines
		if ref == "" || !strings.HasPrefix(ref, "#") {
			continue
		}
		m[ref[1:]] = append(m[ref[1:]], meta)
	}
	return m
}

// findRefine looks up a single refining property value for the given element ID.
func findRefine(refines map[string][]opfMeta, id, property string) (string, bool) {
	for _, m := range refines[id] {
		if m.Property == property {
			if v := strings.TrimSpace(m.Value); v != "" {
				return v, true
			}
		}
	}
	return "", false
}

// orderedTitles returns the non-empty dc:title values, ordered by the ePub 3
// display-seq refine when any title carries one, in declaration order otherwise.
func orderedTitles(titles []opfTitle, refines map[string][]opfMeta) []string {
	if len(titles) == 0 {
		return nil
	}

	type titleEntry struct {
		value string
		seq   int
		index int
	}

	entries := make([]titleEntry, 0, len(titles))
	hasSeq := false
	for i, t := range titles {
		v := strings.TrimSpace(t.Value)
		if v == "" {
			continue
		}
		e := titleEntry{value: v, index: i}
		if t.ID != "" {
			if seqStr, ok := findRefine(refines, t.ID, "display-seq"); ok {
				if n, err := strconv.Atoi(seqStr); err == nil {
					e.seq = n
					hasSeq = true
				}
			}
		}
		entries = append(entries, e)
	}

	if hasSeq {
		sort.SliceStable(entries, func(i, j int) bool {
			// Titles without a display-seq (0) sort after titles with one.
			si, sj := entries[i].seq, entries[j].seq
			if si == 0 && sj == 0 {
				return entries[i].index < entries[j].index
			}
			if si == 0 {
				return false
			}
			if sj == 0 {
				return true
			}
			return si < sj
		})
	}

	result := make([]string, len(entries))
	for i, e := range entries {
		result[i] = e.value
	}
	return result
}

// extractAuthors extracts author records from dc:creator elements.
// ePub 2 carries file-as and role as attributes on the element itself;
// ePub 3 expresses them as <meta refines="..."> entries.
func extractAuthors(creators []opfCreator, refines map[string][]opfMeta) []Author {
	if len(creators) == 0 {
		return nil
	}

	authors := make([]Author, 0, len(creators))
	for _, c := range creators {
		name := strings.TrimSpace(c.Value)
		if name == "" {
			continue
		}

		a := Author{
			Name:   name,
			FileAs: c.FileAs,
			Role:   c.Role,
		}
		if c.ID != "" {
			if a.FileAs == "" {
				if fa, ok := findRefine(refines, c.ID, "file-as"); ok {
					a.FileAs = fa
				}
			}
			if a.Role == "" {
				if r, ok := findRefine(refines, c.ID, "role"); ok {
					a.Role = r
				}
			}
		}
		authors = append(authors, a)
	}
	return authors
}
