package genrefinder

import "strings"

// chapterText is one extracted text document from the spine walk.
type chapterText struct {
	path    string
	text    string
	license bool
}

// buildTexts walks the spine in reading order and extracts every referenced
// text document exactly once. Non-linear entries are included: the reading
// order describes position, not relevance. Each resolved path contributes at
// most once, first occurrence wins. Entries that cannot be used are skipped
// silently: unknown idrefs, non-markup media types, empty or unresolvable
// hrefs, paths missing from the archive, unreadable or untokenizable files.
// The result is cached; buildTexts runs at most once per Book.
func (b *Book) buildTexts() {
	if b.textsBuilt {
		return
	}
	b.textsBuilt = true

	seen := make(map[string]bool, len(b.spine))
	for _, si := range b.spine {
		item, ok := b.items[si.IDRef]
		if !ok || !item.TextDocument {
			continue
		}
		if si.Href == "" || seen[si.Href] {
			continue
		}
		seen[si.Href] = true

		if !b.HasEntry(si.Href) {
			continue
		}
		raw, err := b.ReadEntry(si.Href)
		if err != nil {
			continue
		}
		text, err := stripMarkup(stripBOM(raw))
		if err != nil {
			continue
		}
		b.texts = append(b.texts, chapterText{
			path:    si.Href,
			text:    text,
			license: isLicenseText(text),
		})
	}
}

// Corpus returns the full extracted text of the book: every text document in
// reading order, joined with single spaces.
func (b *Book) Corpus() (string, error) {
	b.buildTexts()
	return joinTexts(b.texts, false)
}

// ContentCorpus returns the extracted text with detected license boilerplate
// pages excluded. The scoring pipeline reads this corpus so that legal
// boilerplate does not inflate keyword counts.
func (b *Book) ContentCorpus() (string, error) {
	b.buildTexts()
	return joinTexts(b.texts, true)
}

func joinTexts(texts []chapterText, skipLicense bool) (string, error) {
	var sb strings.Builder
	for _, ct := range texts {
		if skipLicense && ct.license {
			continue
		}
		if ct.text == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(ct.text)
	}
	corpus := sb.String()
	if strings.TrimSpace(corpus) == "" {
		return "", ErrNoExtractableContent
	}
	return corpus, nil
}
