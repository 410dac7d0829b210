package genrefinder

import (
	"archive/zip"
	"bytes"
	"fmt"
	"os"
)

// Book provides read-only access to an ePub archive held in memory.
// The archive is indexed once at construction and never mutated afterwards.
//
// A Book is not safe for concurrent use by multiple goroutines.
type Book struct {
	reader  *zip.Reader
	entries map[string]*zip.File // exact archive paths

	opfPath  string
	pkg      *packageDocument
	items    map[string]manifestItem
	itemList []manifestItem
	spine    []spineItem

	info   BookInfo
	titles map[string]string // resolved chapter path -> navigation title

	texts      []chapterText
	textsBuilt bool
}

// Open reads the ePub file at name into memory and indexes it.
func Open(name string) (*Book, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("genrefinder: open %s: %w", name, err)
	}
	return NewBook(data)
}

// NewBook indexes the given buffer as an ePub archive. It locates the
// package document via META-INF/container.xml, rejects DRM-protected books,
// and decodes the manifest, spine, and metadata up front.
func NewBook(data []byte) (*Book, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArchive, err)
	}

	b := &Book{reader: zr}
	b.buildEntryIndex()

	opfPath, err := locateManifest(b)
	if err != nil {
		return nil, err
	}
	b.opfPath = opfPath

	if err := checkDRM(b); err != nil {
		return nil, err
	}

	pkg, err := parsePackageDocument(b, opfPath)
	if err != nil {
		return nil, err
	}
	b.pkg = pkg
	b.items, b.itemList = indexManifest(pkg)
	b.spine = spineEntries(pkg, b.items, opfPath)
	b.info = extractInfo(pkg)

	// Chapter titles come from the navigation document. A missing or
	// unparsable TOC is non-fatal; titles stay empty.
	b.titles = chapterTitles(b)

	return b, nil
}

// buildEntryIndex builds the archive path index. OCF entry names are exact
// identifiers, so lookups are case-sensitive; with duplicate names the first
// entry wins.
func (b *Book) buildEntryIndex() {
	b.entries = make(map[string]*zip.File, len(b.reader.File))
	for _, f := range b.reader.File {
		if _, exists := b.entries[f.Name]; !exists {
			b.entries[f.Name] = f
		}
	}
}

// HasEntry reports whether the archive contains an entry at exactly name.
func (b *Book) HasEntry(name string) bool {
	_, ok := b.entries[name]
	return ok
}

// ReadEntry reads an archive entry by its exact path.
func (b *Book) ReadEntry(name string) ([]byte, error) {
	f, ok := b.entries[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrEntryNotFound, name)
	}
	return readZipFile(f)
}

// ReadText reads a markup entry by its exact path and reduces it to its
// visible text content.
func (b *Book) ReadText(name string) (string, error) {
	data, err := b.ReadEntry(name)
	if err != nil {
		return "", err
	}
	return stripMarkup(stripBOM(data))
}

// resolve maps a manifest href to an archive path.
func (b *Book) resolve(href string) string {
	return resolveHref(b.opfPath, href)
}

// Info returns the book metadata extracted from the package document.
func (b *Book) Info() BookInfo {
	return copyInfo(b.info)
}

// Chapters returns the spine reading order with titles resolved from the
// navigation document. Spine entries naming no manifest item are omitted.
func (b *Book) Chapters() []Chapter {
	chapters := make([]Chapter, 0, len(b.spine))
	for _, si := range b.spine {
		if si.Href == "" {
			continue
		}
		chapters = append(chapters, Chapter{
			ID:     si.IDRef,
			Path:   si.Href,
			Title:  b.titles[si.Href],
			Linear: si.Linear,
		})
	}
	return chapters
}

func copyInfo(in BookInfo) BookInfo {
	out := in
	out.Authors = append([]Author(nil), in.Authors...)
	out.Language = append([]string(nil), in.Language...)
	out.Subjects = append([]string(nil), in.Subjects...)
	return out
}
