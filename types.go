package genrefinder

import "github.com/hdfiresky/ePub-Genre-Finder/scan"

// AnalysisResult is the complete outcome of one analysis run: both category
// rankings, the combined keyword hit list, and the book's descriptive info.
// It is a single immutable snapshot; a run either produces a full result or
// fails with one terminal error.
type AnalysisResult struct {
	// Genres holds every genre category, ordered by descending score.
	// Zero-score categories are present; hiding them is a display concern.
	Genres []scan.CategoryResult `json:"genres"`

	// Tags holds every tag category, ordered by descending score.
	Tags []scan.CategoryResult `json:"tags"`

	// AllHits is the per-keyword total across all genre and tag categories,
	// ordered by descending count. Keywords sharing the same text in
	// different categories are merged into one entry.
	AllHits []scan.AggregateHit `json:"all_hits"`

	// Info is the descriptive metadata extracted from the package document.
	Info BookInfo `json:"info"`
}

// BookInfo holds the Dublin Core metadata extracted from the package document.
type BookInfo struct {
	// Title is the primary title (ePub 3 display-seq respected).
	Title string `json:"title,omitempty"`

	// Authors contains all dc:creator entries with their roles and
	// file-as values.
	Authors []Author `json:"authors,omitempty"`

	// Language contains the declared dc:language values, normalized to
	// canonical BCP 47 form where they parse (e.g., "en-US").
	Language []string `json:"language,omitempty"`

	// Subjects contains all dc:subject values.
	Subjects []string `json:"subjects,omitempty"`

	// Description is the first non-empty dc:description value.
	Description string `json:"description,omitempty"`

	// Publisher is the first non-empty dc:publisher value.
	Publisher string `json:"publisher,omitempty"`

	// Date is the first non-empty dc:date value, as declared.
	Date string `json:"date,omitempty"`

	// Version is the package document version attribute ("2.0", "3.0").
	Version string `json:"version,omitempty"`
}

// Author represents a dc:creator entry with optional file-as and role attributes.
type Author struct {
	// Name is the display name (dc:creator text content).
	Name string `json:"name"`

	// FileAs is the sortable form (e.g., "Dickens, Charles"), from the
	// opf:file-as attribute or an ePub 3 refines meta.
	FileAs string `json:"file_as,omitempty"`

	// Role is the MARC relator code (e.g., "aut", "edt", "trl").
	Role string `json:"role,omitempty"`
}

// Chapter describes one reading-order entry for inspection surfaces.
// Chapters are derived from the spine; Path is the resolved archive path.
type Chapter struct {
	// ID is the manifest item id referenced by the spine entry.
	ID string `json:"id"`

	// Path is the archive-root path of the content file.
	Path string `json:"path"`

	// Title is the chapter title derived from the book's navigation
	// document, empty when the chapter is not listed there.
	Title string `json:"title,omitempty"`

	// Linear reports whether the entry is part of the linear reading order.
	Linear bool `json:"linear"`
}

// CoverImage holds a detected cover image.
type CoverImage struct {
	// Path is the archive-root path of the image file.
	Path string `json:"path"`

	// MediaType is the declared MIME type (e.g., "image/jpeg").
	MediaType string `json:"media_type"`

	// Data is the raw image bytes.
	Data []byte `json:"-"`
}

// manifestItem represents one <item> declaration in the package manifest.
type manifestItem struct {
	// ID is the declared item id. Duplicate ids overwrite earlier ones.
	ID string

	// Href is the file reference, relative to the package document.
	Href string

	// MediaType is the declared media type, as written.
	MediaType string

	// Properties holds space-separated property values (ePub 3,
	// e.g. "nav", "cover-image").
	Properties string

	// TextDocument reports whether the declared media type marks the item
	// as a markup chapter (substring "html", case-insensitive).
	TextDocument bool
}

// spineItem represents one <itemref> of the spine, joined with its
// manifest item when the idref resolves.
type spineItem struct {
	// IDRef is the idref attribute value, kept even when unresolved.
	IDRef string

	// Href is the resolved archive path of the referenced item, empty when
	// the idref has no manifest item or the reference cannot be resolved.
	Href string

	// Linear is false only for itemref linear="no" entries.
	Linear bool
}
