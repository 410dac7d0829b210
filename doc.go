// Package genrefinder analyzes ePub files and ranks candidate genres and
// thematic tags by keyword frequency.
//
// An ePub is opened from an in-memory buffer, its spine reading order is
// reconstructed from the package document, every referenced chapter is
// reduced to plain text, and the resulting corpus is scored against curated
// keyword tables. DRM-protected files are detected and rejected with
// [ErrDRMProtected].
//
// # Analyzing a book
//
// [Analyze] runs the whole pipeline on a byte buffer:
//
//	data, _ := os.ReadFile("book.epub")
//	result, err := genrefinder.Analyze(data, keywords.Genres(), keywords.Tags())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, g := range result.Genres {
//	    fmt.Println(g.Name, g.Score)
//	}
//
// Genre and tag rankings are ordered by descending score; categories with
// equal scores keep their table order. [AnalysisResult.AllHits] merges the
// per-keyword counts of both tables into one ranked list.
//
// # Working with the archive
//
// [NewBook] (or [Open] for a file path) gives direct access to the parsed
// package: [Book.Info] returns the Dublin Core metadata, [Book.Chapters]
// the spine listing with navigation titles, [Book.Cover] the detected cover
// image, and [Book.Corpus] the extracted text. Entry lookups through
// [Book.HasEntry] and [Book.ReadEntry] are exact and case-sensitive.
//
// [Book.ContentCorpus], which [Analyze] scores, excludes Project Gutenberg
// license pages so boilerplate does not skew the keyword counts.
//
// # Error handling
//
// The package defines sentinel errors for the pipeline's failure cases:
//   - [ErrInvalidArchive] – the buffer is not a readable zip archive
//   - [ErrMissingContainer] / [ErrMalformedContainer] – container descriptor absent or unparsable
//   - [ErrMissingRootfilePath] – the container names no package document
//   - [ErrManifestNotFound] / [ErrMalformedManifest] – package document missing or unparsable
//   - [ErrNoExtractableContent] – a structurally valid book with no usable text
//   - [ErrDRMProtected] – encryption beyond font obfuscation detected
//
// Failures are terminal: no partial result is returned. Minor packaging
// irregularities (missing chapter files, duplicate spine references,
// unresolvable hrefs) are skipped silently instead.
package genrefinder
