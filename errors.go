package genrefinder

import "errors"

// Sentinel errors returned by the genrefinder package. Every pipeline failure
// wraps exactly one of these, so callers can classify outcomes with errors.Is.
var (
	// ErrInvalidArchive indicates the input buffer is not a readable
	// zip-family archive (corrupt central directory, truncated data).
	ErrInvalidArchive = errors.New("genrefinder: not a valid zip archive")

	// ErrMissingContainer indicates the bootstrap descriptor
	// META-INF/container.xml is absent from the archive.
	ErrMissingContainer = errors.New("genrefinder: missing META-INF/container.xml")

	// ErrMalformedContainer indicates the container descriptor is present
	// but is not well-formed XML.
	ErrMalformedContainer = errors.New("genrefinder: malformed container.xml")

	// ErrMissingRootfilePath indicates the container descriptor declares no
	// rootfile, or the declaration carries an empty path attribute.
	ErrMissingRootfilePath = errors.New("genrefinder: container.xml names no package document")

	// ErrManifestNotFound indicates the package document path declared by the
	// container does not exist in the archive.
	ErrManifestNotFound = errors.New("genrefinder: package document not found in archive")

	// ErrMalformedManifest indicates the package document is not
	// well-formed XML.
	ErrMalformedManifest = errors.New("genrefinder: malformed package document")

	// ErrNoExtractableContent indicates a structurally valid package yielded
	// no usable text: empty spine, all referenced files missing, or nothing
	// left after markup stripping.
	ErrNoExtractableContent = errors.New("genrefinder: no extractable text content")

	// ErrEntryNotFound indicates the requested entry does not exist in the
	// archive. Entry lookups are exact-path and case-sensitive.
	ErrEntryNotFound = errors.New("genrefinder: entry not found in archive")

	// ErrDRMProtected indicates the book is protected by DRM (e.g., Adobe
	// ADEPT, Apple FairPlay, Readium LCP); no text can be extracted.
	ErrDRMProtected = errors.New("genrefinder: book is DRM protected")

	// ErrNoCover indicates no cover image could be detected using any of the
	// supported strategies.
	ErrNoCover = errors.New("genrefinder: no cover image found")
)
