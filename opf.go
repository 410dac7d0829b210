package genrefinder

import (
	"encoding/xml"
	"fmt"
	"strings"
)

// packageDocument mirrors the OPF <package> element. Only the parts the
// library consumes are declared; unknown elements are ignored by the decoder.
type packageDocument struct {
	XMLName  xml.Name    `xml:"package"`
	Version  string      `xml:"version,attr"`
	Metadata opfMetadata `xml:"metadata"`
	Manifest opfManifest `xml:"manifest"`
	Spine    opfSpine    `xml:"spine"`
	Guide    opfGuide    `xml:"guide"`
}

type opfMetadata struct {
	Titles       []opfTitle      `xml:"title"`
	Creators     []opfCreator    `xml:"creator"`
	Languages    []string        `xml:"language"`
	Subjects     []string        `xml:"subject"`
	Descriptions []string        `xml:"description"`
	Publishers   []string        `xml:"publisher"`
	Dates        []opfDate       `xml:"date"`
	Identifiers  []opfIdentifier `xml:"identifier"`
	Metas        []opfMeta       `xml:"meta"`
}

type opfTitle struct {
	ID    string `xml:"id,attr"`
	Value string `xml:",chardata"`
}

type opfCreator struct {
	ID     string `xml:"id,attr"`
	FileAs string `xml:"file-as,attr"`
	Role   string `xml:"role,attr"`
	Value  string `xml:",chardata"`
}

type opfDate struct {
	Event string `xml:"event,attr"`
	Value string `xml:",chardata"`
}

type opfIdentifier struct {
	ID     string `xml:"id,attr"`
	Scheme string `xml:"scheme,attr"`
	Value  string `xml:",chardata"`
}

// opfMeta covers both the ePub 2 name/content form and the ePub 3
// property/refines form of the <meta> element.
type opfMeta struct {
	Name     string `xml:"name,attr"`
	Content  string `xml:"content,attr"`
	Property string `xml:"property,attr"`
	Refines  string `xml:"refines,attr"`
	Value    string `xml:",chardata"`
}

type opfManifest struct {
	Items []opfItem `xml:"item"`
}

type opfItem struct {
	ID         string `xml:"id,attr"`
	Href       string `xml:"href,attr"`
	MediaType  string `xml:"media-type,attr"`
	Properties string `xml:"properties,attr"`
}

type opfSpine struct {
	Toc      string       `xml:"toc,attr"`
	ItemRefs []opfItemRef `xml:"itemref"`
}

type opfItemRef struct {
	IDRef  string `xml:"idref,attr"`
	Linear string `xml:"linear,attr"`
}

type opfGuide struct {
	References []guideReference `xml:"reference"`
}

type guideReference struct {
	Type  string `xml:"type,attr"`
	Title string `xml:"title,attr"`
	Href  string `xml:"href,attr"`
}

// parsePackageDocument reads and decodes the package document at opfPath.
// The path comes straight from container.xml and is looked up verbatim.
func parsePackageDocument(book *Book, opfPath string) (*packageDocument, error) {
	if !book.HasEntry(opfPath) {
		return nil, fmt.Errorf("%w: %s", ErrManifestNotFound, opfPath)
	}

	data, err := book.ReadEntry(opfPath)
	if err != nil {
		return nil, err
	}
	data = preprocessHTMLEntities(stripBOM(data))

	var pkg packageDocument
	if err := xml.Unmarshal(data, &pkg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedManifest, err)
	}
	return &pkg, nil
}

// isTextDocument reports whether a manifest media type denotes markup the
// extractor can reduce to text. The substring check accepts both
// application/xhtml+xml and text/html, including parameterised variants.
func isTextDocument(mediaType string) bool {
	return strings.Contains(strings.ToLower(mediaType), "html")
}

// indexManifest builds the id-to-item index plus a document-order list from
// the decoded manifest. Items without an id cannot be referenced from the
// spine and are dropped; when two items share an id the later one wins.
func indexManifest(pkg *packageDocument) (map[string]manifestItem, []manifestItem) {
	items := make(map[string]manifestItem, len(pkg.Manifest.Items))
	ordered := make([]manifestItem, 0, len(pkg.Manifest.Items))
	for _, raw := range pkg.Manifest.Items {
		if raw.ID == "" {
			continue
		}
		item := manifestItem{
			ID:           raw.ID,
			Href:         raw.Href,
			MediaType:    raw.MediaType,
			Properties:   raw.Properties,
			TextDocument: isTextDocument(raw.MediaType),
		}
		items[item.ID] = item
		ordered = append(ordered, item)
	}
	return items, ordered
}

// spineEntries resolves the spine reading order against the manifest index.
// Itemrefs naming an unknown id are kept with an empty href so downstream
// stages can skip them without losing positional information; duplicate
// idrefs stay in place. An itemref is linear unless it says linear="no".
func spineEntries(pkg *packageDocument, items map[string]manifestItem, opfPath string) []spineItem {
	entries := make([]spineItem, 0, len(pkg.Spine.ItemRefs))
	for _, ref := range pkg.Spine.ItemRefs {
		entry := spineItem{
			IDRef:  ref.IDRef,
			Linear: !strings.EqualFold(strings.TrimSpace(ref.Linear), "no"),
		}
		if item, ok := items[ref.IDRef]; ok {
			entry.Href = resolveHref(opfPath, item.Href)
		}
		entries = append(entries, entry)
	}
	return entries
}
