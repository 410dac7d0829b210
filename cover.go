package genrefinder

import (
	"bytes"
	"slices"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Cover detects and returns the cover image using multiple strategies.
// Strategies are tried in priority order:
//  1. ePub 3 manifest item with properties="cover-image"
//  2. ePub 2 <meta name="cover" content="ID"/> manifest lookup
//  3. <guide> reference type="cover", first <img> of that page
//  4. Manifest item whose ID or href contains "cover" with image/* media type
//  5. First spine page, first <img>
//
// Returns ErrNoCover if no strategy succeeds.
func (b *Book) Cover() (CoverImage, error) {
	if item := b.coverFromManifestProperties(); item != nil {
		return b.loadCoverImage(item)
	}
	if item := b.coverFromMetaCover(); item != nil {
		return b.loadCoverImage(item)
	}
	if item := b.coverFromGuide(); item != nil {
		return b.loadCoverImage(item)
	}
	if item := b.coverFromManifestHeuristic(); item != nil {
		return b.loadCoverImage(item)
	}
	if item := b.coverFromFirstSpine(); item != nil {
		return b.loadCoverImage(item)
	}
	return CoverImage{}, ErrNoCover
}

// coverFromManifestProperties searches the manifest in document order for an
// item whose properties contain "cover-image" (ePub 3).
func (b *Book) coverFromManifestProperties() *manifestItem {
	for i := range b.itemList {
		if slices.Contains(strings.Fields(b.itemList[i].Properties), "cover-image") {
			return &b.itemList[i]
		}
	}
	return nil
}

// coverFromMetaCover looks for <meta name="cover" content="ID"/> and resolves
// the ID through the manifest (ePub 2). A non-image target is treated as an
// XHTML cover page and its first <img> is extracted.
func (b *Book) coverFromMetaCover() *manifestItem {
	for _, m := range b.pkg.Metadata.Metas {
		if !strings.EqualFold(m.Name, "cover") || m.Content == "" {
			continue
		}
		item, ok := b.items[m.Content]
		if !ok {
			continue
		}
		if isImageMediaType(item.MediaType) {
			if idx := b.itemIndex(item.ID); idx >= 0 {
				return &b.itemList[idx]
			}
			continue
		}
		pagePath := b.resolve(item.Href)
		data, err := b.ReadEntry(pagePath)
		if err != nil {
			continue
		}
		if imgPath := findFirstImageInHTML(data, pagePath); imgPath != "" {
			if imgItem := b.resolveImageItem(imgPath); imgItem != nil {
				return imgItem
			}
		}
	}
	return nil
}

// coverFromGuide searches the <guide> for a reference with type="cover" and
// extracts the first <img> of the referenced page.
func (b *Book) coverFromGuide() *manifestItem {
	for _, ref := range b.pkg.Guide.References {
		if !strings.EqualFold(ref.Type, "cover") {
			continue
		}
		pagePath := b.resolve(ref.Href)
		if pagePath == "" {
			continue
		}
		data, err := b.ReadEntry(pagePath)
		if err != nil {
			continue
		}
		imgPath := findFirstImageInHTML(data, pagePath)
		if imgPath == "" {
			continue
		}
		if item := b.resolveImageItem(imgPath); item != nil {
			return item
		}
	}
	return nil
}

// coverFromManifestHeuristic searches the manifest in document order for an
// image item whose ID or href contains "cover" (case-insensitive).
func (b *Book) coverFromManifestHeuristic() *manifestItem {
	for i := range b.itemList {
		item := &b.itemList[i]
		if !isImageMediaType(item.MediaType) {
			continue
		}
		if containsFold(item.ID, "cover") || containsFold(item.Href, "cover") {
			return item
		}
	}
	return nil
}

// coverFromFirstSpine reads the first spine page and extracts its first <img>.
func (b *Book) coverFromFirstSpine() *manifestItem {
	if len(b.spine) == 0 || b.spine[0].Href == "" {
		return nil
	}
	pagePath := b.spine[0].Href
	data, err := b.ReadEntry(pagePath)
	if err != nil {
		return nil
	}
	imgPath := findFirstImageInHTML(data, pagePath)
	if imgPath == "" {
		return nil
	}
	return b.resolveImageItem(imgPath)
}

// loadCoverImage reads the image bytes and constructs a CoverImage carrying
// the full archive path.
func (b *Book) loadCoverImage(item *manifestItem) (CoverImage, error) {
	imgPath := b.resolve(item.Href)
	data, err := b.ReadEntry(imgPath)
	if err != nil {
		return CoverImage{}, err
	}
	return CoverImage{
		Path:      imgPath,
		MediaType: item.MediaType,
		Data:      data,
	}, nil
}

// itemIndex returns the position of the last manifest item with the given id
// in the document-order list, matching the id index's last-wins rule.
func (b *Book) itemIndex(id string) int {
	for i := len(b.itemList) - 1; i >= 0; i-- {
		if b.itemList[i].ID == id {
			return i
		}
	}
	return -1
}

// resolveImageItem maps an archive image path back to its manifest item.
// Exact resolved-path matches win; a case-insensitive comparison is kept as a
// fallback because cover hrefs in the wild disagree on casing.
func (b *Book) resolveImageItem(absPath string) *manifestItem {
	for i := range b.itemList {
		item := &b.itemList[i]
		if !isImageMediaType(item.MediaType) {
			continue
		}
		if b.resolve(item.Href) == absPath {
			return item
		}
	}
	for i := range b.itemList {
		item := &b.itemList[i]
		if !isImageMediaType(item.MediaType) {
			continue
		}
		if strings.EqualFold(b.resolve(item.Href), absPath) {
			return item
		}
	}
	return nil
}

// findFirstImageInHTML returns the resolved archive path of the first <img>
// src (or SVG <image> href) in the markup, or "" when none is found.
// basePath is the archive path of the page, used to resolve relative srcs.
func findFirstImageInHTML(markup []byte, basePath string) string {
	tokenizer := html.NewTokenizer(bytes.NewReader(markup))
	for {
		tt := tokenizer.Next()
		switch tt {
		case html.ErrorToken:
			return ""
		case html.StartTagToken, html.SelfClosingTagToken:
			tn, hasAttr := tokenizer.TagName()
			a := atom.Lookup(tn)
			if a == atom.Img && hasAttr {
				for {
					key, val, more := tokenizer.TagAttr()
					if string(key) == "src" && len(val) > 0 {
						return resolveHref(basePath, string(val))
					}
					if !more {
						break
					}
				}
			}
			if a == atom.Image && hasAttr {
				for {
					key, val, more := tokenizer.TagAttr()
					k := string(key)
					if (k == "href" || k == "xlink:href") && len(val) > 0 {
						return resolveHref(basePath, string(val))
					}
					if !more {
						break
					}
				}
			}
		}
	}
}

// isImageMediaType returns true if the media type starts with "image/".
func isImageMediaType(mediaType string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(mediaType)), "image/")
}

// containsFold reports whether s contains substr, case-insensitively.
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
