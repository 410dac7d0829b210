package genrefinder

import (
	"bytes"
	"encoding/xml"
	"strings"

	"golang.org/x/net/html"
)

// chapterTitles builds a map from resolved chapter path to navigation title.
// An ePub 3 nav document takes precedence; books without one fall back to the
// NCX named by the spine toc attribute. Failures are non-fatal and leave
// chapters untitled.
func chapterTitles(b *Book) map[string]string {
	if titles := navDocumentTitles(b); len(titles) > 0 {
		return titles
	}
	return ncxTitles(b)
}

// navDocumentTitles reads the manifest item carrying the "nav" property and
// collects anchor targets from its toc nav element.
func navDocumentTitles(b *Book) map[string]string {
	var navItem *manifestItem
	for i := range b.itemList {
		for _, prop := range strings.Fields(b.itemList[i].Properties) {
			if prop == "nav" {
				navItem = &b.itemList[i]
				break
			}
		}
		if navItem != nil {
			break
		}
	}
	if navItem == nil {
		return nil
	}

	navPath := b.resolve(navItem.Href)
	if navPath == "" || !b.HasEntry(navPath) {
		return nil
	}
	data, err := b.ReadEntry(navPath)
	if err != nil {
		return nil
	}

	doc, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return nil
	}
	nav := findTocNav(doc)
	if nav == nil {
		return nil
	}

	titles := make(map[string]string)
	collectAnchorTitles(nav, navPath, titles)
	return titles
}

// findTocNav performs a depth-first search for the first <nav> element whose
// epub:type attribute contains the "toc" token.
func findTocNav(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "nav" && hasEpubType(n, "toc") {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findTocNav(c); found != nil {
			return found
		}
	}
	return nil
}

// hasEpubType checks whether n has an epub:type attribute containing the
// given token (space-separated token matching).
func hasEpubType(n *html.Node, token string) bool {
	for _, a := range n.Attr {
		if a.Key != "epub:type" {
			continue
		}
		for _, t := range strings.Fields(a.Val) {
			if t == token {
				return true
			}
		}
	}
	return false
}

// collectAnchorTitles walks the nav subtree in document order and records
// each anchor's target path with its text. The first title for a path wins.
func collectAnchorTitles(n *html.Node, basePath string, titles map[string]string) {
	if n.Type == html.ElementNode && n.Data == "a" {
		href := ""
		for _, a := range n.Attr {
			if a.Key == "href" {
				href = a.Val
				break
			}
		}
		if href != "" {
			if resolved := resolveHref(basePath, href); resolved != "" {
				if _, exists := titles[resolved]; !exists {
					if title := strings.TrimSpace(nodeText(n)); title != "" {
						titles[resolved] = title
					}
				}
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectAnchorTitles(c, basePath, titles)
	}
}

// nodeText recursively collects all text content within a node.
func nodeText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(nodeText(c))
	}
	return sb.String()
}

// --- NCX decoding (ePub 2) ---

type ncxDocument struct {
	XMLName xml.Name  `xml:"ncx"`
	NavMap  ncxNavMap `xml:"navMap"`
}

type ncxNavMap struct {
	NavPoints []ncxNavPoint `xml:"navPoint"`
}

type ncxNavPoint struct {
	Label    ncxNavLabel   `xml:"navLabel"`
	Content  ncxContent    `xml:"content"`
	Children []ncxNavPoint `xml:"navPoint"`
}

type ncxNavLabel struct {
	Text string `xml:"text"`
}

type ncxContent struct {
	Src string `xml:"src,attr"`
}

// ncxTitles reads the NCX file named by the spine toc attribute and collects
// navPoint targets recursively.
func ncxTitles(b *Book) map[string]string {
	tocID := b.pkg.Spine.Toc
	if tocID == "" {
		return nil
	}
	item, ok := b.items[tocID]
	if !ok {
		return nil
	}

	ncxPath := b.resolve(item.Href)
	if ncxPath == "" || !b.HasEntry(ncxPath) {
		return nil
	}
	data, err := b.ReadEntry(ncxPath)
	if err != nil {
		return nil
	}
	data = preprocessHTMLEntities(stripBOM(data))

	var doc ncxDocument
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil
	}

	titles := make(map[string]string)
	collectNavPointTitles(doc.NavMap.NavPoints, ncxPath, titles)
	return titles
}

func collectNavPointTitles(points []ncxNavPoint, ncxPath string, titles map[string]string) {
	for _, np := range points {
		if src := strings.TrimSpace(np.Content.Src); src != "" {
			if resolved := resolveHref(ncxPath, src); resolved != "" {
				if _, exists := titles[resolved]; !exists {
					if title := strings.TrimSpace(np.Label.Text); title != "" {
						titles[resolved] = title
					}
				}
			}
		}
		collectNavPointTitles(np.Children, ncxPath, titles)
	}
}
