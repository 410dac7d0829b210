package genrefinder

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// containerPath is the fixed location of the OCF container descriptor.
// OCF mandates this exact path and casing, so the lookup is case-sensitive.
const containerPath = "META-INF/container.xml"

// locateManifest reads META-INF/container.xml and returns the container-root
// relative path of the package document. The first <rootfile> element in
// document order wins, regardless of its declared media type; readers that
// honour rootfile order agree with the majority of ePub tooling.
func locateManifest(book *Book) (string, error) {
	if !book.HasEntry(containerPath) {
		return "", ErrMissingContainer
	}

	data, err := book.ReadEntry(containerPath)
	if err != nil {
		return "", err
	}
	data = stripBOM(data)

	// Token-walk the whole document rather than unmarshalling into a struct:
	// the walk finds <rootfile> under any namespace prefix and still reports
	// malformed XML anywhere in the file, not just before the first match.
	decoder := xml.NewDecoder(bytes.NewReader(data))
	rootfilePath := ""
	seenRootfile := false
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrMalformedContainer, err)
		}
		start, ok := token.(xml.StartElement)
		if !ok || seenRootfile {
			continue
		}
		if start.Name.Local != "rootfile" {
			continue
		}
		seenRootfile = true
		for _, attr := range start.Attr {
			if attr.Name.Local == "full-path" {
				rootfilePath = attr.Value
				break
			}
		}
	}

	if strings.TrimSpace(rootfilePath) == "" {
		return "", ErrMissingRootfilePath
	}
	return rootfilePath, nil
}
