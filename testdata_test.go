package genrefinder

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"
)

// buildArchive creates an in-memory zip archive from the files map
// (path -> content) and returns its bytes. It calls t.Fatal on any error.
func buildArchive(t *testing.T, files map[string]string) []byte {
	t.Helper()
	buf := new(bytes.Buffer)
	zw := zip.NewWriter(buf)
	for name, content := range files {
		fw, err := zw.Create(name)
		if err != nil {
			t.Fatalf("buildArchive: create %s: %v", name, err)
		}
		if _, err := io.WriteString(fw, content); err != nil {
			t.Fatalf("buildArchive: write %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("buildArchive: close writer: %v", err)
	}
	return buf.Bytes()
}

// buildBook builds an archive and opens it, failing the test on any error.
func buildBook(t *testing.T, files map[string]string) *Book {
	t.Helper()
	book, err := NewBook(buildArchive(t, files))
	if err != nil {
		t.Fatalf("buildBook: %v", err)
	}
	return book
}

// buildBookFile writes an archive to a temporary file and returns its path,
// for tests exercising Open.
func buildBookFile(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	fp := filepath.Join(dir, "test.epub")
	if err := os.WriteFile(fp, buildArchive(t, files), 0644); err != nil {
		t.Fatalf("buildBookFile: write file: %v", err)
	}
	return fp
}

// testContainer is a minimal OCF container pointing at OEBPS/content.opf.
const testContainer = `<?xml version="1.0" encoding="UTF-8"?>
<container version="1.0" xmlns="urn:oasis:names:tc:opendocument:xmlns:container">
  <rootfiles>
    <rootfile full-path="OEBPS/content.opf" media-type="application/oebps-package+xml"/>
  </rootfiles>
</container>`

// testOPF wraps manifest and spine fragments in a complete ePub 3 package
// document with a small metadata block.
func testOPF(manifest, spine string) string {
	return `<?xml version="1.0" encoding="UTF-8"?>
<package xmlns="http://www.idpf.org/2007/opf" version="3.0" unique-identifier="bookid">
  <metadata xmlns:dc="http://purl.org/dc/elements/1.1/">
    <dc:identifier id="bookid">urn:uuid:00000000-0000-0000-0000-000000000000</dc:identifier>
    <dc:title>Test Book</dc:title>
    <dc:language>en</dc:language>
  </metadata>
  <manifest>
` + manifest + `
  </manifest>
  <spine>
` + spine + `
  </spine>
</package>`
}

// minimalBookFiles returns a complete one-chapter book for tests to extend.
func minimalBookFiles() map[string]string {
	return map[string]string{
		"META-INF/container.xml": testContainer,
		"OEBPS/content.opf": testOPF(
			`    <item id="ch1" href="ch1.xhtml" media-type="application/xhtml+xml"/>`,
			`    <itemref idref="ch1"/>`,
		),
		"OEBPS/ch1.xhtml": `<html><body><p>The wizard cast a spell of fire.</p></body></html>`,
	}
}
