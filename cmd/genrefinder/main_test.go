package main

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"
)

// writeTestBook builds a small one-chapter ePub in a temp directory and
// returns its path.
func writeTestBook(t *testing.T) string {
	t.Helper()
	files := map[string]string{
		"META-INF/container.xml": `<?xml version="1.0"?>
<container version="1.0" xmlns="urn:oasis:names:tc:opendocument:xmlns:container">
  <rootfiles>
    <rootfile full-path="OEBPS/content.opf" media-type="application/oebps-package+xml"/>
  </rootfiles>
</container>`,
		"OEBPS/content.opf": `<?xml version="1.0"?>
<package xmlns="http://www.idpf.org/2007/opf" version="3.0">
  <metadata xmlns:dc="http://purl.org/dc/elements/1.1/">
    <dc:title>Test Book</dc:title>
    <dc:creator>Jane Doe</dc:creator>
    <dc:language>en</dc:language>
  </metadata>
  <manifest>
    <item id="ch1" href="ch1.xhtml" media-type="application/xhtml+xml"/>
  </manifest>
  <spine>
    <itemref idref="ch1"/>
  </spine>
</package>`,
		"OEBPS/ch1.xhtml": `<html><body><p>The wizard cast a spell of fire.</p></body></html>`,
	}

	buf := new(bytes.Buffer)
	zw := zip.NewWriter(buf)
	for name, content := range files {
		fw, err := zw.Create(name)
		if err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
		if _, err := io.WriteString(fw, content); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close archive: %v", err)
	}

	fp := filepath.Join(t.TempDir(), "book.epub")
	if err := os.WriteFile(fp, buf.Bytes(), 0644); err != nil {
		t.Fatalf("write book: %v", err)
	}
	return fp
}

// writeTestTable writes a YAML keyword table to a temp file.
func writeTestTable(t *testing.T, content string) string {
	t.Helper()
	fp := filepath.Join(t.TempDir(), "table.yaml")
	if err := os.WriteFile(fp, []byte(content), 0644); err != nil {
		t.Fatalf("write table: %v", err)
	}
	return fp
}

// runCommand executes the root command with args, returning stdout.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out := new(bytes.Buffer)
	cmd := newRootCommand()
	cmd.SetOut(out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}
