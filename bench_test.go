package genrefinder

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/hdfiresky/ePub-Genre-Finder/keywords"
)

// benchBookFiles builds an ePub file map with the given number of chapters.
// The chapter text carries genre vocabulary so scoring benchmarks do real work.
func benchBookFiles(numChapters int) map[string]string {
	var manifestItems, spineRefs strings.Builder
	for i := 1; i <= numChapters; i++ {
		fmt.Fprintf(&manifestItems, `    <item id="ch%d" href="chapter%03d.xhtml" media-type="application/xhtml+xml"/>`, i, i)
		manifestItems.WriteByte('\n')
		fmt.Fprintf(&spineRefs, `    <itemref idref="ch%d"/>`, i)
		spineRefs.WriteByte('\n')
	}

	opf := fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<package version="3.0" xmlns="http://www.idpf.org/2007/opf" unique-identifier="bookid">
  <metadata xmlns:dc="http://purl.org/dc/elements/1.1/">
    <dc:identifier id="bookid">urn:uuid:11111111-1111-1111-1111-111111111111</dc:identifier>
    <dc:title>Benchmark Book</dc:title>
    <dc:creator>John Doe</dc:creator>
    <dc:language>en</dc:language>
  </metadata>
  <manifest>
%s  </manifest>
  <spine>
%s  </spine>
</package>`, manifestItems.String(), spineRefs.String())

	files := map[string]string{
		"mimetype":               "application/epub+zip",
		"META-INF/container.xml": testContainer,
		"OEBPS/content.opf":      opf,
	}

	for i := 1; i <= numChapters; i++ {
		files[fmt.Sprintf("OEBPS/chapter%03d.xhtml", i)] = fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<html xmlns="http://www.w3.org/1999/xhtml">
<head><title>Chapter %d</title></head>
<body>
<h1>Chapter %d</h1>
<p>The detective followed the outlaw past the saloon and into the haunted graveyard.</p>
<p>A dragon circled the kingdom while the wizard prepared another spell of protection.</p>
<p>Their love survived the rebellion, the siege of the empire, and a long voyage home.</p>
</body>
</html>`, i, i)
	}
	return files
}

// buildBenchArchive zips a file map for benchmarks.
func buildBenchArchive(b *testing.B, files map[string]string) []byte {
	b.Helper()
	buf := new(bytes.Buffer)
	zw := zip.NewWriter(buf)
	for name, content := range files {
		fw, err := zw.Create(name)
		if err != nil {
			b.Fatalf("buildBenchArchive: create %s: %v", name, err)
		}
		if _, err := io.WriteString(fw, content); err != nil {
			b.Fatalf("buildBenchArchive: write %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		b.Fatalf("buildBenchArchive: close writer: %v", err)
	}
	return buf.Bytes()
}

// BenchmarkNewBook measures opening an archive and parsing its structure.
func BenchmarkNewBook(b *testing.B) {
	data := buildBenchArchive(b, benchBookFiles(10))

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := NewBook(data); err != nil {
			b.Fatalf("NewBook: %v", err)
		}
	}
}

// BenchmarkCorpus measures text extraction for a fresh book each iteration,
// since the corpus is cached per Book.
func BenchmarkCorpus(b *testing.B) {
	data := buildBenchArchive(b, benchBookFiles(10))

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		book, err := NewBook(data)
		if err != nil {
			b.Fatalf("NewBook: %v", err)
		}
		if _, err := book.Corpus(); err != nil {
			b.Fatalf("Corpus: %v", err)
		}
	}
}

// BenchmarkAnalyze measures the full pipeline with the built-in tables.
func BenchmarkAnalyze(b *testing.B) {
	data := buildBenchArchive(b, benchBookFiles(10))
	genres := keywords.Genres()
	tags := keywords.Tags()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Analyze(data, genres, tags); err != nil {
			b.Fatalf("Analyze: %v", err)
		}
	}
}

// BenchmarkAnalyzeScaling tracks pipeline cost across book sizes.
func BenchmarkAnalyzeScaling(b *testing.B) {
	genres := keywords.Genres()
	tags := keywords.Tags()
	for _, n := range []int{10, 50, 100} {
		b.Run(fmt.Sprintf("chapters_%d", n), func(b *testing.B) {
			data := buildBenchArchive(b, benchBookFiles(n))

			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := Analyze(data, genres, tags); err != nil {
					b.Fatalf("Analyze: %v", err)
				}
			}
		})
	}
}

// BenchmarkStripMarkup measures markup-to-text reduction for one chapter.
func BenchmarkStripMarkup(b *testing.B) {
	markup := []byte(benchBookFiles(1)["OEBPS/chapter001.xhtml"])

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := stripMarkup(markup); err != nil {
			b.Fatalf("stripMarkup: %v", err)
		}
	}
}
