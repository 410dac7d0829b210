package genrefinder

import "testing"

const navOPF = `<?xml version="1.0"?>
<package xmlns="http://www.idpf.org/2007/opf" version="3.0">
  <metadata xmlns:dc="http://purl.org/dc/elements/1.1/">
    <dc:title>Test Book</dc:title>
    <dc:language>en</dc:language>
  </metadata>
  <manifest>
    <item id="nav" href="nav.xhtml" media-type="application/xhtml+xml" properties="nav"/>
    <item id="ch1" href="ch1.xhtml" media-type="application/xhtml+xml"/>
    <item id="ch2" href="ch2.xhtml" media-type="application/xhtml+xml"/>
  </manifest>
  <spine>
    <itemref idref="ch1"/>
    <itemref idref="ch2"/>
  </spine>
</package>`

const navDocument = `<?xml version="1.0"?>
<html xmlns="http://www.w3.org/1999/xhtml" xmlns:epub="http://www.idpf.org/2007/ops">
<body>
  <nav epub:type="landmarks">
    <ol><li><a href="ch1.xhtml">Begin Reading</a></li></ol>
  </nav>
  <nav epub:type="toc">
    <ol>
      <li><a href="ch1.xhtml#start">The Beginning</a></li>
      <li><a href="ch2.xhtml">The End</a></li>
    </ol>
  </nav>
</body>
</html>`

func TestChapterTitlesFromNavDocument(t *testing.T) {
	files := minimalBookFiles()
	files["OEBPS/content.opf"] = navOPF
	files["OEBPS/nav.xhtml"] = navDocument
	files["OEBPS/ch2.xhtml"] = `<p>The end.</p>`
	book := buildBook(t, files)

	chapters := book.Chapters()
	if len(chapters) != 2 {
		t.Fatalf("expected 2 chapters, got %d", len(chapters))
	}
	if chapters[0].Title != "The Beginning" {
		t.Errorf("first title = %q, want %q (from toc nav, not landmarks)", chapters[0].Title, "The Beginning")
	}
	if chapters[1].Title != "The End" {
		t.Errorf("second title = %q", chapters[1].Title)
	}
}

func TestChapterTitlesNavPrecedesNCX(t *testing.T) {
	files := minimalBookFiles()
	files["OEBPS/content.opf"] = `<?xml version="1.0"?>
<package xmlns="http://www.idpf.org/2007/opf" version="3.0">
  <metadata xmlns:dc="http://purl.org/dc/elements/1.1/">
    <dc:title>Test Book</dc:title>
    <dc:language>en</dc:language>
  </metadata>
  <manifest>
    <item id="nav" href="nav.xhtml" media-type="application/xhtml+xml" properties="nav"/>
    <item id="ncx" href="toc.ncx" media-type="application/x-dtbncx+xml"/>
    <item id="ch1" href="ch1.xhtml" media-type="application/xhtml+xml"/>
  </manifest>
  <spine toc="ncx">
    <itemref idref="ch1"/>
  </spine>
</package>`
	files["OEBPS/nav.xhtml"] = `<html xmlns:epub="http://www.idpf.org/2007/ops"><body>
<nav epub:type="toc"><ol><li><a href="ch1.xhtml">Nav Title</a></li></ol></nav>
</body></html>`
	files["OEBPS/toc.ncx"] = `<?xml version="1.0"?>
<ncx xmlns="http://www.daisy.org/z3986/2005/ncx/" version="2005-1">
  <navMap>
    <navPoint id="np1"><navLabel><text>NCX Title</text></navLabel><content src="ch1.xhtml"/></navPoint>
  </navMap>
</ncx>`
	book := buildBook(t, files)

	chapters := book.Chapters()
	if len(chapters) != 1 || chapters[0].Title != "Nav Title" {
		t.Errorf("expected nav document title to win, got %+v", chapters)
	}
}

func TestChapterTitlesNestedNCX(t *testing.T) {
	files := minimalBookFiles()
	files["OEBPS/content.opf"] = `<?xml version="1.0"?>
<package xmlns="http://www.idpf.org/2007/opf" version="2.0">
  <metadata xmlns:dc="http://purl.org/dc/elements/1.1/">
    <dc:title>Test Book</dc:title>
    <dc:language>en</dc:language>
  </metadata>
  <manifest>
    <item id="ncx" href="toc.ncx" media-type="application/x-dtbncx+xml"/>
    <item id="part1" href="part1.xhtml" media-type="application/xhtml+xml"/>
    <item id="ch1" href="ch1.xhtml" media-type="application/xhtml+xml"/>
  </manifest>
  <spine toc="ncx">
    <itemref idref="part1"/>
    <itemref idref="ch1"/>
  </spine>
</package>`
	files["OEBPS/part1.xhtml"] = `<p>Part one.</p>`
	files["OEBPS/toc.ncx"] = `<?xml version="1.0"?>
<ncx xmlns="http://www.daisy.org/z3986/2005/ncx/" version="2005-1">
  <navMap>
    <navPoint id="p1">
      <navLabel><text>Part I</text></navLabel>
      <content src="part1.xhtml"/>
      <navPoint id="c1">
        <navLabel><text>Chapter 1</text></navLabel>
        <content src="ch1.xhtml#top"/>
      </navPoint>
    </navPoint>
  </navMap>
</ncx>`
	book := buildBook(t, files)

	chapters := book.Chapters()
	if len(chapters) != 2 {
		t.Fatalf("expected 2 chapters, got %d", len(chapters))
	}
	if chapters[0].Title != "Part I" {
		t.Errorf("part title = %q", chapters[0].Title)
	}
	if chapters[1].Title != "Chapter 1" {
		t.Errorf("nested chapter title = %q", chapters[1].Title)
	}
}

func TestChapterTitlesMissingTOC(t *testing.T) {
	book := buildBook(t, minimalBookFiles())
	chapters := book.Chapters()
	if len(chapters) != 1 {
		t.Fatalf("expected 1 chapter, got %d", len(chapters))
	}
	if chapters[0].Title != "" {
		t.Errorf("expected empty title without any TOC, got %q", chapters[0].Title)
	}
}
