package genrefinder

import (
	"errors"
	"reflect"
	"testing"

	"github.com/hdfiresky/ePub-Genre-Finder/scan"
)

func analysisTables() (scan.Table, scan.Table) {
	genres := scan.Table{
		{Name: "Fantasy", Keywords: []string{"magic", "spell"}},
		{Name: "Mystery", Keywords: []string{"detective", "clue"}},
	}
	tags := scan.Table{
		{Name: "Wizards", Keywords: []string{"wizard"}},
	}
	return genres, tags
}

func TestAnalyzeSingleChapter(t *testing.T) {
	genres, tags := analysisTables()
	result, err := Analyze(buildArchive(t, minimalBookFiles()), genres, tags)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	// Corpus is "The wizard cast a spell of fire."
	if len(result.Genres) != 2 {
		t.Fatalf("expected 2 genre results, got %d", len(result.Genres))
	}
	top := result.Genres[0]
	if top.Name != "Fantasy" || top.Score != 1 {
		t.Errorf("top genre = %+v, want Fantasy with score 1", top)
	}
	if !reflect.DeepEqual(top.Hits, map[string]int{"spell": 1}) {
		t.Errorf("hits = %v", top.Hits)
	}
	if result.Genres[1].Score != 0 {
		t.Errorf("expected zero-score Mystery to be present, got %+v", result.Genres[1])
	}

	if len(result.Tags) != 1 || result.Tags[0].Score != 1 {
		t.Errorf("tags = %+v", result.Tags)
	}

	wantHits := []scan.AggregateHit{
		{Keyword: "spell", Count: 1},
		{Keyword: "wizard", Count: 1},
	}
	if !reflect.DeepEqual(result.AllHits, wantHits) {
		t.Errorf("AllHits = %v, want %v", result.AllHits, wantHits)
	}

	if result.Info.Title != "Test Book" {
		t.Errorf("expected book info in result, got title %q", result.Info.Title)
	}
}

func TestAnalyzeIsIdempotent(t *testing.T) {
	genres, tags := analysisTables()
	data := buildArchive(t, minimalBookFiles())

	first, err := Analyze(data, genres, tags)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	for i := 0; i < 5; i++ {
		next, err := Analyze(data, genres, tags)
		if err != nil {
			t.Fatalf("Analyze run %d: %v", i, err)
		}
		if !reflect.DeepEqual(first, next) {
			t.Fatalf("run %d diverged:\nfirst: %+v\nnext:  %+v", i, first, next)
		}
	}
}

func TestAnalyzeNoExtractableContent(t *testing.T) {
	files := minimalBookFiles()
	files["OEBPS/content.opf"] = testOPF(
		`    <item id="img" href="pic.png" media-type="image/png"/>`,
		`    <itemref idref="img"/>`,
	)
	files["OEBPS/pic.png"] = "binary"

	genres, tags := analysisTables()
	_, err := Analyze(buildArchive(t, files), genres, tags)
	if !errors.Is(err, ErrNoExtractableContent) {
		t.Errorf("expected ErrNoExtractableContent, got %v", err)
	}
}

func TestAnalyzePropagatesOpenErrors(t *testing.T) {
	genres, tags := analysisTables()
	if _, err := Analyze([]byte("junk"), genres, tags); !errors.Is(err, ErrInvalidArchive) {
		t.Errorf("expected ErrInvalidArchive, got %v", err)
	}
}

func TestAnalyzeBookReuse(t *testing.T) {
	genres, tags := analysisTables()
	book := buildBook(t, minimalBookFiles())

	first, err := AnalyzeBook(book, genres, tags)
	if err != nil {
		t.Fatalf("AnalyzeBook: %v", err)
	}
	second, err := AnalyzeBook(book, genres, tags)
	if err != nil {
		t.Fatalf("AnalyzeBook again: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("repeated analysis of one Book must match")
	}
	if len(book.Chapters()) != 1 {
		t.Error("book remains usable for other accessors after analysis")
	}
}
