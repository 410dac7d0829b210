package genrefinder

import "github.com/hdfiresky/ePub-Genre-Finder/scan"

// Analyze runs the full pipeline on an in-memory ePub: open the archive,
// reconstruct the reading order, extract the text corpus, and score it
// against the genre and tag tables. Analyze is a pure function of its
// inputs; identical bytes and tables yield identical results.
func Analyze(data []byte, genres, tags scan.Table) (*AnalysisResult, error) {
	book, err := NewBook(data)
	if err != nil {
		return nil, err
	}
	return AnalyzeBook(book, genres, tags)
}

// AnalyzeBook scores an already opened Book. Callers that also inspect the
// book through other accessors can reuse one Book for both.
func AnalyzeBook(book *Book, genres, tags scan.Table) (*AnalysisResult, error) {
	corpus, err := book.ContentCorpus()
	if err != nil {
		return nil, err
	}

	res := scan.ScoreAll(corpus, genres, tags)
	return &AnalysisResult{
		Genres:  res.Genres,
		Tags:    res.Tags,
		AllHits: res.AllHits,
		Info:    book.Info(),
	}, nil
}
