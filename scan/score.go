package scan

import (
	"sort"
	"strings"
	"sync"
)

// CategoryResult is the outcome of scoring one category against a corpus.
// Hits holds only keywords with a positive count; a category that matched
// nothing has Score 0 and a nil Hits map.
type CategoryResult struct {
	Name  string         `json:"name"`
	Score int            `json:"score"`
	Hits  map[string]int `json:"hits,omitempty"`
}

// AggregateHit is the combined count of one keyword across every category,
// genres and tags together, in which it scored.
type AggregateHit struct {
	Keyword string `json:"keyword"`
	Count   int    `json:"count"`
}

// Results holds the ranked outcome of scoring one corpus against the genre
// and tag tables.
type Results struct {
	Genres  []CategoryResult `json:"genres"`
	Tags    []CategoryResult `json:"tags"`
	AllHits []AggregateHit   `json:"all_hits"`
}

// Score scores the corpus against a single table. Every category appears in
// the result, score-0 entries included; ordering is by descending score with
// ties keeping table order.
func Score(corpus string, table Table) []CategoryResult {
	results := scoreTable(corpus, table)
	sortByScore(results)
	return results
}

// ScoreAll scores the corpus against both tables and merges the per-keyword
// totals into one ranked hit list. The two tables touch no shared state
// beyond the read-only corpus, so they are scored concurrently.
func ScoreAll(corpus string, genres, tags Table) Results {
	var genreResults, tagResults []CategoryResult

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		genreResults = scoreTable(corpus, genres)
	}()
	go func() {
		defer wg.Done()
		tagResults = scoreTable(corpus, tags)
	}()
	wg.Wait()

	// Aggregate before sorting: the combined list ranks by count, with ties
	// keeping the order keywords are first encountered walking the genre
	// table and then the tag table in definition order.
	allHits := aggregate(
		scoredTable{genres, genreResults},
		scoredTable{tags, tagResults},
	)

	sortByScore(genreResults)
	sortByScore(tagResults)

	return Results{Genres: genreResults, Tags: tagResults, AllHits: allHits}
}

// scoreTable produces one CategoryResult per table entry, in table order.
func scoreTable(corpus string, table Table) []CategoryResult {
	results := make([]CategoryResult, len(table))
	for i, cat := range table {
		res := CategoryResult{Name: cat.Name}
		for _, kw := range cat.Keywords {
			if strings.TrimSpace(kw) == "" {
				continue
			}
			n := len(keywordPattern(kw).FindAllStringIndex(corpus, -1))
			if n == 0 {
				continue
			}
			if res.Hits == nil {
				res.Hits = make(map[string]int)
			}
			res.Hits[kw] += n
			res.Score += n
		}
		results[i] = res
	}
	return results
}

func sortByScore(results []CategoryResult) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
}

// scoredTable pairs a table with its definition-order results.
type scoredTable struct {
	table   Table
	results []CategoryResult
}

// aggregate sums each keyword's count across every category of the given
// sets. Walking the tables rather than the hit maps keeps the encounter
// order deterministic; a keyword repeated inside one category's list is
// counted once, its hit entry already holds the category total.
func aggregate(sets ...scoredTable) []AggregateHit {
	totals := make(map[string]int)
	var order []string

	for _, set := range sets {
		for i, cat := range set.table {
			hits := set.results[i].Hits
			if len(hits) == 0 {
				continue
			}
			seen := make(map[string]bool, len(cat.Keywords))
			for _, kw := range cat.Keywords {
				if seen[kw] {
					continue
				}
				seen[kw] = true
				n := hits[kw]
				if n == 0 {
					continue
				}
				if _, known := totals[kw]; !known {
					order = append(order, kw)
				}
				totals[kw] += n
			}
		}
	}

	out := make([]AggregateHit, 0, len(order))
	for _, kw := range order {
		out = append(out, AggregateHit{Keyword: kw, Count: totals[kw]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}
