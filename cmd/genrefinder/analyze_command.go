package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	genrefinder "github.com/hdfiresky/ePub-Genre-Finder"
	"github.com/hdfiresky/ePub-Genre-Finder/keywords"
	"github.com/hdfiresky/ePub-Genre-Finder/scan"
)

// maxHitsPerRow caps the matched-keyword cell so one verbose category does
// not stretch the whole table.
const maxHitsPerRow = 5

var titleCaser = cases.Title(language.Und)

func newAnalyzeCommand(logLevel *string) *cobra.Command {
	var genresFlag string
	var tagsFlag string
	var topFlag int
	var allFlag bool
	var jsonFlag bool

	cmd := &cobra.Command{
		Use:   "analyze BOOK.epub",
		Short: "Score a book against the genre and tag tables",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(*logLevel)

			genres, err := loadTable(genresFlag, keywords.Genres)
			if err != nil {
				return err
			}
			tags, err := loadTable(tagsFlag, keywords.Tags)
			if err != nil {
				return err
			}

			start := time.Now()
			book, err := genrefinder.Open(args[0])
			if err != nil {
				return err
			}
			logger.Debug("book opened",
				"path", args[0],
				"chapters", len(book.Chapters()))

			result, err := genrefinder.AnalyzeBook(book, genres, tags)
			if err != nil {
				return err
			}
			logger.Debug("analysis complete",
				"genres", len(result.Genres),
				"tags", len(result.Tags),
				"keywords", len(result.AllHits),
				"elapsed", time.Since(start).String())

			if jsonFlag {
				return writeJSON(cmd, result)
			}
			printAnalysis(cmd, result, topFlag, allFlag)
			return nil
		},
	}

	cmd.Flags().StringVar(&genresFlag, "genres", "", "YAML file overriding the built-in genre table")
	cmd.Flags().StringVar(&tagsFlag, "tags", "", "YAML file overriding the built-in tag table")
	cmd.Flags().IntVar(&topFlag, "top", 0, "Show at most N rows per table (0 = no limit)")
	cmd.Flags().BoolVar(&allFlag, "all", false, "Include categories with zero matches")
	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Emit the full result as JSON")

	return cmd
}

func loadTable(path string, builtin func() scan.Table) (scan.Table, error) {
	if path == "" {
		return builtin(), nil
	}
	return keywords.Load(path)
}

func printAnalysis(cmd *cobra.Command, result *genrefinder.AnalysisResult, top int, all bool) {
	out := cmd.OutOrStdout()
	if result.Info.Title != "" {
		fmt.Fprintln(out, result.Info.Title)
		if names := authorNames(result.Info.Authors); names != "" {
			fmt.Fprintf(out, "by %s\n", names)
		}
		fmt.Fprintln(out)
	}

	printCategoryTable(cmd, "Genres", result.Genres, top, all)
	printCategoryTable(cmd, "Tags", result.Tags, top, all)
	printHitsTable(cmd, result.AllHits, top)
}

func printCategoryTable(cmd *cobra.Command, title string, results []scan.CategoryResult, top int, all bool) {
	rows := make([][]string, 0, len(results))
	rank := 0
	for _, res := range results {
		if res.Score == 0 && !all {
			continue
		}
		rank++
		if top > 0 && rank > top {
			break
		}
		rows = append(rows, []string{
			strconv.Itoa(rank),
			titleCaser.String(res.Name),
			strconv.Itoa(res.Score),
			formatHits(res.Hits),
		})
	}
	if len(rows) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: no matches\n\n", title)
		return
	}
	printRows(cmd, title,
		[]string{"#", "Name", "Score", "Matched Keywords"}, rows,
		[]columnAlignment{alignRight, alignLeft, alignRight, alignLeft})
}

func printHitsTable(cmd *cobra.Command, hits []scan.AggregateHit, top int) {
	if len(hits) == 0 {
		return
	}
	rows := make([][]string, 0, len(hits))
	for i, h := range hits {
		if top > 0 && i >= top {
			break
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			h.Keyword,
			strconv.Itoa(h.Count),
		})
	}
	printRows(cmd, "Top Keywords",
		[]string{"#", "Keyword", "Count"}, rows,
		[]columnAlignment{alignRight, alignLeft, alignRight})
}

// formatHits renders a hit map as "keyword (count)" pairs, highest count
// first, ties alphabetical.
func formatHits(hits map[string]int) string {
	if len(hits) == 0 {
		return ""
	}
	type hit struct {
		keyword string
		count   int
	}
	ordered := make([]hit, 0, len(hits))
	for kw, n := range hits {
		ordered = append(ordered, hit{kw, n})
	}
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].count != ordered[j].count {
			return ordered[i].count > ordered[j].count
		}
		return ordered[i].keyword < ordered[j].keyword
	})

	parts := make([]string, 0, len(ordered))
	for i, h := range ordered {
		if i == maxHitsPerRow {
			parts = append(parts, fmt.Sprintf("+%d more", len(ordered)-i))
			break
		}
		parts = append(parts, fmt.Sprintf("%s (%d)", h.keyword, h.count))
	}
	return strings.Join(parts, ", ")
}

func authorNames(authors []genrefinder.Author) string {
	names := make([]string, 0, len(authors))
	for _, a := range authors {
		if a.Name != "" {
			names = append(names, a.Name)
		}
	}
	return strings.Join(names, ", ")
}
