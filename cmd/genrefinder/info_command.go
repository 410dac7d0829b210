package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	genrefinder "github.com/hdfiresky/ePub-Genre-Finder"
)

type coverReport struct {
	Path      string `json:"path"`
	MediaType string `json:"media_type"`
	Bytes     int    `json:"bytes"`
}

type infoReport struct {
	Info     genrefinder.BookInfo  `json:"info"`
	Chapters []genrefinder.Chapter `json:"chapters"`
	Cover    *coverReport          `json:"cover,omitempty"`
}

func newInfoCommand(logLevel *string) *cobra.Command {
	var jsonFlag bool

	cmd := &cobra.Command{
		Use:   "info BOOK.epub",
		Short: "Show book metadata, chapters, and cover without scoring",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(*logLevel)

			book, err := genrefinder.Open(args[0])
			if err != nil {
				return err
			}

			report := infoReport{
				Info:     book.Info(),
				Chapters: book.Chapters(),
			}
			if cover, err := book.Cover(); err == nil {
				report.Cover = &coverReport{
					Path:      cover.Path,
					MediaType: cover.MediaType,
					Bytes:     len(cover.Data),
				}
			} else if !errors.Is(err, genrefinder.ErrNoCover) {
				logger.Warn("cover detection failed", "error", err)
			}

			if jsonFlag {
				return writeJSON(cmd, report)
			}
			printInfo(cmd, report)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Emit the report as JSON")

	return cmd
}

func printInfo(cmd *cobra.Command, report infoReport) {
	out := cmd.OutOrStdout()
	info := report.Info

	printField(out, "Title", info.Title)
	printField(out, "Authors", authorNames(info.Authors))
	printField(out, "Language", strings.Join(info.Language, ", "))
	printField(out, "Subjects", strings.Join(info.Subjects, ", "))
	printField(out, "Publisher", info.Publisher)
	printField(out, "Date", info.Date)
	printField(out, "Version", info.Version)
	printField(out, "Description", clip(info.Description, 200))

	if report.Cover != nil {
		fmt.Fprintf(out, "Cover: %s (%s, %d bytes)\n",
			report.Cover.Path, report.Cover.MediaType, report.Cover.Bytes)
	} else {
		fmt.Fprintln(out, "Cover: not detected")
	}
	fmt.Fprintln(out)

	if len(report.Chapters) == 0 {
		fmt.Fprintln(out, "Chapters: none")
		return
	}
	rows := make([][]string, 0, len(report.Chapters))
	for i, ch := range report.Chapters {
		linear := "yes"
		if !ch.Linear {
			linear = "no"
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			ch.Title,
			ch.Path,
			linear,
		})
	}
	printRows(cmd, "Chapters",
		[]string{"#", "Title", "Path", "Linear"}, rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft})
}

func printField(out io.Writer, label, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(out, "%s: %s\n", label, value)
}

func clip(s string, max int) string {
	if len(s) <= max {
		return s
	}
	clipped := strings.TrimSpace(s[:max])
	return clipped + "..."
}
