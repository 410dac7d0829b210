package genrefinder

import (
	"bytes"
	"errors"
	"io"
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// entityNameToNumeric maps lowercase HTML entity names to their XML numeric
// character references. encoding/xml does not recognise HTML named entities,
// so they are converted before parsing package documents and NCX files.
var entityNameToNumeric = map[string][]byte{
	"nbsp": []byte("&#160;"), "mdash": []byte("&#8212;"), "ndash": []byte("&#8211;"),
	"hellip": []byte("&#8230;"),
	"lsquo": []byte("&#8216;"), "rsquo": []byte("&#8217;"),
	"ldquo": []byte("&#8220;"), "rdquo": []byte("&#8221;"),
	"copy": []byte("&#169;"), "reg": []byte("&#174;"), "trade": []byte("&#8482;"),
	"bull": []byte("&#8226;"), "middot": []byte("&#183;"),
	"eacute": []byte("&#233;"), "egrave": []byte("&#232;"),
	"ecirc": []byte("&#234;"), "euml": []byte("&#235;"),
	"aacute": []byte("&#225;"), "agrave": []byte("&#224;"),
	"acirc": []byte("&#226;"), "auml": []byte("&#228;"),
	"iacute": []byte("&#237;"), "igrave": []byte("&#236;"),
	"icirc": []byte("&#238;"), "iuml": []byte("&#239;"),
	"oacute": []byte("&#243;"), "ograve": []byte("&#242;"),
	"ocirc": []byte("&#244;"), "ouml": []byte("&#246;"),
	"uacute": []byte("&#250;"), "ugrave": []byte("&#249;"),
	"ucirc": []byte("&#251;"), "uuml": []byte("&#252;"),
	"ntilde": []byte("&#241;"), "ccedil": []byte("&#231;"),
	"times": []byte("&#215;"), "divide": []byte("&#247;"),
	"deg": []byte("&#176;"), "para": []byte("&#182;"), "sect": []byte("&#167;"),
	"laquo": []byte("&#171;"), "raquo": []byte("&#187;"),
	"iexcl": []byte("&#161;"), "iquest": []byte("&#191;"),
}

// htmlEntityPattern matches common HTML named entities case-insensitively.
var htmlEntityPattern = regexp.MustCompile(
	`(?i)&(nbsp|mdash|ndash|hellip|lsquo|rsquo|ldquo|rdquo|copy|reg|trade|bull|middot|` +
		`eacute|egrave|ecirc|euml|aacute|agrave|acirc|auml|iacute|igrave|icirc|iuml|` +
		`oacute|ograve|ocirc|ouml|uacute|ugrave|ucirc|uuml|ntilde|ccedil|` +
		`times|divide|deg|para|sect|laquo|raquo|iexcl|iquest);`)

// preprocessHTMLEntities replaces common HTML named entities with their
// numeric character references so that encoding/xml can parse the data.
// Matching is case-insensitive to handle non-standard package content.
func preprocessHTMLEntities(data []byte) []byte {
	return htmlEntityPattern.ReplaceAllFunc(data, func(match []byte) []byte {
		name := strings.ToLower(string(match[1 : len(match)-1]))
		if replacement, ok := entityNameToNumeric[name]; ok {
			return replacement
		}
		return match
	})
}

// blockTags is the set of tags that insert a line break during markup stripping.
var blockTags = map[atom.Atom]bool{
	atom.P:          true,
	atom.Br:         true,
	atom.Div:        true,
	atom.H1:         true,
	atom.H2:         true,
	atom.H3:         true,
	atom.H4:         true,
	atom.H5:         true,
	atom.H6:         true,
	atom.Li:         true,
	atom.Tr:         true,
	atom.Blockquote: true,
	atom.Hr:         true,
}

// skipTags is the set of tags whose content is never visible text.
var skipTags = map[atom.Atom]bool{
	atom.Script: true,
	atom.Style:  true,
}

// selfClosingSkipTagPattern matches self-closing <script/> and <style/> forms,
// which the tokenizer would otherwise report without a matching end tag.
var selfClosingSkipTagPattern = regexp.MustCompile(`(?is)<(script|style)\b([^>]*)/>`)

func normalizeSelfClosingSkipTags(markup []byte) []byte {
	if !selfClosingSkipTagPattern.Match(markup) {
		return markup
	}
	return selfClosingSkipTagPattern.ReplaceAll(markup, []byte(`<$1$2></$1>`))
}

// stripMarkup reduces chapter markup to its visible text content.
// Block-level elements (<p>, <br>, <div>, <h1>-<h6>, <li>, <tr>) produce line
// breaks; the content of <script> and <style> elements is dropped entirely.
func stripMarkup(markup []byte) (string, error) {
	markup = normalizeSelfClosingSkipTags(markup)
	tokenizer := html.NewTokenizer(bytes.NewReader(markup))

	var buf strings.Builder
	skipDepth := 0 // depth inside a skip tag
	lastWasNewline := true

	for {
		tt := tokenizer.Next()
		switch tt {
		case html.ErrorToken:
			err := tokenizer.Err()
			if errors.Is(err, io.EOF) {
				return strings.TrimSpace(buf.String()), nil
			}
			return "", err

		case html.StartTagToken:
			tn, _ := tokenizer.TagName()
			a := atom.Lookup(tn)
			if skipTags[a] {
				skipDepth++
				continue
			}
			if skipDepth > 0 {
				continue
			}
			if blockTags[a] && buf.Len() > 0 && !lastWasNewline {
				buf.WriteByte('\n')
				lastWasNewline = true
			}

		case html.SelfClosingTagToken:
			tn, _ := tokenizer.TagName()
			a := atom.Lookup(tn)
			if skipDepth > 0 {
				continue
			}
			if blockTags[a] && buf.Len() > 0 && !lastWasNewline {
				buf.WriteByte('\n')
				lastWasNewline = true
			}

		case html.EndTagToken:
			tn, _ := tokenizer.TagName()
			if skipTags[atom.Lookup(tn)] && skipDepth > 0 {
				skipDepth--
			}

		case html.TextToken:
			if skipDepth > 0 {
				continue
			}
			// Collapse internal whitespace runs to single spaces, but keep
			// non-empty content so inline elements keep their spacing.
			text := collapseWhitespace(string(tokenizer.Text()))
			if text != "" {
				buf.WriteString(text)
				lastWasNewline = strings.HasSuffix(text, "\n")
			}
		}
	}
}

// collapseWhitespace replaces runs of whitespace characters (spaces, tabs,
// newlines) with a single space, returning "" for all-whitespace input.
// Leading and trailing whitespace survive as a single space each so that
// spacing between inline elements is maintained.
func collapseWhitespace(s string) string {
	var buf strings.Builder
	inSpace := false
	hasNonSpace := false
	for _, r := range s {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			inSpace = true
		} else {
			if inSpace && buf.Len() > 0 {
				buf.WriteByte(' ')
			}
			buf.WriteRune(r)
			inSpace = false
			hasNonSpace = true
		}
	}
	if !hasNonSpace {
		return ""
	}
	result := buf.String()
	if len(s) > 0 && isWhitespace(rune(s[0])) {
		result = " " + result
	}
	if inSpace {
		result = result + " "
	}
	return result
}

// isWhitespace reports whether r is an ASCII whitespace character.
func isWhitespace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}
