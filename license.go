package genrefinder

import "strings"

// licensePatterns contains case-insensitive phrases that mark a Project
// Gutenberg license page.
var licensePatterns = []string{
	"project gutenberg license",
	"gutenberg.org/license",
	"start of the project gutenberg license",
	"end of the project gutenberg license",
	"start of this project gutenberg ebook",
	"end of this project gutenberg ebook",
}

// licenseComboPatterns contains pairs of phrases that only together mark a
// license page (both must appear, case-insensitive).
var licenseComboPatterns = [][2]string{
	{"project gutenberg", "terms of use"},
	{"full license", "gutenberg"},
}

// isLicenseText reports whether the extracted text of a chapter reads like a
// Project Gutenberg license page.
func isLicenseText(text string) bool {
	lowered := strings.ToLower(text)
	for _, pat := range licensePatterns {
		if strings.Contains(lowered, pat) {
			return true
		}
	}
	for _, combo := range licenseComboPatterns {
		if strings.Contains(lowered, combo[0]) && strings.Contains(lowered, combo[1]) {
			return true
		}
	}
	return false
}
