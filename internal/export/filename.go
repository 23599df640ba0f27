package export

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/somdipdey/Learning-Styles/internal/questionnaire"
)

// FilePrefix starts every exported file name.
const FilePrefix = "Learning_Styles_Outcome_"

// SanitizeName turns a display identity into a file-name fragment made only
// of ASCII letters, digits, underscores and hyphens, with runs of spaces
// turned into a single underscore. Accented letters are
// folded to their base letter. An empty result becomes the default identity.
func SanitizeName(name string) string {
	var b strings.Builder
	for _, r := range norm.NFKD.String(name) {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			b.WriteRune(r)
		case r == '_' || r == '-' || r == ' ':
			b.WriteRune(r)
		}
	}
	safe := strings.Join(strings.Fields(b.String()), "_")
	if safe == "" {
		return questionnaire.DefaultName
	}
	return safe
}

// FileName returns the export file name for name with extension ext.
func FileName(name, ext string) string {
	return FilePrefix + SanitizeName(name) + "." + strings.TrimPrefix(ext, ".")
}
