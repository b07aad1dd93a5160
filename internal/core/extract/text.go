package extract

import (
	"context"
	"strings"
	"unicode/utf8"
)

// TextExtractor decodes plain-text files, dropping byte sequences that
// are not valid UTF-8 rather than failing on them.
type TextExtractor struct{}

func (e *TextExtractor) Extract(_ context.Context, _ string, data []byte) (string, error) {
	s := string(data)
	if !utf8.ValidString(s) {
		s = strings.ToValidUTF8(s, "")
	}
	return s, nil
}
