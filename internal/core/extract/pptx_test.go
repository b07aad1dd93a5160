package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestPPTX builds a minimal slide deck with the given slide parts,
// keyed by slide number.
func createTestPPTX(slides map[int]string) []byte {
	buf := new(bytes.Buffer)
	w := zip.NewWriter(buf)

	for num, xml := range slides {
		f, _ := w.Create(fmt.Sprintf("ppt/slides/slide%d.xml", num))
		f.Write([]byte(xml))
	}

	w.Close()
	return buf.Bytes()
}

func slideWithText(texts ...string) string {
	var shapes strings.Builder
	for _, t := range texts {
		fmt.Fprintf(&shapes, `<p:sp><p:txBody><a:p><a:r><a:t>%s</a:t></a:r></a:p></p:txBody></p:sp>`, t)
	}
	return `<?xml version="1.0" encoding="UTF-8"?>
<p:sld xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main" xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main">
<p:cSld><p:spTree>` + shapes.String() + `</p:spTree></p:cSld></p:sld>`
}

func TestPptxExtract_SlidesInOrder(t *testing.T) {
	data := createTestPPTX(map[int]string{
		1:  slideWithText("Introduction"),
		2:  slideWithText("Processes", "Threads"),
		10: slideWithText("Summary"),
	})

	text, err := (&PptxExtractor{}).Extract(context.Background(), "", data)
	require.NoError(t, err)

	want := "--- Slide 1 ---\nIntroduction\n\n" +
		"--- Slide 2 ---\nProcesses\nThreads\n\n" +
		"--- Slide 3 ---\nSummary"
	assert.Equal(t, want, text)
}

func TestPptxExtract_Table(t *testing.T) {
	slide := `<?xml version="1.0" encoding="UTF-8"?>
<p:sld xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main" xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main">
<p:cSld><p:spTree>
<p:sp><p:txBody><a:p><a:r><a:t>Marks Split</a:t></a:r></a:p></p:txBody></p:sp>
<p:graphicFrame><a:graphic><a:graphicData><a:tbl>
<a:tr><a:tc><a:txBody><a:p><a:r><a:t>Internals</a:t></a:r></a:p></a:txBody></a:tc><a:tc><a:txBody><a:p><a:r><a:t>40</a:t></a:r></a:p></a:txBody></a:tc></a:tr>
<a:tr><a:tc><a:txBody><a:p><a:r><a:t>Finals</a:t></a:r></a:p></a:txBody></a:tc><a:tc><a:txBody><a:p><a:r><a:t>60</a:t></a:r></a:p></a:txBody></a:tc></a:tr>
</a:tbl></a:graphicData></a:graphic></p:graphicFrame>
</p:spTree></p:cSld></p:sld>`

	text, err := (&PptxExtractor{}).Extract(context.Background(), "", createTestPPTX(map[int]string{1: slide}))
	require.NoError(t, err)

	want := "--- Slide 1 ---\nMarks Split\nInternals | 40\nFinals | 60"
	assert.Equal(t, want, text)
}

func TestPptxExtract_NotAnArchive(t *testing.T) {
	_, err := (&PptxExtractor{}).Extract(context.Background(), "", []byte("nope"))
	assert.Error(t, err)
}
