package extract

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubExtractor struct {
	text string
	err  error
}

func (s *stubExtractor) Extract(context.Context, string, []byte) (string, error) {
	return s.text, s.err
}

type stubVision struct {
	text   string
	err    error
	called bool
}

func (s *stubVision) GenerateVision(_ context.Context, _ string, _ string, _ []byte) (string, error) {
	s.called = true
	return s.text, s.err
}

func fallbackWith(inner *stubExtractor, vision *stubVision, threshold int) *ScanFallback {
	return &ScanFallback{
		Inner:     inner,
		Vision:    NewVisionExtractor(vision),
		Threshold: threshold,
	}
}

func TestScanFallback_EnoughText(t *testing.T) {
	vision := &stubVision{text: "should not be used"}
	sf := fallbackWith(&stubExtractor{text: strings.Repeat("x", 200)}, vision, 50)

	text, err := sf.Extract(context.Background(), "application/pdf", nil)
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("x", 200), text)
	assert.False(t, vision.called)
}

func TestScanFallback_TooLittleText(t *testing.T) {
	// 40 visible chars spread across whitespace, below a threshold of 50.
	direct := strings.Repeat("x ", 40)
	vision := &stubVision{text: "transcribed timetable"}
	sf := fallbackWith(&stubExtractor{text: direct}, vision, 50)

	text, err := sf.Extract(context.Background(), "application/pdf", nil)
	require.NoError(t, err)
	assert.Equal(t, "transcribed timetable", text)
	assert.True(t, vision.called)
}

func TestScanFallback_DirectError(t *testing.T) {
	vision := &stubVision{text: "recovered via vision"}
	sf := fallbackWith(&stubExtractor{err: errors.New("corrupt xref")}, vision, 50)

	text, err := sf.Extract(context.Background(), "application/pdf", nil)
	require.NoError(t, err)
	assert.Equal(t, "recovered via vision", text)
	assert.True(t, vision.called)
}

func TestScanFallback_VisionError(t *testing.T) {
	vision := &stubVision{err: errors.New("quota exceeded")}
	sf := fallbackWith(&stubExtractor{text: "tiny"}, vision, 50)

	_, err := sf.Extract(context.Background(), "application/pdf", nil)
	assert.Error(t, err)
}

func TestPDFExtract_Garbage(t *testing.T) {
	_, err := (&PDFExtractor{}).Extract(context.Background(), "application/pdf", []byte("%PDF-1.7 but truncated"))
	assert.Error(t, err)
}

func TestCountVisibleChars(t *testing.T) {
	assert.Equal(t, 0, countVisibleChars("  \n\t "))
	assert.Equal(t, 5, countVisibleChars(" a b c d e "))
	assert.Equal(t, 5, countVisibleChars("ज्ञान")) // combining marks count as runes
}
