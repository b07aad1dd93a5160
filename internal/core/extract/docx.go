package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"code.sajari.com/docconv"
)

// DocxExtractor reads OOXML word-processor documents: body paragraphs
// first, then each table's rows with cells joined by the separator.
type DocxExtractor struct{}

func (e *DocxExtractor) Extract(_ context.Context, _ string, data []byte) (string, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("docx: open archive: %w", err)
	}

	raw, err := readArchiveFile(reader, "word/document.xml")
	if err != nil {
		return "", fmt.Errorf("docx: %w", err)
	}
	if raw == nil {
		return "", nil
	}

	var doc wordDocument
	if err := xml.Unmarshal(raw, &doc); err != nil {
		return "", fmt.Errorf("docx: parse document.xml: %w", err)
	}

	var parts []string
	for _, p := range doc.Body.Paragraphs {
		if text := p.text(); text != "" {
			parts = append(parts, text)
		}
	}
	for _, tbl := range doc.Body.Tables {
		var rows []string
		for _, row := range tbl.Rows {
			cells := make([]string, 0, len(row.Cells))
			for _, cell := range row.Cells {
				var cellParts []string
				for _, p := range cell.Paragraphs {
					if text := p.text(); text != "" {
						cellParts = append(cellParts, text)
					}
				}
				cells = append(cells, strings.Join(cellParts, " "))
			}
			rows = append(rows, strings.Join(cells, cellSeparator))
		}
		if len(rows) > 0 {
			parts = append(parts, strings.Join(rows, "\n"))
		}
	}

	return strings.Join(parts, "\n"), nil
}

// wordDocument models the parts of word/document.xml we read. Only
// body-level paragraphs land in Paragraphs; paragraphs inside table
// cells are reached through Tables.
type wordDocument struct {
	Body struct {
		Paragraphs []wordParagraph `xml:"p"`
		Tables     []wordTable     `xml:"tbl"`
	} `xml:"body"`
}

type wordParagraph struct {
	Runs []struct {
		Text []string `xml:"t"`
	} `xml:"r"`
}

func (p wordParagraph) text() string {
	var b strings.Builder
	for _, r := range p.Runs {
		for _, t := range r.Text {
			b.WriteString(t)
		}
	}
	return strings.TrimSpace(b.String())
}

type wordTable struct {
	Rows []struct {
		Cells []struct {
			Paragraphs []wordParagraph `xml:"p"`
		} `xml:"tc"`
	} `xml:"tr"`
}

func readArchiveFile(reader *zip.Reader, name string) ([]byte, error) {
	for _, file := range reader.File {
		if file.Name != name {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", name, err)
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}
	return nil, nil
}

// LegacyDocExtractor handles old binary Word documents via docconv,
// which understands the OLE compound file format.
type LegacyDocExtractor struct{}

func (e *LegacyDocExtractor) Extract(_ context.Context, mimeType string, data []byte) (string, error) {
	res, err := docconv.Convert(bytes.NewReader(data), mimeType, false)
	if err != nil {
		return "", fmt.Errorf("doc: convert: %w", err)
	}
	return strings.TrimSpace(res.Body), nil
}
