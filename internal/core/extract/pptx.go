package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// PptxExtractor reads OOXML slide decks. Each slide emits a boundary
// marker, then its text-frame paragraphs, then its tables row by row.
type PptxExtractor struct{}

var slideNameRe = regexp.MustCompile(`^ppt/slides/slide(\d+)\.xml$`)

func (e *PptxExtractor) Extract(_ context.Context, _ string, data []byte) (string, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("pptx: open archive: %w", err)
	}

	type slideFile struct {
		num  int
		file *zip.File
	}
	var slides []slideFile
	for _, f := range reader.File {
		m := slideNameRe.FindStringSubmatch(f.Name)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		slides = append(slides, slideFile{num: n, file: f})
	}
	sort.Slice(slides, func(i, j int) bool { return slides[i].num < slides[j].num })

	var parts []string
	for i, sf := range slides {
		rc, err := sf.file.Open()
		if err != nil {
			continue
		}
		raw, err := readAll(rc)
		if err != nil {
			continue
		}

		var slide slideXML
		if err := xml.Unmarshal(raw, &slide); err != nil {
			continue
		}

		lines := []string{fmt.Sprintf("--- Slide %d ---", i+1)}
		tree := slide.CSld.SpTree

		for _, shape := range tree.Shapes {
			for _, p := range shape.TxBody.Paragraphs {
				if text := p.text(); text != "" {
					lines = append(lines, text)
				}
			}
		}
		for _, frame := range tree.Frames {
			for _, row := range frame.Graphic.GraphicData.Table.Rows {
				cells := make([]string, 0, len(row.Cells))
				for _, cell := range row.Cells {
					var cellParts []string
					for _, p := range cell.TxBody.Paragraphs {
						if text := p.text(); text != "" {
							cellParts = append(cellParts, text)
						}
					}
					cells = append(cells, strings.Join(cellParts, " "))
				}
				lines = append(lines, strings.Join(cells, cellSeparator))
			}
		}

		parts = append(parts, strings.Join(lines, "\n"))
	}

	return strings.Join(parts, "\n\n"), nil
}

// slideXML models the parts of a slide part we read: shapes with text
// bodies and graphic frames holding DrawingML tables.
type slideXML struct {
	CSld struct {
		SpTree struct {
			Shapes []struct {
				TxBody struct {
					Paragraphs []slideParagraph `xml:"p"`
				} `xml:"txBody"`
			} `xml:"sp"`
			Frames []struct {
				Graphic struct {
					GraphicData struct {
						Table struct {
							Rows []struct {
								Cells []struct {
									TxBody struct {
										Paragraphs []slideParagraph `xml:"p"`
									} `xml:"txBody"`
								} `xml:"tc"`
							} `xml:"tr"`
						} `xml:"tbl"`
					} `xml:"graphicData"`
				} `xml:"graphic"`
			} `xml:"graphicFrame"`
		} `xml:"spTree"`
	} `xml:"cSld"`
}

type slideParagraph struct {
	Runs []struct {
		Text string `xml:"t"`
	} `xml:"r"`
}

func (p slideParagraph) text() string {
	var b strings.Builder
	for _, r := range p.Runs {
		b.WriteString(r.Text)
	}
	return strings.TrimSpace(b.String())
}
