package drive

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/adityakp-dev/Acadex/internal/core"
	"github.com/adityakp-dev/Acadex/internal/models"
)

// Lister is the slice of the Drive client the crawler needs.
type Lister interface {
	ListChildren(ctx context.Context, folderID string) ([]models.RemoteFile, error)
}

// Crawler walks a branch root folder two levels deep:
// root → year folders → optional category subfolders → files.
type Crawler struct {
	lister Lister
}

func NewCrawler(lister Lister) *Crawler {
	return &Crawler{lister: lister}
}

var _ core.FolderCrawler = (*Crawler)(nil)

// Crawl returns every ingestible file under the branch root with its
// classified year and category. A folder that cannot be listed or whose
// year cannot be determined is skipped; only a failure to list the root
// itself aborts the branch.
func (c *Crawler) Crawl(ctx context.Context, branch, rootFolderID string) ([]models.SourceDocument, error) {
	yearFolders, err := c.lister.ListChildren(ctx, rootFolderID)
	if err != nil {
		return nil, fmt.Errorf("crawl %s root: %w", branch, err)
	}

	var docs []models.SourceDocument
	for _, yf := range yearFolders {
		if yf.MIMEType != models.MimeTypeFolder {
			continue
		}

		year := DetectYear(yf.Name)
		if year == 0 {
			log.Printf("crawl %s: can't detect year from folder %q, skipping", branch, yf.Name)
			continue
		}

		items, err := c.lister.ListChildren(ctx, yf.ID)
		if err != nil {
			log.Printf("crawl %s: list year folder %q: %v", branch, yf.Name, err)
			continue
		}

		for _, item := range items {
			if item.MIMEType == models.MimeTypeFolder {
				category := ClassifyCategory(item.Name)
				subFiles, err := c.lister.ListChildren(ctx, item.ID)
				if err != nil {
					log.Printf("crawl %s: list subfolder %q: %v", branch, item.Name, err)
					continue
				}
				for _, sf := range subFiles {
					if doc, ok := toSourceDocument(sf, branch, year, category); ok {
						docs = append(docs, doc)
					}
				}
				continue
			}

			// Direct file in the year folder: default category.
			if doc, ok := toSourceDocument(item, branch, year, models.CategoryNotes); ok {
				docs = append(docs, doc)
			}
		}
	}
	return docs, nil
}

func toSourceDocument(f models.RemoteFile, branch string, year int, category models.Category) (models.SourceDocument, bool) {
	if f.MIMEType == models.MimeTypeFolder {
		return models.SourceDocument{}, false
	}
	if _, ok := models.FormatForMIME(f.MIMEType, f.Name); !ok {
		log.Printf("crawl %s: unsupported type %q for %q, skipping", branch, f.MIMEType, f.Name)
		return models.SourceDocument{}, false
	}
	return models.SourceDocument{File: f, Branch: branch, Year: year, Category: category}, true
}

// DetectYear extracts the academic year from a folder name: the first
// digit in the name, accepted only if it falls in 1..4. Returns 0 when
// the year is undetermined.
func DetectYear(name string) int {
	for _, r := range name {
		if r >= '0' && r <= '9' {
			year := int(r - '0')
			if year >= 1 && year <= 4 {
				return year
			}
			return 0
		}
	}
	return 0
}

// ClassifyCategory guesses the document category from a subfolder name.
// Keyword precedence matters for names matching several keywords.
func ClassifyCategory(folderName string) models.Category {
	name := strings.ToLower(folderName)
	switch {
	case strings.Contains(name, "syllabus"):
		return models.CategorySyllabus
	case strings.Contains(name, "timetable") || strings.Contains(name, "schedule"):
		return models.CategoryTimetable
	case strings.Contains(name, "question") || strings.Contains(name, "exam") || strings.Contains(name, "paper"):
		return models.CategoryQuestionPaper
	case strings.Contains(name, "note"):
		return models.CategoryNotes
	case strings.Contains(name, "assignment"):
		return models.CategoryAssignment
	default:
		return models.CategoryNotes
	}
}
