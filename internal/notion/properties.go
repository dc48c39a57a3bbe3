package notion

import (
	"time"
	"unicode/utf8"

	"weread2notion/internal/book"
	"weread2notion/internal/platform/weread"

	"github.com/jomei/notionapi"
)

// Property names of the target database.
const (
	PropBookName     = "BookName"
	PropBookID       = "BookId"
	PropISBN         = "ISBN"
	PropURL          = "URL"
	PropAuthor       = "Author"
	PropSort         = "Sort"
	PropRating       = "Rating"
	PropCover        = "Cover"
	PropCategory     = "Category"
	PropStatus       = "Status"
	PropReadingTime  = "ReadingTime"
	PropFinishedDate = "FinishedDate"
	PropUpdatedTime  = "UpdatedTime"
)

// Columns is every property the target database is expected to have.
var Columns = []string{
	PropBookName, PropBookID, PropISBN, PropURL, PropAuthor, PropSort, PropRating,
	PropCover, PropCategory, PropStatus, PropReadingTime, PropFinishedDate, PropUpdatedTime,
}

// maxTextLen is Notion's limit for one rich text object.
const maxTextLen = 2000

// Dates are written in the reader's zone.
var shanghai = time.FixedZone("Asia/Shanghai", 8*60*60)

// BookProperties maps a book onto the database columns. Optional columns
// are left out when the book has no value for them. Notion rejects a page
// naming any property the database lacks, so only Columns are written.
func BookProperties(b *book.Book, now time.Time) notionapi.Properties {
	category := b.Category
	if category == "" {
		category = book.DefaultCategory
	}

	props := notionapi.Properties{
		PropBookName: notionapi.TitleProperty{
			Type:  notionapi.PropertyTypeTitle,
			Title: richText(b.Title),
		},
		PropBookID: richTextProperty(b.ID),
		PropISBN:   richTextProperty(b.ISBN),
		PropAuthor: richTextProperty(b.Author),
		PropURL:    notionapi.URLProperty{Type: notionapi.PropertyTypeURL, URL: weread.ReaderURL(b.ID)},
		PropRating: notionapi.NumberProperty{Type: notionapi.PropertyTypeNumber, Number: b.Rating},
		PropCategory: notionapi.SelectProperty{
			Type:   notionapi.PropertyTypeSelect,
			Select: notionapi.Option{Name: category},
		},
		PropReadingTime: richTextProperty(book.FormatReadingTime(b.ReadingTime)),
		PropUpdatedTime: dateProperty(now),
	}

	if b.Sort != nil {
		props[PropSort] = notionapi.NumberProperty{Type: notionapi.PropertyTypeNumber, Number: float64(*b.Sort)}
	}
	if b.Cover != "" {
		props[PropCover] = notionapi.FilesProperty{
			Type: notionapi.PropertyTypeFiles,
			Files: []notionapi.File{{
				Name:     "Cover",
				Type:     notionapi.FileTypeExternal,
				External: &notionapi.FileObject{URL: b.Cover},
			}},
		}
	}
	if b.Status != "" {
		props[PropStatus] = notionapi.SelectProperty{
			Type:   notionapi.PropertyTypeSelect,
			Select: notionapi.Option{Name: b.Status},
		}
	}
	if b.FinishedAt != nil {
		props[PropFinishedDate] = dateProperty(*b.FinishedAt)
	}
	return props
}

func richTextProperty(s string) notionapi.RichTextProperty {
	return notionapi.RichTextProperty{
		Type:     notionapi.PropertyTypeRichText,
		RichText: richText(s),
	}
}

func dateProperty(t time.Time) notionapi.DateProperty {
	start := notionapi.Date(t.In(shanghai))
	return notionapi.DateProperty{
		Type: notionapi.PropertyTypeDate,
		Date: &notionapi.DateObject{Start: &start},
	}
}

// richText splits s into text objects of at most maxTextLen runes.
func richText(s string) []notionapi.RichText {
	if s == "" {
		return []notionapi.RichText{}
	}

	var out []notionapi.RichText
	for s != "" {
		cut := len(s)
		if utf8.RuneCountInString(s) > maxTextLen {
			cut = 0
			for i := 0; i < maxTextLen; i++ {
				_, size := utf8.DecodeRuneInString(s[cut:])
				cut += size
			}
		}
		out = append(out, notionapi.RichText{
			Type: notionapi.ObjectTypeText,
			Text: &notionapi.Text{Content: s[:cut]},
		})
		s = s[cut:]
	}
	return out
}
