package book

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrMissingID is returned when a notebook entry carries no bookId.
	ErrMissingID = errors.New("book: missing bookId")
	// ErrInvalid wraps field validation failures.
	ErrInvalid = errors.New("book: invalid")
)

const (
	DefaultCategory = "未分类"
	StatusFinished  = "读完"
	StatusReading   = "在读"
)

// Book is everything synced to one Notion page. It is built once per run
// and not modified afterwards.
type Book struct {
	ID          string  `validate:"required"`
	Title       string  `validate:"required"`
	Author      string
	Cover       string  `validate:"omitempty,weburl"`
	Sort        *int64
	ISBN        string
	Rating      float64 `validate:"gte=0,lte=10"`
	Category    string
	Status      string
	ReadingTime int64 `validate:"gte=0"`
	Progress    int   `validate:"gte=0,lte=100"`
	FinishedAt  *time.Time
	LastReadAt  *time.Time

	Bookmarks []Bookmark
	Summary   []Review
	Chapters  map[int]Chapter
}

// BookmarkCount always matches the bookmark list.
func (b *Book) BookmarkCount() int {
	return len(b.Bookmarks)
}

// Bookmark is a highlight, or a note attached to a passage when ReviewID is set.
type Bookmark struct {
	ID         string
	ChapterUID int
	Range      string
	MarkText   string
	Style      *int
	ColorStyle *int
	ReviewID   string
	Abstract   string
}

// Position is the start offset encoded in Range ("start-end").
func (m Bookmark) Position() int {
	start, _, _ := strings.Cut(m.Range, "-")
	n, err := strconv.Atoi(strings.TrimSpace(start))
	if err != nil {
		return 0
	}
	return n
}

// IsNote reports whether the bookmark came from a user note rather than a highlight.
func (m Bookmark) IsNote() bool {
	return m.ReviewID != ""
}

// Review is a whole-book review shown in the summary section.
type Review struct {
	ReviewID   string
	Content    string
	Style      *int
	ColorStyle *int
}

type Chapter struct {
	UID   int
	Index int
	Title string
	Level int
}

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("weburl", validateWebURL)
}

func validateWebURL(fl validator.FieldLevel) bool {
	u, err := url.Parse(fl.Field().String())
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Validate checks the fields Notion needs before a page can be created.
func (b *Book) Validate() error {
	err := validate.Struct(b)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
	}
	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
}

// FormatReadingTime renders seconds as "N时M分", dropping zero parts.
func FormatReadingTime(seconds int64) string {
	if seconds <= 0 {
		return ""
	}
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60

	var b strings.Builder
	if hours > 0 {
		fmt.Fprintf(&b, "%d时", hours)
	}
	if minutes > 0 {
		fmt.Fprintf(&b, "%d分", minutes)
	}
	return b.String()
}
