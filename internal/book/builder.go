package book

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"weread2notion/internal/platform/weread"
)

const (
	reviewTypeNote    = 1
	reviewTypeSummary = 4

	markedStatusFinished = 4
)

// Source is the part of the WeRead client a Builder reads from.
type Source interface {
	BookInfo(ctx context.Context, bookID string) (*weread.BookInfo, error)
	Reviews(ctx context.Context, bookID string) ([]weread.ReviewItem, error)
	Bookmarks(ctx context.Context, bookID string) ([]weread.Bookmark, error)
	Chapters(ctx context.Context, bookID string) ([]weread.Chapter, error)
	ReadInfo(ctx context.Context, bookID string) (*weread.ReadInfo, error)
}

type Builder struct {
	src Source
}

func NewBuilder(src Source) *Builder {
	return &Builder{src: src}
}

// Build assembles a Book for one notebook entry. Calls run one after
// another: info, reviews, bookmarks, chapters, read info. A failed review
// fetch is logged and the book is built without notes or summary.
func (b *Builder) Build(ctx context.Context, nb weread.Notebook) (*Book, error) {
	book, err := fromNotebook(nb)
	if err != nil {
		return nil, err
	}

	info, err := b.src.BookInfo(ctx, book.ID)
	if err != nil {
		return nil, err
	}
	applyInfo(book, info)

	var notes []Bookmark
	reviews, err := b.src.Reviews(ctx, book.ID)
	if err != nil {
		log.Printf("reviews unavailable book_id=%s: %v", book.ID, err)
	} else {
		book.Summary, notes = splitReviews(reviews)
	}

	marks, err := b.src.Bookmarks(ctx, book.ID)
	if err != nil {
		return nil, err
	}
	book.Bookmarks = sortBookmarks(append(convertBookmarks(marks), notes...))

	chapters, err := b.src.Chapters(ctx, book.ID)
	if err != nil {
		return nil, err
	}
	book.Chapters = indexChapters(chapters)
	if len(book.Chapters) == 0 {
		log.Printf("no chapter data book_id=%s", book.ID)
	}

	readInfo, err := b.src.ReadInfo(ctx, book.ID)
	if err != nil {
		return nil, err
	}
	applyReadInfo(book, readInfo)

	if err := book.Validate(); err != nil {
		return nil, fmt.Errorf("book %s: %w", book.ID, err)
	}
	return book, nil
}

func fromNotebook(nb weread.Notebook) (*Book, error) {
	id := nb.ID()
	if id == "" {
		return nil, ErrMissingID
	}

	category := DefaultCategory
	if len(nb.Book.Categories) > 0 && nb.Book.Categories[0].Title != "" {
		category = nb.Book.Categories[0].Title
	}

	return &Book{
		ID:       id,
		Title:    nb.Book.Title,
		Author:   nb.Book.Author,
		Cover:    nb.Book.Cover,
		Sort:     nb.SortKey(),
		Category: category,
	}, nil
}

func applyInfo(book *Book, info *weread.BookInfo) {
	if info == nil {
		return
	}
	book.ISBN = info.ISBN
	book.Rating = float64(info.NewRating) / 1000
	if book.Title == "" {
		book.Title = info.Title
	}
	if book.Author == "" {
		book.Author = info.Author
	}
	if book.Cover == "" {
		book.Cover = info.Cover
	}
}

// splitReviews separates whole-book reviews from notes on a passage.
func splitReviews(items []weread.ReviewItem) ([]Review, []Bookmark) {
	var summary []Review
	var notes []Bookmark
	for _, it := range items {
		r := it.Review
		id := r.ReviewID
		if id == "" {
			id = it.ReviewID
		}
		switch r.Type {
		case reviewTypeSummary:
			summary = append(summary, Review{
				ReviewID:   id,
				Content:    r.Content,
				Style:      it.Style,
				ColorStyle: it.ColorStyle,
			})
		case reviewTypeNote:
			notes = append(notes, Bookmark{
				ID:         id,
				ChapterUID: uidOrDefault(r.ChapterUID),
				Range:      r.Range,
				MarkText:   r.Content,
				ReviewID:   id,
				Abstract:   r.Abstract,
			})
		}
	}
	return summary, notes
}

func convertBookmarks(marks []weread.Bookmark) []Bookmark {
	out := make([]Bookmark, 0, len(marks))
	for _, m := range marks {
		out = append(out, Bookmark{
			ID:         m.BookmarkID,
			ChapterUID: uidOrDefault(m.ChapterUID),
			Range:      m.Range,
			MarkText:   m.MarkText,
			Style:      m.Style,
			ColorStyle: m.ColorStyle,
		})
	}
	return out
}

// sortBookmarks orders by chapter, then by position inside the chapter.
func sortBookmarks(marks []Bookmark) []Bookmark {
	sort.SliceStable(marks, func(i, j int) bool {
		if marks[i].ChapterUID != marks[j].ChapterUID {
			return marks[i].ChapterUID < marks[j].ChapterUID
		}
		return marks[i].Position() < marks[j].Position()
	})
	return marks
}

func indexChapters(chapters []weread.Chapter) map[int]Chapter {
	out := make(map[int]Chapter, len(chapters))
	for _, c := range chapters {
		if c.ChapterUID == nil {
			continue
		}
		out[*c.ChapterUID] = Chapter{
			UID:   *c.ChapterUID,
			Index: c.ChapterIdx,
			Title: c.Title,
			Level: c.Level,
		}
	}
	return out
}

func applyReadInfo(book *Book, ri *weread.ReadInfo) {
	if ri == nil {
		return
	}

	book.Status = StatusReading
	if ri.MarkedStatus == markedStatusFinished || ri.Book.FinishTime > 0 {
		book.Status = StatusFinished
	}

	book.ReadingTime = ri.ReadingTime
	if book.ReadingTime == 0 {
		book.ReadingTime = ri.Book.ReadingTime
	}
	book.Progress = ri.Book.Progress

	switch {
	case ri.FinishedDate != nil && *ri.FinishedDate > 0:
		book.FinishedAt = unixPtr(*ri.FinishedDate)
	case ri.Book.FinishTime > 0:
		book.FinishedAt = unixPtr(ri.Book.FinishTime)
	}
	if ri.Book.UpdateTime > 0 {
		book.LastReadAt = unixPtr(ri.Book.UpdateTime)
	}
}

func uidOrDefault(uid *int) int {
	if uid == nil {
		return 1
	}
	return *uid
}

func unixPtr(sec int64) *time.Time {
	t := time.Unix(sec, 0)
	return &t
}
