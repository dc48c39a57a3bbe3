package notion

import (
	"weread2notion/internal/book"

	"github.com/jomei/notionapi"
)

const (
	tocHeading     = "目录"
	summaryHeading = "点评"
)

// Content is the block tree for one book page. Grandchildren are keyed by
// the index of their parent in Children, since parents only get ids once
// Notion has created them.
type Content struct {
	Children      []notionapi.Block
	Grandchildren map[int]notionapi.Block
}

// BuildContent lays out a book page: a table of contents and bookmarks
// grouped under chapter headings when chapters are known, a flat list of
// bookmarks otherwise, then the summary reviews.
func BuildContent(b *book.Book) Content {
	c := Content{Grandchildren: map[int]notionapi.Block{}}

	switch {
	case len(b.Chapters) > 0:
		c.Children = append(c.Children, headingBlock(1, tocHeading), tableOfContentsBlock())
		c.addChapters(b.Chapters, b.Bookmarks)
	case len(b.Bookmarks) > 0:
		for _, m := range b.Bookmarks {
			c.addBookmark(m)
		}
	}

	if len(b.Summary) > 0 {
		c.Children = append(c.Children, headingBlock(1, summaryHeading))
		for _, r := range b.Summary {
			c.Children = append(c.Children, calloutBlock(r.Content, r.Style, r.ColorStyle, r.ReviewID != ""))
		}
	}
	return c
}

func (c *Content) addChapters(chapters map[int]book.Chapter, marks []book.Bookmark) {
	for _, group := range groupByChapter(marks) {
		if ch, ok := chapters[group.uid]; ok {
			c.Children = append(c.Children, headingBlock(ch.Level, ch.Title))
		}
		for _, m := range group.marks {
			c.addBookmark(m)
		}
	}
}

// addBookmark appends the callout and, for a non-empty abstract, a quote
// to nest under it.
func (c *Content) addBookmark(m book.Bookmark) {
	c.Children = append(c.Children, calloutBlock(m.MarkText, m.Style, m.ColorStyle, m.IsNote()))
	if m.Abstract != "" {
		c.Grandchildren[len(c.Children)-1] = quoteBlock(m.Abstract)
	}
}

type chapterGroup struct {
	uid   int
	marks []book.Bookmark
}

// groupByChapter keeps chapters in order of first appearance.
func groupByChapter(marks []book.Bookmark) []chapterGroup {
	var groups []chapterGroup
	index := map[int]int{}
	for _, m := range marks {
		i, ok := index[m.ChapterUID]
		if !ok {
			i = len(groups)
			index[m.ChapterUID] = i
			groups = append(groups, chapterGroup{uid: m.ChapterUID})
		}
		groups[i].marks = append(groups[i].marks, m)
	}
	return groups
}
