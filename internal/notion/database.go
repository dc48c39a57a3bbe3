package notion

import (
	"context"
	"fmt"
	"log"
	"time"

	"weread2notion/internal/book"

	"github.com/jomei/notionapi"
	"golang.org/x/time/rate"
)

// DatabaseManager dedupes and creates book pages in one Notion database.
type DatabaseManager struct {
	databaseID notionapi.DatabaseID
	databases  DatabaseQuerier
	pages      PageCreator
	blocks     BlockEditor
	limiter    *rate.Limiter
	now        func() time.Time
}

func NewDatabaseManager(databaseID string, databases DatabaseQuerier, pages PageCreator, blocks BlockEditor, limiter *rate.Limiter) *DatabaseManager {
	return &DatabaseManager{
		databaseID: notionapi.DatabaseID(databaseID),
		databases:  databases,
		pages:      pages,
		blocks:     blocks,
		limiter:    limiter,
		now:        time.Now,
	}
}

// Ping runs a one-row query so a bad token or database id fails fast.
func (m *DatabaseManager) Ping(ctx context.Context) error {
	if err := wait(ctx, m.limiter); err != nil {
		return err
	}
	if _, err := m.databases.Query(ctx, m.databaseID, &notionapi.DatabaseQueryRequest{PageSize: 1}); err != nil {
		return fmt.Errorf("query notion database %s: %w", m.databaseID, err)
	}
	return nil
}

// DeleteExisting removes every page whose BookId matches bookID and
// returns how many were removed.
func (m *DatabaseManager) DeleteExisting(ctx context.Context, bookID string) (int, error) {
	if err := wait(ctx, m.limiter); err != nil {
		return 0, err
	}
	resp, err := m.databases.Query(ctx, m.databaseID, &notionapi.DatabaseQueryRequest{
		Filter: notionapi.PropertyFilter{
			Property: PropBookID,
			RichText: &notionapi.TextFilterCondition{Equals: bookID},
		},
	})
	if err != nil {
		return 0, fmt.Errorf("find existing pages for %s: %w", bookID, err)
	}

	deleted := 0
	for _, page := range resp.Results {
		if err := wait(ctx, m.limiter); err != nil {
			return deleted, err
		}
		if _, err := m.blocks.Delete(ctx, notionapi.BlockID(page.ID)); err != nil {
			return deleted, fmt.Errorf("delete page %s: %w", page.ID, err)
		}
		deleted++
	}
	if deleted > 0 {
		log.Printf("notion deleted pages=%d book_id=%s", deleted, bookID)
	}
	return deleted, nil
}

// CreateBookPage adds the book's page, without content blocks.
func (m *DatabaseManager) CreateBookPage(ctx context.Context, b *book.Book) (notionapi.PageID, error) {
	req := &notionapi.PageCreateRequest{
		Parent: notionapi.Parent{
			Type:       notionapi.ParentTypeDatabaseID,
			DatabaseID: m.databaseID,
		},
		Properties: BookProperties(b, m.now()),
	}
	if b.Cover != "" {
		req.Icon = &notionapi.Icon{
			Type:     notionapi.FileTypeExternal,
			External: &notionapi.FileObject{URL: b.Cover},
		}
	}

	if err := wait(ctx, m.limiter); err != nil {
		return "", err
	}
	page, err := m.pages.Create(ctx, req)
	if err != nil {
		return "", fmt.Errorf("create page for %s: %w", b.ID, err)
	}
	log.Printf("notion created page_id=%s book_id=%s title=%q", page.ID, b.ID, b.Title)
	return notionapi.PageID(page.ID), nil
}
