package sync

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"weread2notion/internal/book"
	"weread2notion/internal/notion"
	"weread2notion/internal/platform/weread"

	"github.com/google/uuid"
	"github.com/jomei/notionapi"
)

type Config struct {
	DevMode bool
	// Rand drives dev sampling; nil seeds from the clock.
	Rand *rand.Rand
}

type WeReadClient interface {
	Connect(ctx context.Context) error
	Notebooks(ctx context.Context) ([]weread.Notebook, error)
}

type BookBuilder interface {
	Build(ctx context.Context, nb weread.Notebook) (*book.Book, error)
}

type PageStore interface {
	Ping(ctx context.Context) error
	DeleteExisting(ctx context.Context, bookID string) (int, error)
	CreateBookPage(ctx context.Context, b *book.Book) (notionapi.PageID, error)
}

type ContentWriter interface {
	AppendChildren(ctx context.Context, parent notionapi.BlockID, children []notionapi.Block) ([]notionapi.Block, error)
	AppendGrandchildren(ctx context.Context, parents []notionapi.Block, grandchildren map[int]notionapi.Block) (int, error)
}

type Service struct {
	weread  WeReadClient
	builder BookBuilder
	pages   PageStore
	writer  ContentWriter
	runRepo Repository
	cfg     Config
}

func NewService(wr WeReadClient, builder BookBuilder, pages PageStore, writer ContentWriter, runRepo Repository, cfg Config) *Service {
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{
		weread:  wr,
		builder: builder,
		pages:   pages,
		writer:  writer,
		runRepo: runRepo,
		cfg:     cfg,
	}
}

// Run syncs every notebook, one book at a time. Connection, Notion and
// notebook list failures abort the run; a failing book is logged and the
// run moves on, ending with ErrBooksFailed.
func (s *Service) Run(ctx context.Context) (run *Run, err error) {
	run = &Run{
		ID:        uuid.NewString(),
		Status:    StatusRunning,
		DevMode:   s.cfg.DevMode,
		StartedAt: time.Now(),
	}
	if rErr := s.runRepo.CreateRun(ctx, run); rErr != nil {
		return run, fmt.Errorf("create sync run: %w", rErr)
	}
	log.Printf("sync started run_id=%s dev=%t", run.ID, run.DevMode)

	defer func() {
		now := time.Now()
		run.FinishedAt = &now
		if err != nil && run.Error == "" {
			run.Error = err.Error()
		}

		if run.Error != "" {
			run.Status = StatusFailed
		} else {
			run.Status = StatusCompleted
		}
		// The run context may already be cancelled; the ledger write should still land.
		if updateErr := s.runRepo.UpdateRun(context.WithoutCancel(ctx), run); updateErr != nil {
			log.Printf("Failed to update sync run %s: %v", run.ID, updateErr)
		}
		log.Printf("sync finished run_id=%s status=%s fetched=%d synced=%d failed=%d blocks=%d elapsed=%s",
			run.ID, run.Status, run.BooksFetched, run.BooksSynced, run.BooksFailed, run.BlocksWritten,
			now.Sub(run.StartedAt).Round(time.Millisecond))
	}()

	if err := s.weread.Connect(ctx); err != nil {
		return run, fmt.Errorf("weread connection test: %w", err)
	}
	if err := s.pages.Ping(ctx); err != nil {
		return run, fmt.Errorf("notion connection test: %w", err)
	}

	notebooks, err := s.weread.Notebooks(ctx)
	if err != nil {
		return run, fmt.Errorf("fetch notebooks: %w", err)
	}
	if s.cfg.DevMode {
		sampled := Sample(notebooks, s.cfg.Rand)
		log.Printf("dev mode notebooks=%d sampled=%d", len(notebooks), len(sampled))
		notebooks = sampled
	}
	run.BooksFetched = len(notebooks)

	for i, nb := range notebooks {
		if err := ctx.Err(); err != nil {
			return run, fmt.Errorf("sync interrupted after %d of %d books: %w", i, len(notebooks), err)
		}

		log.Printf("sync book %d/%d book_id=%s title=%q", i+1, len(notebooks), nb.ID(), nb.Book.Title)
		pageID, blocks, err := s.syncBook(ctx, nb)
		if err != nil {
			run.BooksFailed++
			log.Printf("Failed to sync book %s: %v", nb.ID(), err)
			continue
		}
		run.BooksSynced++
		run.BlocksWritten += blocks
		if lErr := s.runRepo.LinkBookToRun(ctx, run.ID, nb.ID(), string(pageID)); lErr != nil {
			log.Printf("Failed to link book %s to run %s: %v", nb.ID(), run.ID, lErr)
		}
	}

	if run.BooksFailed > 0 {
		return run, fmt.Errorf("%w: %d of %d", ErrBooksFailed, run.BooksFailed, len(notebooks))
	}
	return run, nil
}

// syncBook replaces the book's Notion page and returns the new page id and
// the number of blocks written.
func (s *Service) syncBook(ctx context.Context, nb weread.Notebook) (notionapi.PageID, int, error) {
	b, err := s.builder.Build(ctx, nb)
	if err != nil {
		return "", 0, fmt.Errorf("build: %w", err)
	}

	if _, err := s.pages.DeleteExisting(ctx, b.ID); err != nil {
		return "", 0, err
	}
	pageID, err := s.pages.CreateBookPage(ctx, b)
	if err != nil {
		return "", 0, err
	}

	content := notion.BuildContent(b)
	created, err := s.writer.AppendChildren(ctx, notionapi.BlockID(pageID), content.Children)
	if err != nil {
		return pageID, len(created), err
	}
	nested, err := s.writer.AppendGrandchildren(ctx, created, content.Grandchildren)
	if err != nil {
		return pageID, len(created) + nested, err
	}

	log.Printf("synced book_id=%s page_id=%s bookmarks=%d blocks=%d", b.ID, pageID, b.BookmarkCount(), len(created)+nested)
	return pageID, len(created) + nested, nil
}
