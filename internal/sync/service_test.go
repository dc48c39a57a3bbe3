package sync

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"weread2notion/internal/book"
	"weread2notion/internal/platform/weread"

	"github.com/jomei/notionapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockWeRead struct {
	mock.Mock
}

func (m *mockWeRead) Connect(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *mockWeRead) Notebooks(ctx context.Context) ([]weread.Notebook, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]weread.Notebook), args.Error(1)
}

type mockBuilder struct {
	mock.Mock
}

func (m *mockBuilder) Build(ctx context.Context, nb weread.Notebook) (*book.Book, error) {
	args := m.Called(ctx, nb)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*book.Book), args.Error(1)
}

type mockPages struct {
	mock.Mock
}

func (m *mockPages) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *mockPages) DeleteExisting(ctx context.Context, bookID string) (int, error) {
	args := m.Called(ctx, bookID)
	return args.Int(0), args.Error(1)
}

func (m *mockPages) CreateBookPage(ctx context.Context, b *book.Book) (notionapi.PageID, error) {
	args := m.Called(ctx, b)
	return args.Get(0).(notionapi.PageID), args.Error(1)
}

type mockWriter struct {
	mock.Mock
}

func (m *mockWriter) AppendChildren(ctx context.Context, parent notionapi.BlockID, children []notionapi.Block) ([]notionapi.Block, error) {
	args := m.Called(ctx, parent, children)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]notionapi.Block), args.Error(1)
}

func (m *mockWriter) AppendGrandchildren(ctx context.Context, parents []notionapi.Block, grandchildren map[int]notionapi.Block) (int, error) {
	args := m.Called(ctx, parents, grandchildren)
	return args.Int(0), args.Error(1)
}

type mockRunRepo struct {
	mock.Mock
}

func (m *mockRunRepo) CreateRun(ctx context.Context, run *Run) error {
	args := m.Called(ctx, run)
	return args.Error(0)
}

func (m *mockRunRepo) UpdateRun(ctx context.Context, run *Run) error {
	args := m.Called(ctx, run)
	return args.Error(0)
}

func (m *mockRunRepo) LinkBookToRun(ctx context.Context, runID, bookID, pageID string) error {
	args := m.Called(ctx, runID, bookID, pageID)
	return args.Error(0)
}

func notebook(id, title string) weread.Notebook {
	return weread.Notebook{BookID: id, Book: weread.NotebookBook{BookID: id, Title: title}}
}

func builtBook(id string) *book.Book {
	return &book.Book{
		ID:        id,
		Title:     "title " + id,
		Author:    "author",
		Bookmarks: []book.Bookmark{{ID: id + "-m1", MarkText: "text", Abstract: "abstract"}},
	}
}

func createdBlocks(n int) []notionapi.Block {
	out := make([]notionapi.Block, n)
	for i := range out {
		out[i] = &notionapi.CalloutBlock{BasicBlock: notionapi.BasicBlock{ID: "blk"}}
	}
	return out
}

type deps struct {
	weread  *mockWeRead
	builder *mockBuilder
	pages   *mockPages
	writer  *mockWriter
	runs    *mockRunRepo
}

func newDeps() deps {
	return deps{
		weread:  new(mockWeRead),
		builder: new(mockBuilder),
		pages:   new(mockPages),
		writer:  new(mockWriter),
		runs:    new(mockRunRepo),
	}
}

func (d deps) service(cfg Config) *Service {
	return NewService(d.weread, d.builder, d.pages, d.writer, d.runs, cfg)
}

func (d deps) expectBookSynced(id string) {
	b := builtBook(id)
	pageID := notionapi.PageID("page-" + id)
	d.builder.On("Build", mock.Anything, mock.MatchedBy(func(nb weread.Notebook) bool { return nb.ID() == id })).Return(b, nil)
	d.pages.On("DeleteExisting", mock.Anything, id).Return(1, nil)
	d.pages.On("CreateBookPage", mock.Anything, b).Return(pageID, nil)
	d.writer.On("AppendChildren", mock.Anything, notionapi.BlockID(pageID), mock.Anything).Return(createdBlocks(1), nil)
	d.writer.On("AppendGrandchildren", mock.Anything, mock.Anything, mock.Anything).Return(1, nil)
	d.runs.On("LinkBookToRun", mock.Anything, mock.Anything, id, string(pageID)).Return(nil)
}

func TestService_Run(t *testing.T) {
	ctx := context.Background()

	t.Run("syncs every notebook", func(t *testing.T) {
		d := newDeps()
		d.runs.On("CreateRun", ctx, mock.MatchedBy(func(run *Run) bool {
			return run.Status == StatusRunning && run.ID != ""
		})).Return(nil)
		d.runs.On("UpdateRun", mock.Anything, mock.MatchedBy(func(run *Run) bool {
			return run.Status == StatusCompleted && run.FinishedAt != nil
		})).Return(nil)
		d.weread.On("Connect", ctx).Return(nil)
		d.pages.On("Ping", ctx).Return(nil)
		d.weread.On("Notebooks", ctx).Return([]weread.Notebook{notebook("b1", "one"), notebook("b2", "two")}, nil)
		d.expectBookSynced("b1")
		d.expectBookSynced("b2")

		run, err := d.service(Config{}).Run(ctx)
		require.NoError(t, err)
		assert.Equal(t, StatusCompleted, run.Status)
		assert.Equal(t, 2, run.BooksFetched)
		assert.Equal(t, 2, run.BooksSynced)
		assert.Zero(t, run.BooksFailed)
		assert.Equal(t, 4, run.BlocksWritten)

		d.runs.AssertExpectations(t)
		d.pages.AssertExpectations(t)
		d.writer.AssertNumberOfCalls(t, "AppendChildren", 2)
	})

	t.Run("connection test fails", func(t *testing.T) {
		d := newDeps()
		d.runs.On("CreateRun", ctx, mock.Anything).Return(nil)
		d.runs.On("UpdateRun", mock.Anything, mock.MatchedBy(func(run *Run) bool {
			return run.Status == StatusFailed && run.Error != ""
		})).Return(nil)
		d.weread.On("Connect", ctx).Return(weread.ErrUnauthorized)

		run, err := d.service(Config{}).Run(ctx)
		assert.ErrorIs(t, err, weread.ErrUnauthorized)
		assert.Equal(t, StatusFailed, run.Status)
		d.pages.AssertNotCalled(t, "Ping", mock.Anything)
		d.weread.AssertNotCalled(t, "Notebooks", mock.Anything)
	})

	t.Run("notion rejected", func(t *testing.T) {
		d := newDeps()
		d.runs.On("CreateRun", ctx, mock.Anything).Return(nil)
		d.runs.On("UpdateRun", mock.Anything, mock.Anything).Return(nil)
		d.weread.On("Connect", ctx).Return(nil)
		d.pages.On("Ping", ctx).Return(errors.New("unauthorized"))

		_, err := d.service(Config{}).Run(ctx)
		assert.Error(t, err)
		d.weread.AssertNotCalled(t, "Notebooks", mock.Anything)
	})

	t.Run("notebook list fails", func(t *testing.T) {
		d := newDeps()
		d.runs.On("CreateRun", ctx, mock.Anything).Return(nil)
		d.runs.On("UpdateRun", mock.Anything, mock.Anything).Return(nil)
		d.weread.On("Connect", ctx).Return(nil)
		d.pages.On("Ping", ctx).Return(nil)
		d.weread.On("Notebooks", ctx).Return(nil, errors.New("timeout"))

		run, err := d.service(Config{}).Run(ctx)
		assert.Error(t, err)
		assert.Contains(t, run.Error, "fetch notebooks")
	})

	t.Run("failed book does not stop the run", func(t *testing.T) {
		d := newDeps()
		d.runs.On("CreateRun", ctx, mock.Anything).Return(nil)
		d.runs.On("UpdateRun", mock.Anything, mock.MatchedBy(func(run *Run) bool {
			return run.Status == StatusFailed
		})).Return(nil)
		d.weread.On("Connect", ctx).Return(nil)
		d.pages.On("Ping", ctx).Return(nil)
		d.weread.On("Notebooks", ctx).Return([]weread.Notebook{notebook("bad", "broken"), notebook("b2", "two")}, nil)
		d.builder.On("Build", mock.Anything, mock.MatchedBy(func(nb weread.Notebook) bool { return nb.ID() == "bad" })).
			Return(nil, book.ErrInvalid)
		d.expectBookSynced("b2")

		run, err := d.service(Config{}).Run(ctx)
		assert.ErrorIs(t, err, ErrBooksFailed)
		assert.Equal(t, 1, run.BooksSynced)
		assert.Equal(t, 1, run.BooksFailed)
		d.pages.AssertNotCalled(t, "DeleteExisting", mock.Anything, "bad")
	})

	t.Run("ledger link failure is not fatal", func(t *testing.T) {
		d := newDeps()
		d.runs.On("CreateRun", ctx, mock.Anything).Return(nil)
		d.runs.On("UpdateRun", mock.Anything, mock.Anything).Return(nil)
		d.weread.On("Connect", ctx).Return(nil)
		d.pages.On("Ping", ctx).Return(nil)
		d.weread.On("Notebooks", ctx).Return([]weread.Notebook{notebook("b1", "one")}, nil)

		b := builtBook("b1")
		d.builder.On("Build", mock.Anything, mock.Anything).Return(b, nil)
		d.pages.On("DeleteExisting", mock.Anything, "b1").Return(0, nil)
		d.pages.On("CreateBookPage", mock.Anything, b).Return(notionapi.PageID("p1"), nil)
		d.writer.On("AppendChildren", mock.Anything, mock.Anything, mock.Anything).Return(createdBlocks(1), nil)
		d.writer.On("AppendGrandchildren", mock.Anything, mock.Anything, mock.Anything).Return(1, nil)
		d.runs.On("LinkBookToRun", mock.Anything, mock.Anything, "b1", "p1").Return(errors.New("db down"))

		run, err := d.service(Config{}).Run(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, run.BooksSynced)
	})

	t.Run("create run fails", func(t *testing.T) {
		d := newDeps()
		d.runs.On("CreateRun", ctx, mock.Anything).Return(errors.New("db down"))

		_, err := d.service(Config{}).Run(ctx)
		assert.Error(t, err)
		d.weread.AssertNotCalled(t, "Connect", mock.Anything)
		d.runs.AssertNotCalled(t, "UpdateRun", mock.Anything, mock.Anything)
	})

	t.Run("cancelled context stops between books", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		d := newDeps()
		d.runs.On("CreateRun", mock.Anything, mock.Anything).Return(nil)
		d.runs.On("UpdateRun", mock.Anything, mock.Anything).Return(nil)
		d.weread.On("Connect", mock.Anything).Return(nil)
		d.pages.On("Ping", mock.Anything).Return(nil)
		d.weread.On("Notebooks", mock.Anything).Return([]weread.Notebook{notebook("b1", "one"), notebook("b2", "two")}, nil)
		b := builtBook("b1")
		d.builder.On("Build", mock.Anything, mock.Anything).Return(b, nil)
		d.pages.On("DeleteExisting", mock.Anything, "b1").Return(0, nil)
		d.pages.On("CreateBookPage", mock.Anything, b).Return(notionapi.PageID("p1"), nil)
		d.writer.On("AppendChildren", mock.Anything, mock.Anything, mock.Anything).Return(createdBlocks(1), nil)
		d.writer.On("AppendGrandchildren", mock.Anything, mock.Anything, mock.Anything).Return(1, nil)
		d.runs.On("LinkBookToRun", mock.Anything, mock.Anything, "b1", "p1").
			Run(func(mock.Arguments) { cancel() }).Return(nil)

		run, err := d.service(Config{}).Run(cctx)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, run.BooksSynced)
		d.builder.AssertNumberOfCalls(t, "Build", 1)
	})

	t.Run("dev mode samples", func(t *testing.T) {
		d := newDeps()
		d.runs.On("CreateRun", ctx, mock.MatchedBy(func(run *Run) bool { return run.DevMode })).Return(nil)
		d.runs.On("UpdateRun", mock.Anything, mock.Anything).Return(nil)
		d.weread.On("Connect", ctx).Return(nil)
		d.pages.On("Ping", ctx).Return(nil)

		var notebooks []weread.Notebook
		for i := 0; i < 50; i++ {
			id := string(rune('a'+i%26)) + string(rune('a'+i/26))
			notebooks = append(notebooks, notebook(id, id))
		}
		d.weread.On("Notebooks", ctx).Return(notebooks, nil)
		d.builder.On("Build", mock.Anything, mock.Anything).Return(nil, errors.New("skip"))

		run, _ := d.service(Config{DevMode: true, Rand: rand.New(rand.NewSource(1))}).Run(ctx)
		assert.Equal(t, devLatest+devRandom, run.BooksFetched)
		d.builder.AssertNumberOfCalls(t, "Build", devLatest+devRandom)
	})
}
