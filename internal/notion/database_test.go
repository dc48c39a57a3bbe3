package notion_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"weread2notion/internal/book"
	"weread2notion/internal/notion"
	"weread2notion/internal/notion/mocks"

	"github.com/golang/mock/gomock"
	"github.com/jomei/notionapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDatabaseID = "db-123"

type fixture struct {
	databases *mocks.MockDatabaseQuerier
	pages     *mocks.MockPageCreator
	blocks    *mocks.MockBlockEditor
	manager   *notion.DatabaseManager
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)
	f := fixture{
		databases: mocks.NewMockDatabaseQuerier(ctrl),
		pages:     mocks.NewMockPageCreator(ctrl),
		blocks:    mocks.NewMockBlockEditor(ctrl),
	}
	f.manager = notion.NewDatabaseManager(testDatabaseID, f.databases, f.pages, f.blocks, nil)
	return f
}

func TestDatabaseManager_Ping(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		f := newFixture(t)
		f.databases.EXPECT().
			Query(gomock.Any(), notionapi.DatabaseID(testDatabaseID), &notionapi.DatabaseQueryRequest{PageSize: 1}).
			Return(&notionapi.DatabaseQueryResponse{}, nil)

		assert.NoError(t, f.manager.Ping(context.Background()))
	})

	t.Run("unauthorized", func(t *testing.T) {
		f := newFixture(t)
		f.databases.EXPECT().Query(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("401 unauthorized"))

		err := f.manager.Ping(context.Background())
		assert.Error(t, err)
		assert.Contains(t, err.Error(), testDatabaseID)
	})
}

func TestDatabaseManager_DeleteExisting(t *testing.T) {
	t.Run("deletes every match", func(t *testing.T) {
		f := newFixture(t)
		f.databases.EXPECT().
			Query(gomock.Any(), notionapi.DatabaseID(testDatabaseID), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ notionapi.DatabaseID, req *notionapi.DatabaseQueryRequest) (*notionapi.DatabaseQueryResponse, error) {
				filter, ok := req.Filter.(notionapi.PropertyFilter)
				require.True(t, ok)
				assert.Equal(t, notion.PropBookID, filter.Property)
				assert.Equal(t, "b1", filter.RichText.Equals)
				return &notionapi.DatabaseQueryResponse{Results: []notionapi.Page{{ID: "p1"}, {ID: "p2"}}}, nil
			})
		gomock.InOrder(
			f.blocks.EXPECT().Delete(gomock.Any(), notionapi.BlockID("p1")).Return(nil, nil),
			f.blocks.EXPECT().Delete(gomock.Any(), notionapi.BlockID("p2")).Return(nil, nil),
		)

		n, err := f.manager.DeleteExisting(context.Background(), "b1")
		require.NoError(t, err)
		assert.Equal(t, 2, n)
	})

	t.Run("no match", func(t *testing.T) {
		f := newFixture(t)
		f.databases.EXPECT().Query(gomock.Any(), gomock.Any(), gomock.Any()).Return(&notionapi.DatabaseQueryResponse{}, nil)

		n, err := f.manager.DeleteExisting(context.Background(), "b1")
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("delete fails", func(t *testing.T) {
		f := newFixture(t)
		f.databases.EXPECT().Query(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(&notionapi.DatabaseQueryResponse{Results: []notionapi.Page{{ID: "p1"}, {ID: "p2"}}}, nil)
		f.blocks.EXPECT().Delete(gomock.Any(), notionapi.BlockID("p1")).Return(nil, errors.New("boom"))

		n, err := f.manager.DeleteExisting(context.Background(), "b1")
		assert.Error(t, err)
		assert.Zero(t, n)
	})
}

func TestDatabaseManager_CreateBookPage(t *testing.T) {
	b := &book.Book{
		ID:     "3300035678",
		Title:  "三体",
		Author: "刘慈欣",
		Cover:  "https://cdn.weread.qq.com/cover.jpg",
	}

	t.Run("ok", func(t *testing.T) {
		f := newFixture(t)
		f.pages.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req *notionapi.PageCreateRequest) (*notionapi.Page, error) {
				assert.Equal(t, notionapi.ParentTypeDatabaseID, req.Parent.Type)
				assert.Equal(t, notionapi.DatabaseID(testDatabaseID), req.Parent.DatabaseID)
				require.NotNil(t, req.Icon)
				assert.Equal(t, b.Cover, req.Icon.External.URL)
				assert.Contains(t, req.Properties, notion.PropBookName)
				assert.Contains(t, req.Properties, notion.PropUpdatedTime)
				return &notionapi.Page{ID: "page-1"}, nil
			})

		id, err := f.manager.CreateBookPage(context.Background(), b)
		require.NoError(t, err)
		assert.Equal(t, notionapi.PageID("page-1"), id)
	})

	t.Run("no cover no icon", func(t *testing.T) {
		f := newFixture(t)
		noCover := *b
		noCover.Cover = ""
		f.pages.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req *notionapi.PageCreateRequest) (*notionapi.Page, error) {
				assert.Nil(t, req.Icon)
				return &notionapi.Page{ID: "page-2"}, nil
			})

		_, err := f.manager.CreateBookPage(context.Background(), &noCover)
		assert.NoError(t, err)
	})

	t.Run("create fails", func(t *testing.T) {
		f := newFixture(t)
		f.pages.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, errors.New("validation_error"))

		id, err := f.manager.CreateBookPage(context.Background(), b)
		assert.Error(t, err)
		assert.Empty(t, id)
	})
}

// schemaTransport answers page creation like Notion does for a database
// holding exactly notion.Columns.
type schemaTransport struct{}

func (schemaTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	var req struct {
		Properties map[string]json.RawMessage `json:"properties"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, err
	}
	known := map[string]bool{}
	for _, c := range notion.Columns {
		known[c] = true
	}

	status, body := http.StatusOK, `{"object":"page","id":"page-1","properties":{}}`
	for name := range req.Properties {
		if !known[name] {
			status = http.StatusBadRequest
			body = fmt.Sprintf(`{"object":"error","status":400,"code":"validation_error","message":"%s is not a property that exists."}`, name)
			break
		}
	}
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": {"application/json"}},
		Body:       io.NopCloser(bytes.NewBufferString(body)),
		Request:    r,
	}, nil
}

func TestDatabaseManager_CreateBookPage_MatchesDatabaseSchema(t *testing.T) {
	api := notionapi.NewClient("secret", notionapi.WithHTTPClient(&http.Client{Transport: schemaTransport{}}))
	m := notion.NewDatabaseManager(testDatabaseID, api.Database, api.Page, api.Block, nil)

	finished := mustTime(t, "2024-02-01T00:00:00Z")
	sortKey := int64(1700000000)
	b := &book.Book{
		ID:          "3300035678",
		Title:       "三体",
		Author:      "刘慈欣",
		Cover:       "https://cdn.weread.qq.com/cover.jpg",
		Sort:        &sortKey,
		Status:      book.StatusFinished,
		ReadingTime: 3600,
		Progress:    100,
		FinishedAt:  &finished,
		LastReadAt:  &finished,
	}

	id, err := m.CreateBookPage(context.Background(), b)
	require.NoError(t, err)
	assert.Equal(t, notionapi.PageID("page-1"), id)
}

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	v, err := time.Parse(time.RFC3339, s)
	require.NoError(t, err)
	return v
}
