package notion

import (
	"context"
	"errors"

	"github.com/jomei/notionapi"
	"golang.org/x/time/rate"
)

//go:generate mockgen -destination=mocks/mock_notion.go -package=mocks weread2notion/internal/notion DatabaseQuerier,PageCreator,BlockEditor

// ErrIncompleteAppend is returned when Notion created fewer blocks than were sent.
var ErrIncompleteAppend = errors.New("notion: append returned fewer blocks than sent")

// DatabaseQuerier is satisfied by notionapi.Client.Database.
type DatabaseQuerier interface {
	Query(ctx context.Context, id notionapi.DatabaseID, req *notionapi.DatabaseQueryRequest) (*notionapi.DatabaseQueryResponse, error)
}

// PageCreator is satisfied by notionapi.Client.Page.
type PageCreator interface {
	Create(ctx context.Context, req *notionapi.PageCreateRequest) (*notionapi.Page, error)
}

// BlockEditor is satisfied by notionapi.Client.Block.
type BlockEditor interface {
	AppendChildren(ctx context.Context, id notionapi.BlockID, req *notionapi.AppendBlockChildrenRequest) (*notionapi.AppendBlockChildrenResponse, error)
	Delete(ctx context.Context, id notionapi.BlockID) (notionapi.Block, error)
}

// NewClient builds the API client shared by DatabaseManager and BlockWriter.
func NewClient(token string) *notionapi.Client {
	return notionapi.NewClient(notionapi.Token(token))
}

// NewLimiter paces Notion calls; rps <= 0 disables pacing.
func NewLimiter(rps int) *rate.Limiter {
	if rps <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Limit(rps), 1)
}

func wait(ctx context.Context, l *rate.Limiter) error {
	if l == nil {
		return nil
	}
	return l.Wait(ctx)
}
