package notion

import (
	"context"
	"fmt"
	"sort"

	"github.com/jomei/notionapi"
	"golang.org/x/time/rate"
)

// MaxChildrenPerRequest is Notion's cap on children in one append call.
const MaxChildrenPerRequest = 100

// BlockWriter appends page content.
type BlockWriter struct {
	blocks  BlockEditor
	limiter *rate.Limiter
}

func NewBlockWriter(blocks BlockEditor, limiter *rate.Limiter) *BlockWriter {
	return &BlockWriter{blocks: blocks, limiter: limiter}
}

// AppendChildren appends blocks under parent in request-sized chunks and
// returns the created blocks in order.
func (w *BlockWriter) AppendChildren(ctx context.Context, parent notionapi.BlockID, children []notionapi.Block) ([]notionapi.Block, error) {
	created := make([]notionapi.Block, 0, len(children))
	for start := 0; start < len(children); start += MaxChildrenPerRequest {
		end := min(start+MaxChildrenPerRequest, len(children))

		if err := wait(ctx, w.limiter); err != nil {
			return created, err
		}
		resp, err := w.blocks.AppendChildren(ctx, parent, &notionapi.AppendBlockChildrenRequest{
			Children: children[start:end],
		})
		if err != nil {
			return created, fmt.Errorf("append blocks %d-%d to %s: %w", start, end, parent, err)
		}
		created = append(created, resp.Results...)
	}

	if len(created) != len(children) {
		return created, fmt.Errorf("%w: sent %d, got %d", ErrIncompleteAppend, len(children), len(created))
	}
	return created, nil
}

// AppendGrandchildren nests each grandchild under the created parent at
// the same index. Returns the number appended.
func (w *BlockWriter) AppendGrandchildren(ctx context.Context, parents []notionapi.Block, grandchildren map[int]notionapi.Block) (int, error) {
	indexes := make([]int, 0, len(grandchildren))
	for i := range grandchildren {
		indexes = append(indexes, i)
	}
	sort.Ints(indexes)

	appended := 0
	for _, i := range indexes {
		if i < 0 || i >= len(parents) {
			return appended, fmt.Errorf("grandchild parent index %d out of range (%d parents)", i, len(parents))
		}
		parentID := parents[i].GetID()
		if parentID == "" {
			continue
		}

		if err := wait(ctx, w.limiter); err != nil {
			return appended, err
		}
		if _, err := w.blocks.AppendChildren(ctx, parentID, &notionapi.AppendBlockChildrenRequest{
			Children: []notionapi.Block{grandchildren[i]},
		}); err != nil {
			return appended, fmt.Errorf("append child to block %s: %w", parentID, err)
		}
		appended++
	}
	return appended, nil
}
