package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/fittrack/fittrack-api/internal/domain"
	"github.com/fittrack/fittrack-api/internal/store"
)

// ListParams narrows a list operation.
type ListParams struct {
	Search string
	Page   domain.PageRequest
}

func (p ListParams) listOptions() store.ListOptions {
	if !p.Page.Enabled() {
		return store.ListOptions{}
	}
	return store.ListOptions{Limit: p.Page.Limit, Offset: p.Page.Offset()}
}

// paginate loads one page and the total count concurrently. Without a page
// request it loads the whole list and skips the count.
func paginate[T any](
	ctx context.Context,
	params ListParams,
	count func(ctx context.Context) (int, error),
	list func(ctx context.Context, opts store.ListOptions) ([]T, error),
) (*domain.Page[T], error) {
	if !params.Page.Enabled() {
		items, err := list(ctx, store.ListOptions{})
		if err != nil {
			return nil, err
		}
		return domain.NewPage(items, params.Page, len(items)), nil
	}

	var (
		total int
		items []T
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		total, err = count(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		items, err = list(gctx, params.listOptions())
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return domain.NewPage(items, params.Page, total), nil
}
