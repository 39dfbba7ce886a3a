package batch

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"Whirligig/internal/blade"
	"Whirligig/internal/calc/metrics"
)

const (
	MaxItems = 1000
	Workers  = 8
)

var ErrNoItems = errors.New("no items")

type Item struct {
	Name       string           `json:"name"`
	Parameters blade.Parameters `json:"parameters"`
	// Error is set by ImportSheet for rows that could not be read.
	Error string `json:"error,omitempty"`
}

type Input struct {
	Items []Item `json:"items"`
}

type Row struct {
	Index      int                     `json:"index"`
	Name       string                  `json:"name"`
	Parameters blade.Parameters        `json:"parameters"`
	Metrics    *metrics.DerivedMetrics `json:"metrics,omitempty"`
	Error      string                  `json:"error,omitempty"`
}

type Output struct {
	Count  int   `json:"count"`
	Failed int   `json:"failed"`
	Rows   []Row `json:"rows"`
}

// Calculate evaluates every item with a bounded pool. A failing item is
// reported on its row and does not stop the others. Degenerate designs keep
// their metrics next to the error. The cache may be nil.
func Calculate(ctx context.Context, items []Item, cache *metrics.Cache) (Output, error) {
	if len(items) == 0 {
		return Output{}, ErrNoItems
	}
	if len(items) > MaxItems {
		return Output{}, fmt.Errorf("too many items: %d > %d", len(items), MaxItems)
	}

	rows := make([]Row, len(items))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(Workers)
	for i, item := range items {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			row := Row{Index: i, Name: item.Name, Parameters: item.Parameters}
			if item.Error != "" {
				row.Error = item.Error
				rows[i] = row
				return nil
			}
			m, err := cache.Calculate(item.Parameters)
			if err == nil || errors.Is(err, metrics.ErrDegenerate) {
				row.Metrics = &m
			}
			if err != nil {
				row.Error = err.Error()
			}
			rows[i] = row
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Output{}, err
	}

	out := Output{Count: len(rows), Rows: rows}
	for _, r := range rows {
		if r.Error != "" {
			out.Failed++
		}
	}
	return out, nil
}
