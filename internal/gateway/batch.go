package gateway

import (
	"context"
	"fmt"
	"strings"

	"github.com/rejectlist/rejectdesk/internal/domain/client"
)

// RowOutcome records what happened to one row of a batch save.
type RowOutcome struct {
	Index   int
	Record  client.Client
	Created bool
	Err     error
}

// BatchResult summarizes a batch save. Rows fail independently; one bad
// row never stops the rest.
type BatchResult struct {
	Outcomes []RowOutcome
}

// Created counts rows that produced new records.
func (r BatchResult) Created() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Err == nil && o.Created {
			n++
		}
	}
	return n
}

// Updated counts rows that overwrote existing records.
func (r BatchResult) Updated() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Err == nil && !o.Created {
			n++
		}
	}
	return n
}

// Failed returns the outcomes that errored.
func (r BatchResult) Failed() []RowOutcome {
	var out []RowOutcome
	for _, o := range r.Outcomes {
		if o.Err != nil {
			out = append(out, o)
		}
	}
	return out
}

// SaveBatch persists a slice of records one by one: rows with an ID are
// updated, the rest created. Rows without a name are rejected before any
// network call.
func (g *Gateway) SaveBatch(ctx context.Context, rows []client.Client) BatchResult {
	var res BatchResult
	for i, rec := range rows {
		outcome := RowOutcome{Index: i}
		if strings.TrimSpace(rec.Name) == "" {
			outcome.Err = fmt.Errorf("row %d: name is required", i+1)
			res.Outcomes = append(res.Outcomes, outcome)
			continue
		}

		var saved client.Client
		var err error
		if rec.ID != "" {
			saved, err = g.Update(ctx, rec)
		} else {
			saved, err = g.Create(ctx, rec)
			outcome.Created = true
		}
		if err != nil {
			outcome.Err = fmt.Errorf("row %d: %w", i+1, err)
			outcome.Created = false
		} else {
			outcome.Record = saved
		}
		res.Outcomes = append(res.Outcomes, outcome)
	}
	return res
}
