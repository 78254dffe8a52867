package sendfox

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"sync"
	"time"
)

// Migrator copies every contact of a source list into a destination list.
// The copy is additive: source membership is kept, and a contact already in
// the destination is rewritten with an unchanged membership set, so re-runs
// converge.
type Migrator struct {
	Client     *Client
	SourceList int64
	DestList   int64
	BatchSize  int           // concurrent updates per batch; default 15
	BatchPause time.Duration // pause between batches; default 100ms
}

// Failure records one contact whose update did not succeed.
type Failure struct {
	ContactID int64  `json:"id"`
	Status    int    `json:"status,omitempty"`
	Detail    string `json:"error"`
}

// Result summarizes a migration run.
type Result struct {
	Total     int
	Succeeded int
	Failures  []Failure
}

// Run migrates the source list. A single contact's failure is recorded and
// the run continues; only failing to read the source list at all is returned
// as an error.
func (m *Migrator) Run(ctx context.Context) (*Result, error) {
	batchSize := m.BatchSize
	if batchSize <= 0 {
		batchSize = 15
	}
	pause := m.BatchPause
	if pause <= 0 {
		pause = 100 * time.Millisecond
	}

	contacts, err := m.Client.ListContacts(ctx, m.SourceList)
	if err != nil {
		return nil, err
	}

	res := &Result{Total: len(contacts)}
	var mu sync.Mutex

	for start := 0; start < len(contacts); start += batchSize {
		end := min(start+batchSize, len(contacts))

		var wg sync.WaitGroup
		for _, contact := range contacts[start:end] {
			wg.Add(1)
			go func() {
				defer wg.Done()
				err := m.Client.UpdateContact(ctx, contact.ID, contact.Email,
					unionLists(contact.ListIDs(), m.DestList))

				mu.Lock()
				defer mu.Unlock()
				if err == nil {
					res.Succeeded++
					return
				}
				f := Failure{ContactID: contact.ID, Detail: err.Error()}
				var apiErr *APIError
				if errors.As(err, &apiErr) {
					f.Status = apiErr.Status
					f.Detail = string(apiErr.Body)
				}
				res.Failures = append(res.Failures, f)
			}()
		}
		wg.Wait()

		if end < len(contacts) {
			select {
			case <-ctx.Done():
				slog.Warn("migration interrupted",
					"processed", end, "total", len(contacts))
				return res, ctx.Err()
			case <-time.After(pause):
			}
		}
	}
	return res, nil
}

// unionLists returns the contact's membership ids plus the destination id,
// deduplicated and sorted for stable payloads.
func unionLists(current []int64, dest int64) []int64 {
	set := make(map[int64]struct{}, len(current)+1)
	for _, id := range current {
		set[id] = struct{}{}
	}
	set[dest] = struct{}{}
	out := make([]int64, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
