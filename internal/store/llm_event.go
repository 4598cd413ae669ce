package store

import (
	"context"
	"fmt"
	"sort"

	"github.com/abhisek/mastermind/ent"
	"github.com/abhisek/mastermind/ent/llmrequestevent"
	"github.com/abhisek/mastermind/ent/predicate"
)

// eventRepo implements EventRepo backed by ent and the global sequence counter.
type eventRepo struct {
	client *ent.Client
	seq    *sequenceCounter
}

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.client.LLMRequestEvent.Create().
		SetSequence(seqNum).
		SetProvider(data.Provider).
		SetModel(data.Model).
		SetPurpose(data.Purpose).
		SetInputTokens(data.InputTokens).
		SetOutputTokens(data.OutputTokens).
		SetLatencyMs(data.LatencyMs).
		SetSuccess(data.Success).
		SetErrorMessage(data.ErrorMessage).
		SetRequestBody(data.RequestBody).
		SetResponseBody(data.ResponseBody).
		Save(ctx)
	if err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}

	return nil
}

func (r *eventRepo) QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error) {
	q := r.client.LLMRequestEvent.Query().
		Where(llmPredicates(opts)...).
		Order(ent.Desc(llmrequestevent.FieldSequence))
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}

	rows, err := q.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("query LLM events: %w", err)
	}

	events := make([]LLMEvent, 0, len(rows))
	for _, row := range rows {
		events = append(events, entLLMEventToLLMEvent(row))
	}
	return events, nil
}

func (r *eventRepo) GetLLMEvent(ctx context.Context, id int) (*LLMEvent, error) {
	row, err := r.client.LLMRequestEvent.Get(ctx, id)
	if err != nil {
		if ent.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get LLM event %d: %w", id, err)
	}
	e := entLLMEventToLLMEvent(row)
	return &e, nil
}

func (r *eventRepo) LLMUsageByPurpose(ctx context.Context) ([]LLMUsage, error) {
	return r.usage(ctx, func(e *ent.LLMRequestEvent) LLMUsage {
		return LLMUsage{Purpose: e.Purpose}
	})
}

func (r *eventRepo) LLMUsageByModel(ctx context.Context) ([]LLMUsage, error) {
	return r.usage(ctx, func(e *ent.LLMRequestEvent) LLMUsage {
		return LLMUsage{Model: e.Model}
	})
}

// usage folds every event into buckets identified by keyOf. The log is
// local and small, so aggregating in Go keeps the query portable.
func (r *eventRepo) usage(ctx context.Context, keyOf func(*ent.LLMRequestEvent) LLMUsage) ([]LLMUsage, error) {
	rows, err := r.client.LLMRequestEvent.Query().All(ctx)
	if err != nil {
		return nil, fmt.Errorf("query LLM usage: %w", err)
	}

	type bucket struct {
		LLMUsage
		latency int64
	}
	buckets := map[LLMUsage]*bucket{}
	var order []LLMUsage
	for _, row := range rows {
		k := keyOf(row)
		b, ok := buckets[k]
		if !ok {
			b = &bucket{LLMUsage: k}
			buckets[k] = b
			order = append(order, k)
		}
		b.Calls++
		b.InputTokens += row.InputTokens
		b.OutputTokens += row.OutputTokens
		b.latency += row.LatencyMs
	}

	out := make([]LLMUsage, 0, len(order))
	for _, k := range order {
		b := buckets[k]
		u := b.LLMUsage
		u.AvgLatencyMs = b.latency / int64(b.Calls)
		out = append(out, u)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].InputTokens+out[i].OutputTokens > out[j].InputTokens+out[j].OutputTokens
	})
	return out, nil
}

func llmPredicates(opts QueryOpts) []predicate.LLMRequestEvent {
	var ps []predicate.LLMRequestEvent
	if opts.After > 0 {
		ps = append(ps, llmrequestevent.SequenceGT(opts.After))
	}
	if opts.Before > 0 {
		ps = append(ps, llmrequestevent.SequenceLT(opts.Before))
	}
	if !opts.From.IsZero() {
		ps = append(ps, llmrequestevent.TimestampGTE(opts.From))
	}
	if !opts.To.IsZero() {
		ps = append(ps, llmrequestevent.TimestampLTE(opts.To))
	}
	return ps
}

func entLLMEventToLLMEvent(e *ent.LLMRequestEvent) LLMEvent {
	return LLMEvent{
		ID:        e.ID,
		Sequence:  e.Sequence,
		Timestamp: e.Timestamp,
		LLMRequestEventData: LLMRequestEventData{
			Provider:     e.Provider,
			Model:        e.Model,
			Purpose:      e.Purpose,
			InputTokens:  e.InputTokens,
			OutputTokens: e.OutputTokens,
			LatencyMs:    e.LatencyMs,
			Success:      e.Success,
			ErrorMessage: e.ErrorMessage,
			RequestBody:  e.RequestBody,
			ResponseBody: e.ResponseBody,
		},
	}
}
