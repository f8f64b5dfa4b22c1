package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

// eventRepo implements EventRepo with ent's SQL builders.
type eventRepo struct {
	db      *sql.DB
	dialect string
}

var llmEventColumns = []string{
	"id", "timestamp", "provider", "model", "purpose",
	"input_tokens", "output_tokens", "latency_ms", "success",
	"error_message", "request_body", "response_body",
}

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	query, args := entsql.Dialect(r.dialect).
		Insert(llmEventsTable).
		Columns(llmEventColumns[1:]...).
		Values(
			now(),
			data.Provider,
			data.Model,
			data.Purpose,
			data.InputTokens,
			data.OutputTokens,
			data.LatencyMs,
			data.Success,
			data.ErrorMessage,
			data.RequestBody,
			data.ResponseBody,
		).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error) {
	sel := entsql.Dialect(r.dialect).
		Select(llmEventColumns...).
		From(entsql.Table(llmEventsTable)).
		OrderBy(entsql.Desc("id"))

	var preds []*entsql.Predicate
	if opts.Purpose != "" {
		preds = append(preds, entsql.EQ("purpose", opts.Purpose))
	}
	if !opts.From.IsZero() {
		preds = append(preds, entsql.GTE("timestamp", opts.From))
	}
	if len(preds) > 0 {
		sel.Where(entsql.And(preds...))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}
	query, args := sel.Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query LLM events: %w", err)
	}
	defer rows.Close()

	var out []LLMEvent
	for rows.Next() {
		e, err := scanLLMEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}

func (r *eventRepo) GetLLMEvent(ctx context.Context, id int) (*LLMEvent, error) {
	query, args := entsql.Dialect(r.dialect).
		Select(llmEventColumns...).
		From(entsql.Table(llmEventsTable)).
		Where(entsql.EQ("id", id)).
		Query()

	e, err := scanLLMEvent(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return e, err
}

func (r *eventRepo) LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error) {
	query, args := entsql.Dialect(r.dialect).
		Select(
			"purpose",
			entsql.As(entsql.Count("*"), "calls"),
			entsql.As("CAST(SUM(input_tokens) AS BIGINT)", "input_tokens"),
			entsql.As("CAST(SUM(output_tokens) AS BIGINT)", "output_tokens"),
			entsql.As("CAST(AVG(latency_ms) AS BIGINT)", "avg_latency_ms"),
		).
		From(entsql.Table(llmEventsTable)).
		GroupBy("purpose").
		OrderBy("purpose").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query usage by purpose: %w", err)
	}
	defer rows.Close()

	var out []PurposeUsage
	for rows.Next() {
		var u PurposeUsage
		if err := rows.Scan(&u.Purpose, &u.Calls, &u.InputTokens, &u.OutputTokens, &u.AvgLatencyMs); err != nil {
			return nil, fmt.Errorf("scan purpose usage: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *eventRepo) LLMUsageByModel(ctx context.Context) ([]ModelUsage, error) {
	query, args := entsql.Dialect(r.dialect).
		Select(
			"model",
			entsql.As(entsql.Count("*"), "calls"),
			entsql.As("CAST(SUM(input_tokens) AS BIGINT)", "input_tokens"),
			entsql.As("CAST(SUM(output_tokens) AS BIGINT)", "output_tokens"),
		).
		From(entsql.Table(llmEventsTable)).
		GroupBy("model").
		OrderBy("model").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query usage by model: %w", err)
	}
	defer rows.Close()

	var out []ModelUsage
	for rows.Next() {
		var u ModelUsage
		if err := rows.Scan(&u.Model, &u.Calls, &u.InputTokens, &u.OutputTokens); err != nil {
			return nil, fmt.Errorf("scan model usage: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLLMEvent(row rowScanner) (*LLMEvent, error) {
	var e LLMEvent
	err := row.Scan(
		&e.ID,
		&e.Timestamp,
		&e.Provider,
		&e.Model,
		&e.Purpose,
		&e.InputTokens,
		&e.OutputTokens,
		&e.LatencyMs,
		&e.Success,
		&e.ErrorMessage,
		&e.RequestBody,
		&e.ResponseBody,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan LLM event: %w", err)
	}
	return &e, nil
}
