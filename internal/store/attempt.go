package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
)

type attemptRepo struct {
	s *Store
}

func (r *attemptRepo) AppendAttempt(ctx context.Context, data AttemptData) (string, error) {
	seqNum, err := r.s.seq.Next(ctx)
	if err != nil {
		return "", fmt.Errorf("next sequence: %w", err)
	}

	responses := data.Responses
	if responses == nil {
		responses = map[string][]string{}
	}
	body, err := json.Marshal(responses)
	if err != nil {
		return "", fmt.Errorf("encode responses: %w", err)
	}

	id := uuid.NewString()
	insert := r.s.builder().Insert(attemptsTable.Name).
		Columns("id", "sequence", "bank_title", "source", "score", "total", "responses_json", "submitted_at").
		Values(id, seqNum, data.BankTitle, data.Source, data.Score, data.Total, string(body), time.Now().UTC())
	if err := r.s.exec(ctx, insert); err != nil {
		return "", fmt.Errorf("save attempt: %w", err)
	}
	return id, nil
}

func (r *attemptRepo) RecentAttempts(ctx context.Context, opts QueryOpts) ([]Attempt, error) {
	b := r.s.builder()
	sel := b.Select("id", "sequence", "bank_title", "source", "score", "total", "responses_json", "submitted_at").
		From(b.Table(attemptsTable.Name)).
		OrderBy(entsql.Desc("sequence"))
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}

	rows, err := r.s.query(ctx, sel)
	if err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}
	defer rows.Close()

	var out []Attempt
	for rows.Next() {
		var (
			a    Attempt
			body string
		)
		if err := rows.Scan(&a.ID, &a.Sequence, &a.BankTitle, &a.Source, &a.Score, &a.Total, &body, &a.SubmittedAt); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		if err := json.Unmarshal([]byte(body), &a.Responses); err != nil {
			return nil, fmt.Errorf("decode responses for %s: %w", a.ID, err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
