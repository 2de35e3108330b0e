package storage

import (
	"context"
	"fmt"
)

// CallRecord is the durable trace of one provider attempt. The output log
// only keeps the last error per article; the audit table keeps every
// attempt, which is what you want when diagnosing a flaky provider after an
// overnight run.
//
// Expected table:
//
//	CREATE TABLE annotation_calls (
//	    call_id    text PRIMARY KEY,
//	    run_id     text NOT NULL,
//	    custom_id  text NOT NULL,
//	    provider   text NOT NULL,
//	    model      text NOT NULL,
//	    attempt    int  NOT NULL,
//	    status     text NOT NULL,
//	    error_type text,
//	    created_at timestamptz NOT NULL DEFAULT now()
//	);
type CallRecord struct {
	CallID    string
	RunID     string
	CustomID  string
	Provider  string
	Model     string
	Attempt   int
	Status    string
	ErrorType string
}

type AuditRepo struct {
	db *DB
}

func NewAuditRepo(db *DB) *AuditRepo {
	return &AuditRepo{db: db}
}

func (r *AuditRepo) Insert(ctx context.Context, rec CallRecord) error {
	_, err := r.db.Pool.Exec(ctx, `
INSERT INTO annotation_calls(call_id, run_id, custom_id, provider, model, attempt, status, error_type)
VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8,''))`,
		rec.CallID, rec.RunID, rec.CustomID, rec.Provider, rec.Model, rec.Attempt, rec.Status, rec.ErrorType)
	if err != nil {
		return fmt.Errorf("insert annotation call: %w", err)
	}
	return nil
}
