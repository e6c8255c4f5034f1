package audit

import (
	"context"
	"database/sql"
	"fmt"
)

// Schema creates the table in which the Postgres recorder stores rejections
const Schema = `CREATE TABLE IF NOT EXISTS gap_rejection (
    id               uuid PRIMARY KEY,
    recorded_at      timestamptz NOT NULL,
    result           text NOT NULL,
    method           text NOT NULL,
    url              text NOT NULL,
    gap_auth         text NOT NULL DEFAULT '',
    remote_addr      text NOT NULL DEFAULT '',
    request_id       text NOT NULL DEFAULT '',
    signature_header text NOT NULL DEFAULT ''
)`

const insertRejection = `INSERT INTO gap_rejection (
    id, recorded_at, result, method, url, gap_auth, remote_addr, request_id, signature_header
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

// EnsureSchema creates the gap_rejection table if it does not already exist
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("failed to create gap_rejection table: %w", err)
	}
	return nil
}

// NewPostgresRecorder initializes a Recorder that inserts each rejection into the
// gap_rejection table
func NewPostgresRecorder(db *sql.DB) Recorder {
	return &postgresRecorder{db: db}
}

type postgresRecorder struct {
	db *sql.DB
}

func (p *postgresRecorder) Record(ctx context.Context, rejection Rejection) error {
	_, err := p.db.ExecContext(ctx, insertRejection,
		rejection.Id.String(),
		rejection.Timestamp,
		rejection.Result,
		rejection.Method,
		rejection.Url,
		rejection.GapAuth,
		rejection.RemoteAddr,
		rejection.RequestId,
		rejection.Header,
	)
	if err != nil {
		return fmt.Errorf("failed to insert rejection %s: %w", rejection.Id, err)
	}
	return nil
}

var _ Recorder = (*postgresRecorder)(nil)
