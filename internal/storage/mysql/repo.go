package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"unicode/utf8"

	"cuenca_gateway/internal/domain"
)

const maxDetail = 512

func valStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// Repo stores the sweeper's audit trail.
type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

var _ domain.SweepLog = (*Repo)(nil)

// EnsureSchema creates the audit table when missing.
func (r *Repo) EnsureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, createHoldReleasesSQL)
	return err
}

func (r *Repo) Record(ctx context.Context, rec domain.SweepRecord) error {
	detail := rec.Detail
	if len(detail) > maxDetail {
		n := maxDetail
		// utf8mb4 rejects a split rune in strict mode
		for n > 0 && !utf8.RuneStart(detail[n]) {
			n--
		}
		detail = detail[:n]
	}
	_, err := r.db.ExecContext(ctx, insertHoldReleaseSQL,
		rec.RunID,
		rec.RelacionID,
		rec.ReservaID,
		rec.EspacioID,
		rec.Outcome,
		valStr(detail),
		rec.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert hold release %d: %w", rec.RelacionID, err)
	}
	return nil
}

// ListRecent returns the newest rows first.
func (r *Repo) ListRecent(ctx context.Context, limit int) ([]domain.SweepRecord, error) {
	rows, err := r.db.QueryContext(ctx, listHoldReleasesSQL, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.SweepRecord, 0, limit)
	for rows.Next() {
		var (
			rec    domain.SweepRecord
			detail sql.NullString
		)
		if err := rows.Scan(&rec.RunID, &rec.RelacionID, &rec.ReservaID, &rec.EspacioID,
			&rec.Outcome, &detail, &rec.CreatedAt); err != nil {
			return nil, err
		}
		rec.Detail = detail.String
		out = append(out, rec)
	}
	return out, rows.Err()
}
