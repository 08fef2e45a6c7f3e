package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"revisit/internal/modules/review/domain"
	reviewout "revisit/internal/modules/review/port/out"
	apperrors "revisit/internal/platform/errors"
	"revisit/internal/platform/tx"
)

type SQLiteRecordStore struct {
	db *sql.DB
}

func NewSQLiteRecordStore(db *sql.DB) (reviewout.RecordStore, error) {
	store := &SQLiteRecordStore{db: db}
	if err := store.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *SQLiteRecordStore) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS proficiency (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  problem_id INTEGER NOT NULL UNIQUE REFERENCES problems(id) ON DELETE CASCADE,
  level INTEGER NOT NULL,
  last_submission_time TEXT NOT NULL,
  next_review_time TEXT NOT NULL,
  is_tracking INTEGER NOT NULL DEFAULT 1
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create proficiency table: %w", err)
	}
	return nil
}

const selectRecord = `SELECT problem_id, level, last_submission_time, next_review_time, is_tracking FROM proficiency`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (domain.Record, error) {
	var (
		rec        domain.Record
		last, next string
		tracking   int
	)
	if err := row.Scan(&rec.ProblemID, &rec.Level, &last, &next, &tracking); err != nil {
		return domain.Record{}, err
	}
	var err error
	if rec.LastSubmission, err = domain.ParseTimestamp(last); err != nil {
		return domain.Record{}, fmt.Errorf("problem %d last submission: %w", rec.ProblemID, err)
	}
	if rec.NextReview, err = domain.ParseTimestamp(next); err != nil {
		return domain.Record{}, fmt.Errorf("problem %d next review: %w", rec.ProblemID, err)
	}
	rec.Tracking = tracking != 0
	return rec, nil
}

func (s *SQLiteRecordStore) FindByProblemID(ctx context.Context, problemID int64) (domain.Record, error) {
	db := tx.Executor(ctx, s.db)
	rec, err := scanRecord(db.QueryRowContext(ctx, selectRecord+` WHERE problem_id = ?`, problemID))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Record{}, fmt.Errorf("%w: no proficiency record for problem %d", apperrors.ErrNotFound, problemID)
	}
	if err != nil {
		return domain.Record{}, fmt.Errorf("find proficiency %d: %w", problemID, err)
	}
	return rec, nil
}

func (s *SQLiteRecordStore) Save(ctx context.Context, rec domain.Record) error {
	const stmt = `
INSERT INTO proficiency (problem_id, level, last_submission_time, next_review_time, is_tracking)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(problem_id) DO UPDATE SET
  level=excluded.level,
  last_submission_time=excluded.last_submission_time,
  next_review_time=excluded.next_review_time,
  is_tracking=excluded.is_tracking;
`
	tracking := 0
	if rec.Tracking {
		tracking = 1
	}
	_, err := tx.Executor(ctx, s.db).ExecContext(ctx, stmt,
		rec.ProblemID,
		rec.Level,
		rec.LastSubmission.String(),
		rec.NextReview.String(),
		tracking,
	)
	if err != nil {
		return fmt.Errorf("save proficiency %d: %w", rec.ProblemID, err)
	}
	return nil
}

func (s *SQLiteRecordStore) List(ctx context.Context) ([]domain.Record, error) {
	rows, err := tx.Executor(ctx, s.db).QueryContext(ctx, selectRecord+` ORDER BY problem_id`)
	if err != nil {
		return nil, fmt.Errorf("list proficiency: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Record, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan proficiency: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate proficiency: %w", err)
	}
	return out, nil
}

func (s *SQLiteRecordStore) Reset(ctx context.Context) error {
	if _, err := tx.Executor(ctx, s.db).ExecContext(ctx, `DELETE FROM proficiency`); err != nil {
		return fmt.Errorf("reset proficiency: %w", err)
	}
	return nil
}
