package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"revisit/internal/modules/problem/domain"
	problemout "revisit/internal/modules/problem/port/out"
	apperrors "revisit/internal/platform/errors"
	"revisit/internal/platform/tx"
)

type SQLiteProblemStore struct {
	db *sql.DB
}

func NewSQLiteProblemStore(db *sql.DB) (problemout.ProblemStore, error) {
	store := &SQLiteProblemStore{db: db}
	if err := store.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *SQLiteProblemStore) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS problems (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  question_id TEXT NOT NULL,
  title TEXT NOT NULL,
  title_slug TEXT NOT NULL UNIQUE,
  difficulty TEXT NOT NULL,
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS tags (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  slug TEXT NOT NULL UNIQUE
);
CREATE TABLE IF NOT EXISTS problem_tags (
  problem_id INTEGER NOT NULL REFERENCES problems(id) ON DELETE CASCADE,
  tag_id INTEGER NOT NULL REFERENCES tags(id) ON DELETE CASCADE,
  PRIMARY KEY (problem_id, tag_id)
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create problem tables: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

const selectProblem = `SELECT id, question_id, title, title_slug, difficulty, created_at, updated_at FROM problems`

func scanProblem(row rowScanner) (domain.Problem, error) {
	var (
		p                    domain.Problem
		difficulty           string
		createdAt, updatedAt string
	)
	if err := row.Scan(&p.ID, &p.QuestionID, &p.Title, &p.Slug, &difficulty, &createdAt, &updatedAt); err != nil {
		return domain.Problem{}, err
	}
	p.Difficulty = domain.Difficulty(difficulty)
	p.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	p.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return p, nil
}

func (s *SQLiteProblemStore) FindBySlug(ctx context.Context, slug string) (domain.Problem, error) {
	return s.findOne(ctx, selectProblem+` WHERE title_slug = ?`, slug)
}

func (s *SQLiteProblemStore) FindByID(ctx context.Context, id int64) (domain.Problem, error) {
	return s.findOne(ctx, selectProblem+` WHERE id = ?`, id)
}

func (s *SQLiteProblemStore) findOne(ctx context.Context, query string, key any) (domain.Problem, error) {
	db := tx.Executor(ctx, s.db)
	p, err := scanProblem(db.QueryRowContext(ctx, query, key))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Problem{}, fmt.Errorf("%w: problem %v", apperrors.ErrNotFound, key)
	}
	if err != nil {
		return domain.Problem{}, fmt.Errorf("find problem %v: %w", key, err)
	}
	tags, err := s.tagsFor(ctx, db, p.ID)
	if err != nil {
		return domain.Problem{}, err
	}
	p.Tags = tags[p.ID]
	return p, nil
}

// Upsert writes the problem keyed by slug and replaces its tag set.
func (s *SQLiteProblemStore) Upsert(ctx context.Context, problem domain.Problem) (domain.Problem, error) {
	const stmt = `
INSERT INTO problems (question_id, title, title_slug, difficulty, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(title_slug) DO UPDATE SET
  question_id=excluded.question_id,
  title=excluded.title,
  difficulty=excluded.difficulty,
  updated_at=excluded.updated_at
RETURNING id, created_at;
`
	db := tx.Executor(ctx, s.db)
	var createdAt string
	err := db.QueryRowContext(ctx, stmt,
		problem.QuestionID,
		problem.Title,
		problem.Slug,
		string(problem.Difficulty),
		problem.CreatedAt.UTC().Format(time.RFC3339),
		problem.UpdatedAt.UTC().Format(time.RFC3339),
	).Scan(&problem.ID, &createdAt)
	if err != nil {
		return domain.Problem{}, fmt.Errorf("upsert problem %s: %w", problem.Slug, err)
	}
	problem.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	problem.Tags = append([]domain.Tag(nil), problem.Tags...)

	if _, err := db.ExecContext(ctx, `DELETE FROM problem_tags WHERE problem_id = ?`, problem.ID); err != nil {
		return domain.Problem{}, fmt.Errorf("clear tags of %s: %w", problem.Slug, err)
	}
	for i, tag := range problem.Tags {
		id, err := upsertTag(ctx, db, tag)
		if err != nil {
			return domain.Problem{}, err
		}
		problem.Tags[i].ID = id
		if _, err := db.ExecContext(ctx,
			`INSERT INTO problem_tags (problem_id, tag_id) VALUES (?, ?) ON CONFLICT DO NOTHING`,
			problem.ID, id,
		); err != nil {
			return domain.Problem{}, fmt.Errorf("link tag %s to %s: %w", tag.Slug, problem.Slug, err)
		}
	}
	return problem, nil
}

// upsertTag creates the tag on first sight; an existing tag keeps its name.
func upsertTag(ctx context.Context, db tx.DBTX, tag domain.Tag) (int64, error) {
	if _, err := db.ExecContext(ctx,
		`INSERT INTO tags (name, slug) VALUES (?, ?) ON CONFLICT(slug) DO NOTHING`,
		tag.Name, tag.Slug,
	); err != nil {
		return 0, fmt.Errorf("upsert tag %s: %w", tag.Slug, err)
	}
	var id int64
	if err := db.QueryRowContext(ctx, `SELECT id FROM tags WHERE slug = ?`, tag.Slug).Scan(&id); err != nil {
		return 0, fmt.Errorf("lookup tag %s: %w", tag.Slug, err)
	}
	return id, nil
}

func (s *SQLiteProblemStore) List(ctx context.Context) ([]domain.Problem, error) {
	db := tx.Executor(ctx, s.db)
	rows, err := db.QueryContext(ctx, selectProblem+` ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list problems: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Problem, 0)
	for rows.Next() {
		p, err := scanProblem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan problem: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate problems: %w", err)
	}
	tags, err := s.tagsFor(ctx, db, 0)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Tags = tags[out[i].ID]
	}
	return out, nil
}

// tagsFor loads tag sets keyed by problem id. problemID 0 loads every problem.
func (s *SQLiteProblemStore) tagsFor(ctx context.Context, db tx.DBTX, problemID int64) (map[int64][]domain.Tag, error) {
	query := `
SELECT pt.problem_id, t.id, t.name, t.slug
FROM problem_tags pt
JOIN tags t ON t.id = pt.tag_id
WHERE (? = 0 OR pt.problem_id = ?)
ORDER BY t.name`
	rows, err := db.QueryContext(ctx, query, problemID, problemID)
	if err != nil {
		return nil, fmt.Errorf("load problem tags: %w", err)
	}
	defer rows.Close()

	out := make(map[int64][]domain.Tag)
	for rows.Next() {
		var pid int64
		var tag domain.Tag
		if err := rows.Scan(&pid, &tag.ID, &tag.Name, &tag.Slug); err != nil {
			return nil, fmt.Errorf("scan problem tag: %w", err)
		}
		out[pid] = append(out[pid], tag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate problem tags: %w", err)
	}
	return out, nil
}

// Reset removes every problem and tag. Proficiency rows cascade.
func (s *SQLiteProblemStore) Reset(ctx context.Context) error {
	db := tx.Executor(ctx, s.db)
	for _, stmt := range []string{`DELETE FROM problem_tags`, `DELETE FROM problems`, `DELETE FROM tags`} {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("reset problems: %w", err)
		}
	}
	return nil
}
