package exam

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"
)

type SQLStore struct {
	db     *sql.DB
	driver string // "sqlite" or "postgres"
}

func NewSQLStore(db *sql.DB, driver string) *SQLStore {
	return &SQLStore{db: db, driver: driver}
}

func (s *SQLStore) PutExam(ctx context.Context, r Record) error {
	tj, err := json.Marshal(CleanTopics(r.Topics))
	if err != nil {
		return err
	}
	created := r.CreatedAt
	if created == 0 {
		created = time.Now().Unix()
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO exams (id,owner_id,exam_name,subject,exam_date,topics_json,created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		ON CONFLICT (id) DO UPDATE SET exam_name=EXCLUDED.exam_name, subject=EXCLUDED.subject,
			exam_date=EXCLUDED.exam_date, topics_json=EXCLUDED.topics_json`,
		r.ID, r.OwnerID, r.ExamName, r.Subject, r.ExamDate, string(tj), created)
	return err
}

func (s *SQLStore) GetExam(ctx context.Context, id string) (Record, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id,owner_id,exam_name,subject,exam_date,topics_json,created_at
		FROM exams WHERE id=$1`, id)
	r, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	return r, err
}

func (s *SQLStore) ListExams(ctx context.Context, opts ListOpts) ([]Record, error) {
	limit, offset := opts.window()
	like := "%" + strings.ToLower(strings.TrimSpace(opts.Q)) + "%"

	rows, err := s.db.QueryContext(ctx, `SELECT id,owner_id,exam_name,subject,exam_date,topics_json,created_at
		FROM exams
		WHERE ($1 = '' OR owner_id = $1)
		  AND (LOWER(exam_name) LIKE $2 OR LOWER(subject) LIKE $2)
		ORDER BY exam_date ASC, exam_name ASC
		LIMIT $3 OFFSET $4`, opts.OwnerID, like, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Record{}
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *SQLStore) DeleteExam(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM exams WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(sc scanner) (Record, error) {
	var r Record
	var tjson string
	if err := sc.Scan(&r.ID, &r.OwnerID, &r.ExamName, &r.Subject, &r.ExamDate, &tjson, &r.CreatedAt); err != nil {
		return Record{}, err
	}
	if tjson != "" {
		if err := json.Unmarshal([]byte(tjson), &r.Topics); err != nil {
			return Record{}, err
		}
	}
	return r, nil
}
