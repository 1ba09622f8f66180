package syncx

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"
)

const (
	ExamSelected  = "ExamSelected"
	ExamCreated   = "ExamCreated"
	ExamDeleted   = "ExamDeleted"
	ExamsImported = "ExamsImported"
)

type Event struct {
	Seq       int64
	SiteID    string
	Type      string
	Key       string
	Actor     string
	DataJSON  string
	CreatedAt int64
}

type EventRepo struct {
	db     *sql.DB
	siteID string
}

func NewEventRepo(db *sql.DB) *EventRepo { return &EventRepo{db: db, siteID: "local"} }

func (r *EventRepo) Append(ctx context.Context, e Event) error {
	if e.SiteID == "" {
		e.SiteID = r.siteID
	}
	if e.DataJSON == "" {
		e.DataJSON = "{}"
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO event_log (site_id, typ, key, actor, data, created_at)
		 VALUES ($1,$2,$3,$4,$5,$6)`,
		e.SiteID, e.Type, e.Key, e.Actor, e.DataJSON, time.Now().Unix())
	return err
}

// Record marshals data and appends it. data may be nil.
func (r *EventRepo) Record(ctx context.Context, typ, key, actor string, data any) error {
	ev := Event{Type: typ, Key: key, Actor: actor}
	if data != nil {
		b, err := json.Marshal(data)
		if err != nil {
			return err
		}
		ev.DataJSON = string(b)
	}
	return r.Append(ctx, ev)
}

// Since returns events after seq in order, at most limit of them.
func (r *EventRepo) Since(ctx context.Context, seq int64, limit int) ([]Event, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT seq, site_id, typ, key, actor, data, created_at FROM event_log
		 WHERE seq > $1 ORDER BY seq ASC LIMIT $2`, seq, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.Seq, &e.SiteID, &e.Type, &e.Key, &e.Actor, &e.DataJSON, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
