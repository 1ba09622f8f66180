package exam

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mind-engage/examplanner/internal/dates"
)

var (
	ErrNotFound = errors.New("exam not found")
	ErrInvalid  = errors.New("invalid exam")
)

// MaxDaysAhead bounds how far in the future an exam may be scheduled.
const MaxDaysAhead = 10 * 366

const (
	DefaultListLimit = 200
	MaxListLimit     = 500
)

type ListOpts struct {
	OwnerID string // empty lists every owner (admin)
	Q       string // substring match on name or subject
	Limit   int    // <= 0 means DefaultListLimit; capped at MaxListLimit
	Offset  int
}

// window is the page every Store applies.
func (o ListOpts) window() (limit, offset int) {
	limit = o.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	offset = o.Offset
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// Store persists exam records. Listings are ordered by exam date, then name.
type Store interface {
	PutExam(ctx context.Context, r Record) error
	GetExam(ctx context.Context, id string) (Record, error)
	ListExams(ctx context.Context, opts ListOpts) ([]Record, error)
	DeleteExam(ctx context.Context, id string) error
}

// Validate rejects records that would later fail to render.
func Validate(cal dates.Calendar, r Record) error {
	if strings.TrimSpace(r.ID) == "" {
		return fmt.Errorf("%w: id required", ErrInvalid)
	}
	if strings.TrimSpace(r.ExamName) == "" {
		return fmt.Errorf("%w: exam_name required", ErrInvalid)
	}
	when, err := cal.Parse(r.ExamDate)
	if err != nil {
		return fmt.Errorf("%w: exam_date: %v", ErrInvalid, err)
	}
	if cal.DaysBetween(when, cal.Today()) > MaxDaysAhead {
		return fmt.Errorf("%w: exam_date %s is more than %d days away", ErrInvalid, r.ExamDate, MaxDaysAhead)
	}
	return nil
}

// CleanTopics trims entries and drops blanks.
func CleanTopics(in []string) []string {
	out := make([]string, 0, len(in))
	for _, t := range in {
		if s := strings.TrimSpace(t); s != "" {
			out = append(out, s)
		}
	}
	return out
}
