// Package plan turns an exam record into a day-by-day study plan running from
// today up to the exam.
package plan

import (
	"errors"
	"fmt"
	"time"

	"github.com/mind-engage/examplanner/internal/dates"
	"github.com/mind-engage/examplanner/internal/exam"
)

type DayKind string

const (
	DayStudy    DayKind = "study"
	DayRevision DayKind = "revision"
	DayRest     DayKind = "rest"
	DayExam     DayKind = "exam"
)

// ErrTooFar is returned for exams more than exam.MaxDaysAhead days away.
var ErrTooFar = errors.New("plan: exam too far ahead")

// NoRestDay disables the weekly rest day.
const NoRestDay time.Weekday = -1

type Options struct {
	RestDay      time.Weekday
	RevisionDays int
}

func DefaultOptions() Options {
	return Options{RestDay: time.Sunday, RevisionDays: 2}
}

type Day struct {
	Date    time.Time `json:"date"`
	Label   string    `json:"label"` // "Monday, January 6, 2025"
	Kind    DayKind   `json:"kind"`
	Topics  []string  `json:"topics,omitempty"`
	Weekday string    `json:"weekday"`
}

type Plan struct {
	ExamID   string `json:"exam_id"`
	ExamName string `json:"exam_name"`
	Subject  string `json:"subject"`
	ExamDate string `json:"exam_date"`
	DaysLeft int    `json:"days_left"`
	Overdue  bool   `json:"overdue"`
	Days     []Day  `json:"days"`
}

func (p Plan) StudyDays() int {
	n := 0
	for _, d := range p.Days {
		if d.Kind == DayStudy {
			n++
		}
	}
	return n
}

// Build lays out the plan. Today and every day before the exam get a slot.
// The last opts.RevisionDays are for revision, and at least one study day is
// kept when any day is free.
func Build(rec exam.Record, cal dates.Calendar, opts Options) (Plan, error) {
	when, err := cal.Parse(rec.ExamDate)
	if err != nil {
		return Plan{}, fmt.Errorf("exam %s: %w", rec.ID, err)
	}
	today := cal.Today()
	left := cal.DaysBetween(when, today)
	p := Plan{
		ExamID:   rec.ID,
		ExamName: rec.ExamName,
		Subject:  rec.Subject,
		ExamDate: cal.FormatLong(when),
		DaysLeft: left,
		Overdue:  left < 0,
	}
	if left > exam.MaxDaysAhead {
		return Plan{}, fmt.Errorf("%w: exam %s is %d days away", ErrTooFar, rec.ID, left)
	}
	examDay := dates.AddDays(today, left)
	if left <= 0 {
		p.Days = []Day{day(cal, examDay, DayExam, nil)}
		return p, nil
	}

	revision := opts.RevisionDays
	if revision < 0 {
		revision = 0
	}
	if revision > left-1 {
		revision = left - 1
	}

	kinds := make([]DayKind, left)
	studyIdx := []int{}
	for i := 0; i < left; i++ {
		switch {
		case i >= left-revision:
			kinds[i] = DayRevision
		case opts.RestDay != NoRestDay && dates.AddDays(today, i).Weekday() == opts.RestDay:
			kinds[i] = DayRest
		default:
			kinds[i] = DayStudy
			studyIdx = append(studyIdx, i)
		}
	}
	// only rest days left: study anyway
	if len(studyIdx) == 0 {
		for i := 0; i < left-revision; i++ {
			kinds[i] = DayStudy
			studyIdx = append(studyIdx, i)
		}
	}

	topics := exam.CleanTopics(rec.Topics)
	if len(topics) == 0 {
		topics = []string{"Review " + subjectOrName(rec)}
	}
	assigned := spread(topics, len(studyIdx))

	p.Days = make([]Day, 0, left+1)
	next := 0
	for i := 0; i < left; i++ {
		d := dates.AddDays(today, i)
		switch kinds[i] {
		case DayStudy:
			p.Days = append(p.Days, day(cal, d, DayStudy, assigned[next]))
			next++
		case DayRevision:
			p.Days = append(p.Days, day(cal, d, DayRevision, topics))
		default:
			p.Days = append(p.Days, day(cal, d, DayRest, nil))
		}
	}
	p.Days = append(p.Days, day(cal, examDay, DayExam, nil))
	return p, nil
}

// spread assigns topics to n slots in order: chunks when topics outnumber
// slots, otherwise each topic covers a contiguous run of slots.
func spread(topics []string, n int) [][]string {
	out := make([][]string, n)
	t := len(topics)
	for j := 0; j < n; j++ {
		if t >= n {
			out[j] = append([]string(nil), topics[j*t/n:(j+1)*t/n]...)
		} else {
			out[j] = []string{topics[j*t/n]}
		}
	}
	return out
}

func day(cal dates.Calendar, d time.Time, k DayKind, topics []string) Day {
	var cp []string
	if topics != nil {
		cp = append([]string(nil), topics...)
	}
	return Day{
		Date:    d,
		Label:   d.Weekday().String() + ", " + cal.FormatLong(d),
		Kind:    k,
		Topics:  cp,
		Weekday: d.Weekday().String(),
	}
}

func subjectOrName(rec exam.Record) string {
	if rec.Subject != "" {
		return rec.Subject
	}
	return rec.ExamName
}
