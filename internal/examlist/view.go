// Package examlist renders a user's exams as a selectable list with an urgency
// badge per row and reports row activation back to the host.
//
// The view holds no state of its own: every Build starts from the Props it is
// given, and the host owns both the records and the active selection.
package examlist

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/mind-engage/examplanner/internal/dates"
	"github.com/mind-engage/examplanner/internal/exam"
)

// PlanTarget is the navigation target requested after a row is selected.
const PlanTarget = "plan"

// HighUrgencyDays is the threshold below which a row is styled as urgent.
const HighUrgencyDays = 7

var (
	ErrNoCallback  = errors.New("examlist: selection callbacks not set")
	ErrUnknownExam = errors.New("examlist: exam not in list")
)

type Urgency string

const (
	UrgencyHigh   Urgency = "high"
	UrgencyNormal Urgency = "normal"
)

// Props are the inputs supplied by the host on every render.
type Props struct {
	Exams      []exam.Record
	ActiveExam *exam.Record
	OnSelect   func(exam.Record)
	OnNavigate func(target string)
}

type Row struct {
	ID       string
	Name     string
	Subject  string
	Date     string // long form, e.g. "January 5, 2025"
	DaysLeft int
	Label    string
	Urgency  Urgency
	Active   bool
	// PastDue rows still read "Today!"; the flag only adds a style hook.
	PastDue bool
}

type EmptyState struct {
	Icon    string
	Heading string
	Hint    string
}

type Model struct {
	Empty      bool
	EmptyState EmptyState
	Rows       []Row
}

var emptyState = EmptyState{
	Icon:    "calendar",
	Heading: "No exams scheduled",
	Hint:    "Create a study plan to add your first exam.",
}

// Renderer is satisfied by the template engine in internal/web.
type Renderer interface {
	Render(out io.Writer, name string, binding interface{}, layout ...string) error
}

type View struct {
	cal dates.Calendar
}

func New(cal dates.Calendar) *View {
	return &View{cal: cal}
}

// Build derives the display model. Rows keep input order. A record whose date
// cannot be parsed fails the whole build.
func (v *View) Build(p Props) (Model, error) {
	if len(p.Exams) == 0 {
		return Model{Empty: true, EmptyState: emptyState}, nil
	}
	rows := make([]Row, 0, len(p.Exams))
	for _, rec := range p.Exams {
		row, err := v.row(rec, p.ActiveExam)
		if err != nil {
			return Model{}, err
		}
		rows = append(rows, row)
	}
	return Model{Rows: rows}, nil
}

func (v *View) row(rec exam.Record, active *exam.Record) (Row, error) {
	when, err := v.cal.Parse(rec.ExamDate)
	if err != nil {
		return Row{}, fmt.Errorf("exam %s (%s): %w", rec.ID, rec.ExamName, err)
	}
	left := v.cal.DaysBetween(when, v.cal.Today())
	return Row{
		ID:       rec.ID,
		Name:     rec.ExamName,
		Subject:  rec.Subject,
		Date:     v.cal.FormatLong(when),
		DaysLeft: left,
		Label:    Label(left),
		Urgency:  UrgencyFor(left),
		Active:   active != nil && active.ID == rec.ID,
		PastDue:  left < 0,
	}, nil
}

// Label is the badge text for a days-left count.
func Label(daysLeft int) string {
	if daysLeft > 0 {
		return strconv.Itoa(daysLeft) + " days left"
	}
	return "Today!"
}

func UrgencyFor(daysLeft int) Urgency {
	if daysLeft < HighUrgencyDays {
		return UrgencyHigh
	}
	return UrgencyNormal
}

// Activate handles a click on the row for id: OnSelect receives the record
// exactly as supplied, then OnNavigate receives PlanTarget.
func (v *View) Activate(p Props, id string) error {
	if p.OnSelect == nil || p.OnNavigate == nil {
		return ErrNoCallback
	}
	for _, rec := range p.Exams {
		if rec.ID == id {
			p.OnSelect(rec)
			p.OnNavigate(PlanTarget)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrUnknownExam, id)
}

// Render builds the model and executes the "examlist" template with it.
func (v *View) Render(w io.Writer, r Renderer, p Props) error {
	m, err := v.Build(p)
	if err != nil {
		return err
	}
	return r.Render(w, "examlist", m)
}
