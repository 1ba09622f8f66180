package web_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mind-engage/examplanner/internal/examlist"
	"github.com/mind-engage/examplanner/internal/web"
)

func TestEngine_RendersExamList(t *testing.T) {
	engine, err := web.NewEngine()
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	m := examlist.Model{Rows: []examlist.Row{
		{ID: "a1", Name: "Physics", Subject: "Science", Date: "January 15, 2025", Label: "10 days left", Urgency: examlist.UrgencyNormal},
		{ID: "b2", Name: "Algebra", Subject: "Math", Date: "January 5, 2025", Label: "Today!", Urgency: examlist.UrgencyHigh, Active: true},
	}}
	var buf bytes.Buffer
	if err := engine.Render(&buf, "examlist", m); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		`action="/exams/a1/select"`,
		`action="/exams/b2/select"`,
		"10 days left",
		"Today!",
		"January 15, 2025",
		`data-urgency="high"`,
		"View Plan",
		"max-height:480px",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Count(out, `class="exam-row"`) != 2 {
		t.Fatalf("expected two rows")
	}
	if strings.Count(out, " active") != 1 {
		t.Fatalf("expected exactly one active row:\n%s", out)
	}
}

func TestEngine_EmptyStateInLayout(t *testing.T) {
	engine, err := web.NewEngine()
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	binding := map[string]interface{}{
		"Title": "Exams",
		"Tab":   "exams",
		"User":  "",
		"List":  examlist.Model{Empty: true, EmptyState: examlist.EmptyState{Icon: "calendar", Heading: "No exams scheduled", Hint: "Create a study plan."}},
	}
	var buf bytes.Buffer
	if err := engine.Render(&buf, "exams", binding, web.Layout); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "No exams scheduled") || strings.Contains(out, "exam-row") {
		t.Fatalf("expected empty placeholder only:\n%s", out)
	}
	if !strings.Contains(out, `<a href="/exams" class="current">`) {
		t.Fatalf("exams tab should be current:\n%s", out)
	}
	if strings.Contains(out, "&lt;nil&gt;") {
		t.Fatalf("layout leaked a nil value")
	}
}
