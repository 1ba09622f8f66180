// Package session keeps per-user UI state: the active exam and the open tab.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

const (
	TabExams  = "exams"
	TabPlan   = "plan"
	TabCreate = "create"

	DefaultTab = TabExams
)

var ErrUnknownTab = errors.New("unknown tab")

type State struct {
	ActiveExamID string `json:"active_exam_id,omitempty"`
	Tab          string `json:"tab"`
}

type Store interface {
	Get(ctx context.Context, user string) (State, error)
	SetActive(ctx context.Context, user, examID string) error
	SetTab(ctx context.Context, user, tab string) error
	Clear(ctx context.Context, user string) error
}

func ValidTab(tab string) error {
	switch tab {
	case TabExams, TabPlan, TabCreate:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownTab, tab)
}

type Memory struct {
	mu sync.RWMutex
	m  map[string]State
}

func NewMemory() *Memory {
	return &Memory{m: map[string]State{}}
}

func (s *Memory) Get(_ context.Context, user string) (State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := s.m[user]
	if st.Tab == "" {
		st.Tab = DefaultTab
	}
	return st, nil
}

func (s *Memory) SetActive(_ context.Context, user, examID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.m[user]
	st.ActiveExamID = examID
	s.m[user] = st
	return nil
}

func (s *Memory) SetTab(_ context.Context, user, tab string) error {
	if err := ValidTab(tab); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.m[user]
	st.Tab = tab
	s.m[user] = st
	return nil
}

func (s *Memory) Clear(_ context.Context, user string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, user)
	return nil
}
