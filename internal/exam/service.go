package exam

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

type memoryStore struct {
	mu    sync.RWMutex
	exams map[string]Record
}

func NewInMemoryStore() Store {
	return &memoryStore{exams: map[string]Record{}}
}

func (m *memoryStore) PutExam(_ context.Context, r Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if prev, ok := m.exams[r.ID]; ok {
		r.CreatedAt = prev.CreatedAt
		r.OwnerID = prev.OwnerID
	} else if r.CreatedAt == 0 {
		r.CreatedAt = time.Now().Unix()
	}
	r.Topics = CleanTopics(r.Topics)
	m.exams[r.ID] = r
	return nil
}

func (m *memoryStore) GetExam(_ context.Context, id string) (Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.exams[id]
	if !ok {
		return Record{}, ErrNotFound
	}
	return cloneRecord(r), nil
}

func (m *memoryStore) ListExams(_ context.Context, opts ListOpts) ([]Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	q := strings.ToLower(strings.TrimSpace(opts.Q))
	out := make([]Record, 0, len(m.exams))
	for _, r := range m.exams {
		if opts.OwnerID != "" && r.OwnerID != opts.OwnerID {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(r.ExamName), q) && !strings.Contains(strings.ToLower(r.Subject), q) {
			continue
		}
		out = append(out, cloneRecord(r))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ExamDate != out[j].ExamDate {
			return out[i].ExamDate < out[j].ExamDate
		}
		return out[i].ExamName < out[j].ExamName
	})
	limit, offset := opts.window()
	if offset >= len(out) {
		return []Record{}, nil
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (m *memoryStore) DeleteExam(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.exams[id]; !ok {
		return ErrNotFound
	}
	delete(m.exams, id)
	return nil
}

func cloneRecord(r Record) Record {
	if r.Topics != nil {
		r.Topics = append([]string(nil), r.Topics...)
	}
	return r
}
