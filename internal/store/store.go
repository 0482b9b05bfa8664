// Package store holds the key-value store behind usage counters and the
// premium flag, plus the archive of analysed ideas.
package store

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/1234bibhash/venture-idea-compass/internal/ideaanalysis"
)

var ErrNotFound = errors.New("not found")

type KV interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}

// Incrementer is implemented by stores that can adjust a numeric value
// atomically. Missing keys start at zero and the result never drops below zero.
type Incrementer interface {
	Add(ctx context.Context, key string, delta int64) (int64, error)
}

type IdeaRecord struct {
	ID        string                      `json:"id"`
	UserID    string                      `json:"user_id"`
	Title     string                      `json:"title"`
	Industry  string                      `json:"industry"`
	Template  ideaanalysis.TemplateID     `json:"template"`
	Score     int                         `json:"score"`
	Report    ideaanalysis.AnalysisReport `json:"report"`
	CreatedAt time.Time                   `json:"created_at"`
}

type History interface {
	SaveIdea(ctx context.Context, rec IdeaRecord) error
	GetIdea(ctx context.Context, id string) (IdeaRecord, error)
	ListIdeas(ctx context.Context, userID string, limit int) ([]IdeaRecord, error)
}

// Backend is what the web app needs from persistence.
type Backend interface {
	KV
	History
	Close() error
}

// Memory is an in-process Backend. Nothing survives a restart.
type Memory struct {
	mu    sync.RWMutex
	kv    map[string]string
	ideas map[string]IdeaRecord
}

func NewMemory() *Memory {
	return &Memory{
		kv:    map[string]string{},
		ideas: map[string]IdeaRecord{},
	}
}

func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.kv[key]
	return v, ok, nil
}

func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.kv[key] = value
	return nil
}

func (m *Memory) Add(_ context.Context, key string, delta int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, _ := strconv.ParseInt(m.kv[key], 10, 64)
	cur = max(cur+delta, 0)
	m.kv[key] = strconv.FormatInt(cur, 10)
	return cur, nil
}

func (m *Memory) SaveIdea(_ context.Context, rec IdeaRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ideas[rec.ID] = rec
	return nil
}

func (m *Memory) GetIdea(_ context.Context, id string) (IdeaRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.ideas[id]
	if !ok {
		return IdeaRecord{}, ErrNotFound
	}
	return rec, nil
}

func (m *Memory) ListIdeas(_ context.Context, userID string, limit int) ([]IdeaRecord, error) {
	m.mu.RLock()
	var out []IdeaRecord
	for _, rec := range m.ideas {
		if rec.UserID == userID {
			out = append(out, rec)
		}
	}
	m.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *Memory) Close() error { return nil }
