package testutil

import (
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alexanderramin/milestones/internal/domain"
)

// BaseTime is the fixed instant test clocks start from.
var BaseTime = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

var testShareIDCounter atomic.Int64

// NextShareID returns deterministic, unique 8-character share tokens.
func NextShareID() string {
	return fmt.Sprintf("tok%05d", testShareIDCounter.Add(1))
}

// Clock is a manually advanced time source.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

func NewClock() *Clock {
	return &Clock{now: BaseTime}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Project options
type ProjectOption func(*domain.Project)

// WithMilestones replaces the preset template with milestones carrying the given notes.
func WithMilestones(notes ...string) ProjectOption {
	return func(p *domain.Project) {
		p.Milestones = []domain.Milestone{}
		for _, n := range notes {
			if _, err := p.AppendMilestone(n); err != nil {
				panic(err)
			}
		}
	}
}

// WithCompleted marks the milestones at the given indexes complete.
func WithCompleted(indexes ...int) ProjectOption {
	return func(p *domain.Project) {
		for _, i := range indexes {
			p.Milestones[i].SetCompleted(true, BaseTime)
		}
	}
}

func WithShareID(id string) ProjectOption {
	return func(p *domain.Project) {
		p.ShareID = id
	}
}

func WithCreatedAt(t time.Time) ProjectOption {
	return func(p *domain.Project) {
		p.CreatedAt = t
		p.UpdatedAt = t
	}
}

// NewTestProject builds a project with the preset template unless overridden.
func NewTestProject(name string, opts ...ProjectOption) *domain.Project {
	p := domain.NewProject(name, NextShareID(), BaseTime)
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// EncodeProjects serializes a project mapping the way the store persists it.
func EncodeProjects(t *testing.T, projects map[string]*domain.Project) string {
	t.Helper()
	data, err := json.Marshal(projects)
	if err != nil {
		t.Fatalf("encoding projects: %v", err)
	}
	return string(data)
}
