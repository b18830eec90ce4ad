package domain

import (
	"fmt"
	"strings"
	"time"
)

// Milestone is one stage of a project. CompletedAt is set iff Completed is true.
type Milestone struct {
	Name        string     `json:"name"`
	Note        string     `json:"note"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completedAt"`
}

// MilestoneName is the generated name for the milestone at 1-based position n.
func MilestoneName(n int) string {
	return fmt.Sprintf("节点 %d", n)
}

// Clone returns a copy that shares no pointers with m.
func (m Milestone) Clone() Milestone {
	if m.CompletedAt != nil {
		at := *m.CompletedAt
		m.CompletedAt = &at
	}
	return m
}

// Toggle flips completion, stamping or clearing CompletedAt.
func (m *Milestone) Toggle(now time.Time) {
	m.SetCompleted(!m.Completed, now)
}

// SetCompleted sets the completion flag and keeps CompletedAt consistent with it.
func (m *Milestone) SetCompleted(done bool, now time.Time) {
	m.Completed = done
	if done {
		m.CompletedAt = &now
		return
	}
	m.CompletedAt = nil
}

// Rename sets a new trimmed name. Empty names are rejected.
func (m *Milestone) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	m.Name = name
	return nil
}
