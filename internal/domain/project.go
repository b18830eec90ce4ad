package domain

import (
	"fmt"
	"strings"
	"time"
)

// Project is a named, ordered list of milestones. The JSON field names match
// the storage layout so snapshots written by earlier versions load unchanged.
type Project struct {
	Name       string      `json:"name"`
	Milestones []Milestone `json:"milestones"`
	ShareID    string      `json:"shareId"`
	CreatedAt  time.Time   `json:"createdAt"`
	UpdatedAt  time.Time   `json:"updatedAt"`
}

// NewProject builds a project seeded with the preset milestone template.
func NewProject(name, shareID string, now time.Time) *Project {
	return &Project{
		Name:       name,
		Milestones: PresetMilestones(),
		ShareID:    shareID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Clone returns a deep copy of the project.
func (p *Project) Clone() *Project {
	c := *p
	c.Milestones = make([]Milestone, len(p.Milestones))
	for i := range p.Milestones {
		c.Milestones[i] = p.Milestones[i].Clone()
	}
	return &c
}

// Milestone returns the milestone at index or ErrMilestoneNotFound.
func (p *Project) Milestone(index int) (*Milestone, error) {
	if index < 0 || index >= len(p.Milestones) {
		return nil, fmt.Errorf("%w: index %d of %d", ErrMilestoneNotFound, index, len(p.Milestones))
	}
	return &p.Milestones[index], nil
}

// AppendMilestone validates note and appends an incomplete milestone named
// after its 1-based position. It returns the new index.
func (p *Project) AppendMilestone(note string) (int, error) {
	note = strings.TrimSpace(note)
	if note == "" {
		return -1, ErrEmptyNote
	}
	p.Milestones = append(p.Milestones, Milestone{
		Name: MilestoneName(len(p.Milestones) + 1),
		Note: note,
	})
	return len(p.Milestones) - 1, nil
}

// RemoveMilestone deletes the milestone at index, shifting later ones down.
func (p *Project) RemoveMilestone(index int) (Milestone, error) {
	m, err := p.Milestone(index)
	if err != nil {
		return Milestone{}, err
	}
	removed := *m
	p.Milestones = append(p.Milestones[:index], p.Milestones[index+1:]...)
	return removed, nil
}

// CompletedCount returns the number of completed milestones.
func (p *Project) CompletedCount() int {
	n := 0
	for _, m := range p.Milestones {
		if m.Completed {
			n++
		}
	}
	return n
}

// Progress returns the completion percentage in [0, 100]. An empty project is 0.
func (p *Project) Progress() float64 {
	if len(p.Milestones) == 0 {
		return 0
	}
	return float64(p.CompletedCount()) / float64(len(p.Milestones)) * 100
}

// IsComplete reports whether the project has milestones and all are done.
func (p *Project) IsComplete() bool {
	return len(p.Milestones) > 0 && p.CompletedCount() == len(p.Milestones)
}

// Stats summarizes milestone completion.
type Stats struct {
	Total     int
	Completed int
	Pending   int
	Rate      float64
}

func (p *Project) Stats() Stats {
	completed := p.CompletedCount()
	return Stats{
		Total:     len(p.Milestones),
		Completed: completed,
		Pending:   len(p.Milestones) - completed,
		Rate:      p.Progress(),
	}
}

// DisplayID shortens a project identifier for display, truncating to 8 characters.
func DisplayID(id string) string {
	if r := []rune(id); len(r) > 8 {
		return string(r[:8])
	}
	return id
}
