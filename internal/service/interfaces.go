package service

import (
	"context"

	"github.com/alexanderramin/milestones/internal/domain"
)

// ProjectEntry pairs a project with its identifier for listings.
type ProjectEntry struct {
	ID      string
	Project *domain.Project
}

// ToggleResult describes the outcome of a completion toggle.
type ToggleResult struct {
	Index     int
	Milestone domain.Milestone
	Progress  float64
	// ProjectCompleted is true when this toggle completed the last open milestone.
	ProjectCompleted bool
}

// MilestoneEdit lists the fields to change on a milestone. Nil fields are kept.
// Name is trimmed and must not be empty; Note is trimmed and may be empty.
type MilestoneEdit struct {
	Name *string
	Note *string
}

// ProjectStore owns project data and mirrors every mutation to durable storage
// before returning. Reads are served from memory and return copies.
type ProjectStore interface {
	Open(ctx context.Context) error
	Close() error

	CreateProject(ctx context.Context, id, name string) (string, *domain.Project, error)
	SwitchProject(ctx context.Context, id string) error
	RenameProject(ctx context.Context, name string) error
	JoinSharedProject(ctx context.Context, token string) (string, error)

	AddMilestone(ctx context.Context, note string) (int, domain.Milestone, error)
	DeleteMilestone(ctx context.Context, index int) (domain.Milestone, error)
	ToggleMilestone(ctx context.Context, index int) (*ToggleResult, error)
	UpdateMilestone(ctx context.Context, index int, name, note string) error
	RenameMilestone(ctx context.Context, index int, name string) error
	EditMilestoneNote(ctx context.Context, index int, note string) error
	EditMilestone(ctx context.Context, index int, edit MilestoneEdit) error

	Label() string
	SetLabel(ctx context.Context, label string) error
	ClearAll(ctx context.Context) error

	CurrentID() string
	Current() *domain.Project
	Projects() []ProjectEntry
	Progress() float64
	Stats() domain.Stats
	ShareLink(base string) (string, error)
}

// CompletionListener is notified when a toggle brings a project to 100%.
type CompletionListener interface {
	ProjectCompleted(projectID string, project *domain.Project)
}

// CompletionFunc adapts a function to CompletionListener.
type CompletionFunc func(projectID string, project *domain.Project)

func (f CompletionFunc) ProjectCompleted(projectID string, project *domain.Project) {
	f(projectID, project)
}
