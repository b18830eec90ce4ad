package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/alexanderramin/milestones/internal/db"
	"github.com/alexanderramin/milestones/internal/domain"
	"github.com/alexanderramin/milestones/internal/repository"
	"github.com/google/uuid"
)

// ErrStoreNotOpen is returned by mutations before Open or after Close.
var ErrStoreNotOpen = errors.New("project store is not open")

type projectStore struct {
	kv         repository.KVRepo
	uow        db.UnitOfWork
	observer   UseCaseObserver
	now        func() time.Time
	newShareID func() string
	newID      func() string
	listeners  []CompletionListener

	// mu guards the in-memory mirror below. Listeners run outside it.
	mu        sync.Mutex
	opened    bool
	projects  map[string]*domain.Project
	currentID string
	label     string
}

// StoreOption configures a ProjectStore.
type StoreOption func(*projectStore)

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) StoreOption {
	return func(s *projectStore) { s.now = now }
}

// WithShareIDGenerator overrides share token generation.
func WithShareIDGenerator(gen func() string) StoreOption {
	return func(s *projectStore) { s.newShareID = gen }
}

// WithIDGenerator overrides the project id used when CreateProject gets an empty id.
func WithIDGenerator(gen func() string) StoreOption {
	return func(s *projectStore) { s.newID = gen }
}

// WithObserver routes use-case events to observer.
func WithObserver(observer UseCaseObserver) StoreOption {
	return func(s *projectStore) {
		if observer != nil {
			s.observer = observer
		}
	}
}

// WithCompletionListener registers a listener for projects reaching 100%.
func WithCompletionListener(l CompletionListener) StoreOption {
	return func(s *projectStore) {
		if l != nil {
			s.listeners = append(s.listeners, l)
		}
	}
}

// NewProjectStore creates a store over kv. Every write runs in a uow
// transaction. Call Open before use.
func NewProjectStore(kv repository.KVRepo, uow db.UnitOfWork, opts ...StoreOption) ProjectStore {
	s := &projectStore{
		kv:         kv,
		uow:        uow,
		observer:   NoopUseCaseObserver{},
		now:        time.Now,
		newShareID: domain.GenerateShareID,
		newID:      func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// clock returns the current time at the millisecond precision kept in storage.
func (s *projectStore) clock() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}

// ── lifecycle ────────────────────────────────────────────────────────────────

func (s *projectStore) Open(ctx context.Context) (err error) {
	span := startUseCase(s.observer, "store.open")
	defer func() { span.end(ctx, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	projects, err := s.loadProjects(ctx, span)
	if err != nil {
		return err
	}
	currentID, err := s.loadString(ctx, repository.KeyCurrentProjectID, domain.DefaultProjectID)
	if err != nil {
		return err
	}
	label, err := s.loadString(ctx, repository.KeyProjectLabel, domain.DefaultLabel)
	if err != nil {
		return err
	}

	if _, ok := projects[currentID]; !ok {
		span.set("recreated_project", currentID)
		projects[currentID] = domain.NewProject(domain.DefaultProjectName, s.newShareID(), s.clock())
		if err := s.persistProjects(ctx, projects); err != nil {
			return err
		}
	}

	s.projects = projects
	s.currentID = currentID
	s.label = label
	s.opened = true
	span.set("projects", len(projects))
	span.set("current_project", currentID)
	return nil
}

func (s *projectStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.opened = false
	s.projects = nil
	return nil
}

func (s *projectStore) loadProjects(ctx context.Context, span *useCaseSpan) (map[string]*domain.Project, error) {
	projects := make(map[string]*domain.Project)
	raw, err := s.kv.Get(ctx, repository.KeyProjects)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return projects, nil
		}
		return nil, fmt.Errorf("loading projects: %w", err)
	}

	var decoded map[string]*domain.Project
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		// Unreadable snapshots fall back to an empty mapping.
		span.set("corrupt_projects", err.Error())
		return projects, nil
	}
	for id, p := range decoded {
		if p == nil {
			continue
		}
		if p.Milestones == nil {
			p.Milestones = []domain.Milestone{}
		}
		projects[id] = p
	}
	return projects, nil
}

func (s *projectStore) loadString(ctx context.Context, key, fallback string) (string, error) {
	v, err := s.kv.Get(ctx, key)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fallback, nil
		}
		return "", fmt.Errorf("loading %s: %w", key, err)
	}
	if v == "" {
		return fallback, nil
	}
	return v, nil
}

// ── persistence ──────────────────────────────────────────────────────────────

// persistProjects serializes and writes the entire project mapping.
func (s *projectStore) persistProjects(ctx context.Context, projects map[string]*domain.Project) error {
	data, err := json.Marshal(projects)
	if err != nil {
		return fmt.Errorf("encoding projects: %w", err)
	}
	return s.persistEntry(ctx, repository.KeyProjects, string(data))
}

func (s *projectStore) persistEntry(ctx context.Context, key, value string) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteKVRepo(tx).Set(ctx, key, value)
	})
}

// commit stamps the current project in next, persists next and swaps it in.
// next must not share the current project's pointer with s.projects.
func (s *projectStore) commit(ctx context.Context, next map[string]*domain.Project) error {
	if p, ok := next[s.currentID]; ok {
		p.UpdatedAt = s.clock()
	}
	if err := s.persistProjects(ctx, next); err != nil {
		return err
	}
	s.projects = next
	return nil
}

// snapshot returns a shallow copy of the mapping with the current project cloned.
func (s *projectStore) snapshot() map[string]*domain.Project {
	next := make(map[string]*domain.Project, len(s.projects)+1)
	for id, p := range s.projects {
		next[id] = p
	}
	if p, ok := next[s.currentID]; ok {
		next[s.currentID] = p.Clone()
	}
	return next
}

// mutateCurrent applies fn to a copy of the current project and commits it.
// Nothing changes in memory or storage when fn or persistence fails.
func (s *projectStore) mutateCurrent(ctx context.Context, fn func(p *domain.Project) error) (*domain.Project, error) {
	if !s.opened {
		return nil, ErrStoreNotOpen
	}
	next := s.snapshot()
	p, ok := next[s.currentID]
	if !ok {
		return nil, fmt.Errorf("current project %q: %w", s.currentID, domain.ErrProjectNotFound)
	}
	if err := fn(p); err != nil {
		return nil, err
	}
	if err := s.commit(ctx, next); err != nil {
		return nil, err
	}
	return p, nil
}

// ── projects ─────────────────────────────────────────────────────────────────

func (s *projectStore) CreateProject(ctx context.Context, id, name string) (_ string, _ *domain.Project, err error) {
	span := startUseCase(s.observer, "store.create_project")
	defer func() { span.end(ctx, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.opened {
		return "", nil, ErrStoreNotOpen
	}

	if id == "" {
		id = s.newID()
	}
	span.set("project_id", id)

	next := s.snapshot()
	p := domain.NewProject(name, s.newShareID(), s.clock())
	next[id] = p
	if err := s.commit(ctx, next); err != nil {
		return "", nil, err
	}
	return id, p.Clone(), nil
}

func (s *projectStore) SwitchProject(ctx context.Context, id string) (err error) {
	span := startUseCase(s.observer, "store.switch_project")
	span.set("project_id", id)
	defer func() { span.end(ctx, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.switchLocked(ctx, id)
}

func (s *projectStore) switchLocked(ctx context.Context, id string) error {
	if !s.opened {
		return ErrStoreNotOpen
	}
	if _, ok := s.projects[id]; !ok {
		return fmt.Errorf("project %q: %w", id, domain.ErrProjectNotFound)
	}
	if err := s.persistEntry(ctx, repository.KeyCurrentProjectID, id); err != nil {
		return err
	}
	s.currentID = id
	return nil
}

func (s *projectStore) RenameProject(ctx context.Context, name string) (err error) {
	span := startUseCase(s.observer, "store.rename_project")
	defer func() { span.end(ctx, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()
	_, err = s.mutateCurrent(ctx, func(p *domain.Project) error {
		p.Name = name
		return nil
	})
	return err
}

func (s *projectStore) JoinSharedProject(ctx context.Context, token string) (_ string, err error) {
	span := startUseCase(s.observer, "store.join_shared_project")
	defer func() { span.end(ctx, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.opened {
		return "", ErrStoreNotOpen
	}

	token = domain.ParseShareToken(token)
	if token == "" {
		return "", fmt.Errorf("empty share token: %w", domain.ErrShareNotFound)
	}
	for _, id := range s.sortedIDs() {
		if s.projects[id].ShareID == token {
			span.set("project_id", id)
			if err := s.switchLocked(ctx, id); err != nil {
				return "", err
			}
			return id, nil
		}
	}
	return "", fmt.Errorf("share token %q: %w", token, domain.ErrShareNotFound)
}

// ── milestones ───────────────────────────────────────────────────────────────

func (s *projectStore) AddMilestone(ctx context.Context, note string) (_ int, _ domain.Milestone, err error) {
	span := startUseCase(s.observer, "store.add_milestone")
	defer func() { span.end(ctx, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	index := -1
	p, err := s.mutateCurrent(ctx, func(p *domain.Project) error {
		var err error
		index, err = p.AppendMilestone(note)
		return err
	})
	if err != nil {
		return -1, domain.Milestone{}, err
	}
	span.set("index", index)
	return index, p.Milestones[index].Clone(), nil
}

func (s *projectStore) DeleteMilestone(ctx context.Context, index int) (_ domain.Milestone, err error) {
	span := startUseCase(s.observer, "store.delete_milestone")
	span.set("index", index)
	defer func() { span.end(ctx, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	var removed domain.Milestone
	_, err = s.mutateCurrent(ctx, func(p *domain.Project) error {
		var err error
		removed, err = p.RemoveMilestone(index)
		return err
	})
	return removed, err
}

func (s *projectStore) ToggleMilestone(ctx context.Context, index int) (_ *ToggleResult, err error) {
	span := startUseCase(s.observer, "store.toggle_milestone")
	span.set("index", index)
	defer func() { span.end(ctx, err) }()

	s.mu.Lock()
	var result ToggleResult
	p, err := s.mutateCurrent(ctx, func(p *domain.Project) error {
		m, err := p.Milestone(index)
		if err != nil {
			return err
		}
		m.Toggle(s.clock())
		result = ToggleResult{
			Index:            index,
			Milestone:        m.Clone(),
			Progress:         p.Progress(),
			ProjectCompleted: m.Completed && p.IsComplete(),
		}
		return nil
	})
	projectID := s.currentID
	s.mu.Unlock()

	if err != nil {
		return nil, err
	}
	span.set("completed", result.Milestone.Completed)
	if result.ProjectCompleted {
		span.set("project_completed", true)
		for _, l := range s.listeners {
			l.ProjectCompleted(projectID, p.Clone())
		}
	}
	return &result, nil
}

func (s *projectStore) UpdateMilestone(ctx context.Context, index int, name, note string) (err error) {
	span := startUseCase(s.observer, "store.update_milestone")
	span.set("index", index)
	defer func() { span.end(ctx, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()
	_, err = s.mutateCurrent(ctx, func(p *domain.Project) error {
		m, err := p.Milestone(index)
		if err != nil {
			return err
		}
		m.Name = name
		m.Note = note
		return nil
	})
	return err
}

func (s *projectStore) RenameMilestone(ctx context.Context, index int, name string) (err error) {
	span := startUseCase(s.observer, "store.rename_milestone")
	span.set("index", index)
	defer func() { span.end(ctx, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()
	_, err = s.mutateCurrent(ctx, func(p *domain.Project) error {
		m, err := p.Milestone(index)
		if err != nil {
			return err
		}
		return m.Rename(name)
	})
	return err
}

func (s *projectStore) EditMilestoneNote(ctx context.Context, index int, note string) (err error) {
	span := startUseCase(s.observer, "store.edit_milestone_note")
	span.set("index", index)
	defer func() { span.end(ctx, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()
	_, err = s.mutateCurrent(ctx, func(p *domain.Project) error {
		m, err := p.Milestone(index)
		if err != nil {
			return err
		}
		m.Note = strings.TrimSpace(note)
		return nil
	})
	return err
}

// EditMilestone applies a rename and a note change as one write, so a failed
// write leaves both fields as they were.
func (s *projectStore) EditMilestone(ctx context.Context, index int, edit MilestoneEdit) (err error) {
	span := startUseCase(s.observer, "store.edit_milestone")
	span.set("index", index)
	span.set("name", edit.Name != nil)
	span.set("note", edit.Note != nil)
	defer func() { span.end(ctx, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()
	_, err = s.mutateCurrent(ctx, func(p *domain.Project) error {
		m, err := p.Milestone(index)
		if err != nil {
			return err
		}
		if edit.Name != nil {
			if err := m.Rename(*edit.Name); err != nil {
				return err
			}
		}
		if edit.Note != nil {
			m.Note = strings.TrimSpace(*edit.Note)
		}
		return nil
	})
	return err
}

// ── settings ─────────────────────────────────────────────────────────────────

func (s *projectStore) Label() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.label == "" {
		return domain.DefaultLabel
	}
	return s.label
}

// SetLabel stores the trimmed label; a blank label resets it to the default.
func (s *projectStore) SetLabel(ctx context.Context, label string) (err error) {
	span := startUseCase(s.observer, "store.set_label")
	defer func() { span.end(ctx, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.opened {
		return ErrStoreNotOpen
	}
	label = strings.TrimSpace(label)
	if label == "" {
		label = domain.DefaultLabel
	}
	if err := s.persistEntry(ctx, repository.KeyProjectLabel, label); err != nil {
		return err
	}
	s.label = label
	return nil
}

// ClearAll wipes storage and recreates the default project.
func (s *projectStore) ClearAll(ctx context.Context) (err error) {
	span := startUseCase(s.observer, "store.clear_all")
	defer func() { span.end(ctx, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.opened {
		return ErrStoreNotOpen
	}

	projects := map[string]*domain.Project{
		domain.DefaultProjectID: domain.NewProject(domain.DefaultProjectName, s.newShareID(), s.clock()),
	}
	data, err := json.Marshal(projects)
	if err != nil {
		return fmt.Errorf("encoding projects: %w", err)
	}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		kv := repository.NewSQLiteKVRepo(tx)
		if err := kv.Clear(ctx); err != nil {
			return err
		}
		return kv.Set(ctx, repository.KeyProjects, string(data))
	})
	if err != nil {
		return err
	}

	s.projects = projects
	s.currentID = domain.DefaultProjectID
	s.label = domain.DefaultLabel
	return nil
}

// ── reads ────────────────────────────────────────────────────────────────────

func (s *projectStore) CurrentID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentID
}

func (s *projectStore) Current() *domain.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.projects[s.currentID]
	if !ok {
		return nil
	}
	return p.Clone()
}

// Projects lists all projects ordered by creation time, then id.
func (s *projectStore) Projects() []ProjectEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := s.sortedIDs()
	entries := make([]ProjectEntry, 0, len(ids))
	for _, id := range ids {
		entries = append(entries, ProjectEntry{ID: id, Project: s.projects[id].Clone()})
	}
	return entries
}

func (s *projectStore) Progress() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.projects[s.currentID]; ok {
		return p.Progress()
	}
	return 0
}

func (s *projectStore) Stats() domain.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.projects[s.currentID]; ok {
		return p.Stats()
	}
	return domain.Stats{}
}

func (s *projectStore) ShareLink(base string) (string, error) {
	s.mu.Lock()
	id := s.currentID
	p, ok := s.projects[id]
	s.mu.Unlock()
	if !ok {
		return "", fmt.Errorf("current project %q: %w", id, domain.ErrProjectNotFound)
	}
	return domain.ShareLink(base, p.ShareID)
}

func (s *projectStore) sortedIDs() []string {
	ids := make([]string, 0, len(s.projects))
	for id := range s.projects {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := s.projects[ids[i]], s.projects[ids[j]]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return ids[i] < ids[j]
	})
	return ids
}
