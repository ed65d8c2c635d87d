package api

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-backend/models"
	"gorm.io/gorm"
)

type fakeProfileStore struct {
	mu       sync.Mutex
	profiles []*models.Profile
	calls    int
	err      error
	addErr   error
}

func (f *fakeProfileStore) FindByEmail(_ context.Context, email string) (*models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	for _, p := range f.profiles {
		if p.Email == email {
			clone := *p
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeProfileStore) FindFirst(context.Context) (*models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if len(f.profiles) == 0 {
		return nil, nil
	}
	clone := *f.profiles[0]
	return &clone, nil
}

func (f *fakeProfileStore) Add(_ context.Context, profile *models.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.addErr != nil {
		return f.addErr
	}
	for _, p := range f.profiles {
		if p.Email == profile.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	profile.ID = uuid.New()
	profile.CreatedAt = time.Now()
	clone := *profile
	f.profiles = append(f.profiles, &clone)
	return nil
}

func (f *fakeProfileStore) UpsertByEmail(_ context.Context, name, email string) (*models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	for _, p := range f.profiles {
		if p.Email == email {
			p.Name = name
			clone := *p
			return &clone, nil
		}
	}
	p := &models.Profile{ID: uuid.New(), Name: name, Email: email, CreatedAt: time.Now()}
	f.profiles = append(f.profiles, p)
	clone := *p
	return &clone, nil
}

func (f *fakeProfileStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.profiles)
}

type fakeProjectStore struct {
	mu        sync.Mutex
	projects  []*models.Project
	writes    int
	err       error
	searchErr error
	addErr    error
}

func (f *fakeProjectStore) FindAll(_ context.Context, skill string) ([]*models.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}

	var out []*models.Project
	for _, p := range f.projects {
		if skill == "" || hasSkill(p, skill) {
			clone := *p
			out = append(out, &clone)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func hasSkill(p *models.Project, name string) bool {
	for _, ps := range p.Skills {
		if ps.Skill.Name == name {
			return true
		}
	}
	return false
}

func (f *fakeProjectStore) Add(_ context.Context, project *models.Project) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes++
	if f.addErr != nil {
		return f.addErr
	}
	project.ID = uuid.New()
	project.CreatedAt = time.Now()
	clone := *project
	f.projects = append(f.projects, &clone)
	return nil
}

func (f *fakeProjectStore) AddWithLinks(_ context.Context, project *models.Project, links []models.Link) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes++
	if f.addErr != nil {
		return f.addErr
	}
	project.ID = uuid.New()
	project.CreatedAt = time.Now()
	for i := range links {
		links[i].ID = uuid.New()
		links[i].ProjectID = project.ID
	}
	clone := *project
	clone.Links = append([]models.Link(nil), links...)
	f.projects = append(f.projects, &clone)
	return nil
}

func (f *fakeProjectStore) Search(_ context.Context, q string, limit int) ([]*models.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.searchErr != nil {
		return nil, f.searchErr
	}

	q = strings.ToLower(q)
	var out []*models.Project
	for _, p := range f.projects {
		if strings.Contains(strings.ToLower(p.Title), q) || strings.Contains(strings.ToLower(p.Description), q) {
			clone := *p
			out = append(out, &clone)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeProjectStore) writeCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.writes
}

type fakeSkillStore struct {
	skills    []*models.Skill
	err       error
	searchErr error
}

func (f *fakeSkillStore) FindAll(context.Context) ([]*models.Skill, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := append([]*models.Skill(nil), f.skills...)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeSkillStore) FindByIDs(_ context.Context, ids []uuid.UUID) ([]*models.Skill, error) {
	if f.err != nil {
		return nil, f.err
	}
	wanted := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	out := []*models.Skill{}
	for _, s := range f.skills {
		if wanted[s.ID] {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSkillStore) Search(_ context.Context, q string, limit int) ([]*models.Skill, error) {
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	q = strings.ToLower(q)
	var out []*models.Skill
	for _, s := range f.skills {
		if strings.Contains(strings.ToLower(s.Name), q) {
			out = append(out, s)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

type fakeProjectSkillStore struct {
	counts []models.SkillCount
	err    error
}

func (f *fakeProjectSkillStore) CountBySkill(_ context.Context, limit int) ([]models.SkillCount, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := append([]models.SkillCount(nil), f.counts...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
