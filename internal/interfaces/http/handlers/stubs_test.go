package handlers

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"residual-hub.backend/internal/domain/entities"
	domainerrors "residual-hub.backend/internal/domain/errors"
	"residual-hub.backend/internal/domain/repositories"
	"residual-hub.backend/pkg/utils"
)

// In-memory repository stubs shared by the handler tests

type uowStub struct{}

func (uowStub) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type merchantRepoStub struct {
	byID map[string]*entities.Merchant
}

func newMerchantRepoStub() *merchantRepoStub {
	return &merchantRepoStub{byID: map[string]*entities.Merchant{}}
}

func (s *merchantRepoStub) Upsert(_ context.Context, merchant *entities.Merchant) error {
	existing, ok := s.byID[merchant.MerchantID]
	if ok {
		existing.DBA = merchant.DBA
		existing.CurrentProcessor = merchant.CurrentProcessor
		return nil
	}
	m := *merchant
	s.byID[merchant.MerchantID] = &m
	return nil
}

func (s *merchantRepoStub) GetByMerchantID(_ context.Context, merchantID string) (*entities.Merchant, error) {
	m, ok := s.byID[merchantID]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	return m, nil
}

func (s *merchantRepoStub) List(_ context.Context, _ utils.PaginationParams) ([]*entities.Merchant, int64, error) {
	ids := make([]string, 0, len(s.byID))
	for id := range s.byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]*entities.Merchant, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.byID[id])
	}
	return out, int64(len(out)), nil
}

func (s *merchantRepoStub) ExistingIDs(_ context.Context, merchantIDs []string) (map[string]bool, error) {
	known := make(map[string]bool)
	for _, id := range merchantIDs {
		if _, ok := s.byID[id]; ok {
			known[id] = true
		}
	}
	return known, nil
}

type recordRepoStub struct {
	records []*entities.ProcessorRecord
}

func (s *recordRepoStub) ReplaceForProcessorMonth(_ context.Context, processorName, month string, records []*entities.ProcessorRecord) error {
	kept := s.records[:0]
	for _, r := range s.records {
		if r.ProcessorName != processorName || r.Month != month {
			kept = append(kept, r)
		}
	}
	s.records = append(kept, records...)
	return nil
}

func (s *recordRepoStub) ListByMonth(_ context.Context, month string) ([]*entities.ProcessorRecord, error) {
	var out []*entities.ProcessorRecord
	for _, r := range s.records {
		if r.Month == month {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *recordRepoStub) ListRange(_ context.Context, from, to, processorName string) ([]*entities.ProcessorRecord, error) {
	var out []*entities.ProcessorRecord
	for _, r := range s.records {
		if r.Month < from || r.Month > to {
			continue
		}
		if processorName != "" && r.ProcessorName != processorName {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (s *recordRepoStub) DistinctMerchantIDs(_ context.Context, month string) ([]string, error) {
	seen := map[string]bool{}
	var out []string
	for _, r := range s.records {
		if r.Month == month && !seen[r.MerchantID] {
			seen[r.MerchantID] = true
			out = append(out, r.MerchantID)
		}
	}
	return out, nil
}

type roleRepoStub struct {
	roles map[string]*entities.Role
}

func newRoleRepoStub() *roleRepoStub {
	return &roleRepoStub{roles: map[string]*entities.Role{}}
}

func (s *roleRepoStub) GetOrCreate(_ context.Context, name string, roleType entities.RoleType) (*entities.Role, error) {
	key := name + "/" + string(roleType)
	if r, ok := s.roles[key]; ok {
		return r, nil
	}
	r := &entities.Role{ID: utils.GenerateUUIDv7(), Name: name, Type: roleType, CreatedAt: time.Now()}
	s.roles[key] = r
	return r, nil
}

func (s *roleRepoStub) GetByID(_ context.Context, id uuid.UUID) (*entities.Role, error) {
	for _, r := range s.roles {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, domainerrors.ErrNotFound
}

func (s *roleRepoStub) List(context.Context) ([]*entities.Role, error) {
	out := make([]*entities.Role, 0, len(s.roles))
	for _, r := range s.roles {
		out = append(out, r)
	}
	return out, nil
}

type assignmentRepoStub struct {
	assignments map[string]*entities.Assignment
}

func newAssignmentRepoStub() *assignmentRepoStub {
	return &assignmentRepoStub{assignments: map[string]*entities.Assignment{}}
}

func (s *assignmentRepoStub) Upsert(_ context.Context, assignment *entities.Assignment) error {
	key := assignment.MerchantID + "/" + assignment.RoleID.String() + "/" + assignment.Month
	if existing, ok := s.assignments[key]; ok {
		existing.Percentage = assignment.Percentage
		existing.RoleType = assignment.RoleType
		return nil
	}
	a := *assignment
	a.ID = utils.GenerateUUIDv7()
	s.assignments[key] = &a
	return nil
}

func (s *assignmentRepoStub) ListByMonth(_ context.Context, month string) ([]*entities.Assignment, error) {
	var out []*entities.Assignment
	for _, a := range s.assignments {
		if a.Month == month {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *assignmentRepoStub) ListByMerchantMonth(_ context.Context, merchantID, month string) ([]*entities.Assignment, error) {
	var out []*entities.Assignment
	for _, a := range s.assignments {
		if a.Month == month && a.MerchantID == merchantID {
			out = append(out, a)
		}
	}
	return out, nil
}

type issueRepoStub struct {
	issues map[uuid.UUID]*entities.AuditIssue
}

func newIssueRepoStub() *issueRepoStub {
	return &issueRepoStub{issues: map[uuid.UUID]*entities.AuditIssue{}}
}

func (s *issueRepoStub) Create(_ context.Context, issue *entities.AuditIssue) error {
	i := *issue
	s.issues[i.ID] = &i
	return nil
}

func (s *issueRepoStub) FindActive(_ context.Context, merchantID, month string, issueType entities.IssueType) (*entities.AuditIssue, error) {
	for _, i := range s.issues {
		if i.MerchantID == merchantID && i.Month == month && i.Type == issueType && i.Status != entities.IssueStatusResolved {
			return i, nil
		}
	}
	return nil, domainerrors.ErrNotFound
}

func (s *issueRepoStub) Update(_ context.Context, issue *entities.AuditIssue) error {
	if _, ok := s.issues[issue.ID]; !ok {
		return domainerrors.ErrNotFound
	}
	i := *issue
	s.issues[issue.ID] = &i
	return nil
}

func (s *issueRepoStub) GetByID(_ context.Context, id uuid.UUID) (*entities.AuditIssue, error) {
	i, ok := s.issues[id]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	return i, nil
}

func (s *issueRepoStub) UpdateStatus(_ context.Context, id uuid.UUID, status entities.IssueStatus) error {
	i, ok := s.issues[id]
	if !ok {
		return domainerrors.ErrNotFound
	}
	i.Status = status
	return nil
}

func (s *issueRepoStub) List(_ context.Context, filter repositories.IssueFilter, _ utils.PaginationParams) ([]*entities.AuditIssue, int64, error) {
	var out []*entities.AuditIssue
	for _, i := range s.issues {
		if filter.Month != "" && i.Month != filter.Month {
			continue
		}
		if filter.Status != "" && i.Status != filter.Status {
			continue
		}
		if filter.Type != "" && i.Type != filter.Type {
			continue
		}
		out = append(out, i)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].MerchantID < out[b].MerchantID })
	return out, int64(len(out)), nil
}
