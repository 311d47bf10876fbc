package usecases_test

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"residual-hub.backend/internal/domain/entities"
	"residual-hub.backend/internal/domain/repositories"
	"residual-hub.backend/pkg/utils"
)

// Mock UnitOfWork
type MockUnitOfWork struct {
	mock.Mock
}

func (m *MockUnitOfWork) Do(ctx context.Context, f func(context.Context) error) error {
	m.Called(ctx, f)
	return f(ctx)
}

// Mock MerchantRepository
type MockMerchantRepository struct {
	mock.Mock
}

func (m *MockMerchantRepository) Upsert(ctx context.Context, merchant *entities.Merchant) error {
	args := m.Called(ctx, merchant)
	return args.Error(0)
}

func (m *MockMerchantRepository) GetByMerchantID(ctx context.Context, merchantID string) (*entities.Merchant, error) {
	args := m.Called(ctx, merchantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Merchant), args.Error(1)
}

func (m *MockMerchantRepository) List(ctx context.Context, pagination utils.PaginationParams) ([]*entities.Merchant, int64, error) {
	args := m.Called(ctx, pagination)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.Merchant), args.Get(1).(int64), args.Error(2)
}

func (m *MockMerchantRepository) ExistingIDs(ctx context.Context, merchantIDs []string) (map[string]bool, error) {
	args := m.Called(ctx, merchantIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]bool), args.Error(1)
}

// Mock ProcessorRecordRepository
type MockProcessorRecordRepository struct {
	mock.Mock
}

func (m *MockProcessorRecordRepository) ReplaceForProcessorMonth(ctx context.Context, processorName, month string, records []*entities.ProcessorRecord) error {
	args := m.Called(ctx, processorName, month, records)
	return args.Error(0)
}

func (m *MockProcessorRecordRepository) ListByMonth(ctx context.Context, month string) ([]*entities.ProcessorRecord, error) {
	args := m.Called(ctx, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.ProcessorRecord), args.Error(1)
}

func (m *MockProcessorRecordRepository) ListRange(ctx context.Context, from, to, processorName string) ([]*entities.ProcessorRecord, error) {
	args := m.Called(ctx, from, to, processorName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.ProcessorRecord), args.Error(1)
}

func (m *MockProcessorRecordRepository) DistinctMerchantIDs(ctx context.Context, month string) ([]string, error) {
	args := m.Called(ctx, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// Mock RoleRepository
type MockRoleRepository struct {
	mock.Mock
}

func (m *MockRoleRepository) GetOrCreate(ctx context.Context, name string, roleType entities.RoleType) (*entities.Role, error) {
	args := m.Called(ctx, name, roleType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Role), args.Error(1)
}

func (m *MockRoleRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Role, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Role), args.Error(1)
}

func (m *MockRoleRepository) List(ctx context.Context) ([]*entities.Role, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Role), args.Error(1)
}

// Mock AssignmentRepository
type MockAssignmentRepository struct {
	mock.Mock
}

func (m *MockAssignmentRepository) Upsert(ctx context.Context, assignment *entities.Assignment) error {
	args := m.Called(ctx, assignment)
	return args.Error(0)
}

func (m *MockAssignmentRepository) ListByMonth(ctx context.Context, month string) ([]*entities.Assignment, error) {
	args := m.Called(ctx, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Assignment), args.Error(1)
}

func (m *MockAssignmentRepository) ListByMerchantMonth(ctx context.Context, merchantID, month string) ([]*entities.Assignment, error) {
	args := m.Called(ctx, merchantID, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Assignment), args.Error(1)
}

// Mock AuditIssueRepository
type MockAuditIssueRepository struct {
	mock.Mock
}

func (m *MockAuditIssueRepository) Create(ctx context.Context, issue *entities.AuditIssue) error {
	args := m.Called(ctx, issue)
	return args.Error(0)
}

func (m *MockAuditIssueRepository) FindActive(ctx context.Context, merchantID, month string, issueType entities.IssueType) (*entities.AuditIssue, error) {
	args := m.Called(ctx, merchantID, month, issueType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.AuditIssue), args.Error(1)
}

func (m *MockAuditIssueRepository) Update(ctx context.Context, issue *entities.AuditIssue) error {
	args := m.Called(ctx, issue)
	return args.Error(0)
}

func (m *MockAuditIssueRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.AuditIssue, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.AuditIssue), args.Error(1)
}

func (m *MockAuditIssueRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.IssueStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockAuditIssueRepository) List(ctx context.Context, filter repositories.IssueFilter, pagination utils.PaginationParams) ([]*entities.AuditIssue, int64, error) {
	args := m.Called(ctx, filter, pagination)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.AuditIssue), args.Get(1).(int64), args.Error(2)
}
