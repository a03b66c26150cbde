package whitelist

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-LabBookingService/internal/domain"
	equipmentRepo "github.com/m04kA/SMC-LabBookingService/internal/infra/storage/equipment"
	whitelistRepo "github.com/m04kA/SMC-LabBookingService/internal/infra/storage/whitelist"
	"github.com/m04kA/SMC-LabBookingService/internal/service/whitelist/models"
	"github.com/m04kA/SMC-LabBookingService/pkg/logger"
	"github.com/m04kA/SMC-LabBookingService/pkg/ptr"
)

type mockApplicationRepo struct{ mock.Mock }

func (m *mockApplicationRepo) Create(ctx context.Context, app *domain.WhitelistApplication) (*domain.WhitelistApplication, error) {
	args := m.Called(ctx, app)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WhitelistApplication), args.Error(1)
}

func (m *mockApplicationRepo) GetByID(ctx context.Context, id int64) (*domain.WhitelistApplication, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WhitelistApplication), args.Error(1)
}

func (m *mockApplicationRepo) FindPending(ctx context.Context, equipmentID int64, name string) (*domain.WhitelistApplication, error) {
	args := m.Called(ctx, equipmentID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WhitelistApplication), args.Error(1)
}

func (m *mockApplicationRepo) List(ctx context.Context, status *domain.ApplicationStatus) ([]*domain.WhitelistApplication, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.WhitelistApplication), args.Error(1)
}

func (m *mockApplicationRepo) UpdateStatus(ctx context.Context, id int64, status domain.ApplicationStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

type mockEquipmentRepo struct{ mock.Mock }

func (m *mockEquipmentRepo) GetByID(ctx context.Context, id int64) (*domain.Equipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Equipment), args.Error(1)
}

func (m *mockEquipmentRepo) UpdateWhitelist(ctx context.Context, id int64, whitelist string) error {
	return m.Called(ctx, id, whitelist).Error(0)
}

type passthroughTx struct{}

func (passthroughTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newService() (*Service, *mockApplicationRepo, *mockEquipmentRepo) {
	apps := &mockApplicationRepo{}
	eq := &mockEquipmentRepo{}
	return NewService(apps, eq, passthroughTx{}, logger.NewNop()), apps, eq
}

func TestService_Apply(t *testing.T) {
	svc, apps, eq := newService()

	eq.On("GetByID", mock.Anything, int64(1)).Return(&domain.Equipment{ID: 1, WhitelistEnabled: true}, nil)
	apps.On("FindPending", mock.Anything, int64(1), "Bob").Return(nil, whitelistRepo.ErrApplicationNotFound)
	apps.On("Create", mock.Anything, mock.MatchedBy(func(a *domain.WhitelistApplication) bool {
		return a.Requester.Name == "Bob" && a.Status == domain.ApplicationPending
	})).Return(&domain.WhitelistApplication{ID: 5, EquipmentID: 1, Requester: domain.Requester{Name: "Bob"}, Status: domain.ApplicationPending}, nil)

	resp, err := svc.Apply(context.Background(), 1, &models.ApplyRequest{StudentName: " Bob "})
	require.NoError(t, err)
	assert.Equal(t, int64(5), resp.ID)
	assert.Equal(t, "pending", resp.Status)
}

func TestService_Apply_ReturnsExistingPending(t *testing.T) {
	svc, apps, eq := newService()

	eq.On("GetByID", mock.Anything, int64(1)).Return(&domain.Equipment{ID: 1}, nil)
	apps.On("FindPending", mock.Anything, int64(1), "Bob").
		Return(&domain.WhitelistApplication{ID: 4, Status: domain.ApplicationPending}, nil)

	resp, err := svc.Apply(context.Background(), 1, &models.ApplyRequest{StudentName: "Bob"})
	require.NoError(t, err)
	assert.Equal(t, int64(4), resp.ID)
	apps.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_Apply_Errors(t *testing.T) {
	svc, _, eq := newService()

	_, err := svc.Apply(context.Background(), 1, &models.ApplyRequest{StudentName: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	eq.On("GetByID", mock.Anything, int64(9)).Return(nil, equipmentRepo.ErrEquipmentNotFound)
	_, err = svc.Apply(context.Background(), 9, &models.ApplyRequest{StudentName: "Bob"})
	assert.ErrorIs(t, err, domain.ErrEquipmentNotFound)
}

func TestService_Approve_AddsNameToWhitelist(t *testing.T) {
	svc, apps, eq := newService()

	apps.On("GetByID", mock.Anything, int64(5)).Return(&domain.WhitelistApplication{
		ID: 5, EquipmentID: 1, Requester: domain.Requester{Name: "Bob"}, Status: domain.ApplicationPending,
	}, nil)
	eq.On("GetByID", mock.Anything, int64(1)).Return(&domain.Equipment{ID: 1, WhitelistEnabled: true, Whitelist: "Alice"}, nil)
	eq.On("UpdateWhitelist", mock.Anything, int64(1), "Alice\nBob").Return(nil)
	apps.On("UpdateStatus", mock.Anything, int64(5), domain.ApplicationApproved).Return(nil)

	resp, err := svc.Approve(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "approved", resp.Status)
	eq.AssertExpectations(t)
	apps.AssertExpectations(t)
}

func TestService_Approve_AlreadyDecided(t *testing.T) {
	svc, apps, eq := newService()

	apps.On("GetByID", mock.Anything, int64(5)).Return(&domain.WhitelistApplication{
		ID: 5, EquipmentID: 1, Status: domain.ApplicationRejected,
	}, nil)
	eq.On("GetByID", mock.Anything, int64(1)).Return(&domain.Equipment{ID: 1}, nil)

	_, err := svc.Approve(context.Background(), 5)
	assert.ErrorIs(t, err, domain.ErrApplicationDecided)
	eq.AssertNotCalled(t, "UpdateWhitelist", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_RejectAndList(t *testing.T) {
	svc, apps, _ := newService()

	apps.On("GetByID", mock.Anything, int64(6)).Return(&domain.WhitelistApplication{ID: 6, Status: domain.ApplicationPending}, nil)
	apps.On("UpdateStatus", mock.Anything, int64(6), domain.ApplicationRejected).Return(nil)

	resp, err := svc.Reject(context.Background(), 6)
	require.NoError(t, err)
	assert.Equal(t, "rejected", resp.Status)

	apps.On("GetByID", mock.Anything, int64(7)).Return(nil, whitelistRepo.ErrApplicationNotFound)
	_, err = svc.Reject(context.Background(), 7)
	assert.ErrorIs(t, err, domain.ErrApplicationNotFound)

	pending := domain.ApplicationPending
	apps.On("List", mock.Anything, &pending).Return([]*domain.WhitelistApplication{{ID: 1}}, nil)
	list, err := svc.List(context.Background(), ptr.Ptr("pending"))
	require.NoError(t, err)
	assert.Len(t, list.Applications, 1)

	_, err = svc.List(context.Background(), ptr.Ptr("maybe"))
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}
