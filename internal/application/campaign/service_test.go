package campaign

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/leadbridge/backend/internal/domain/campaign"
	"github.com/leadbridge/backend/internal/domain/shared"
)

// MockRepository is a mock implementation of campaign.Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Save(ctx context.Context, c *campaign.Campaign) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockRepository) FindByID(ctx context.Context, id string) (*campaign.Campaign, error) {
	ret := m.Called(ctx, id)
	if ret.Get(0) == nil {
		return nil, ret.Error(1)
	}
	return ret.Get(0).(*campaign.Campaign), ret.Error(1)
}

func (m *MockRepository) FindAll(ctx context.Context) ([]*campaign.Campaign, error) {
	ret := m.Called(ctx)
	if ret.Get(0) == nil {
		return nil, ret.Error(1)
	}
	return ret.Get(0).([]*campaign.Campaign), ret.Error(1)
}

func (m *MockRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func TestCreate_DeduplicatesTags(t *testing.T) {
	repo := new(MockRepository)
	repo.On("Save", mock.Anything, mock.Anything).Return(nil)

	svc := NewService(repo, zap.NewNop())
	c, err := svc.Create(context.Background(), Input{
		Name:        "Q3 Outreach",
		PersonTags:  []string{"lead", "lead", "warm"},
		CompanyTags: []string{"saas", "saas"},
	})

	require.NoError(t, err)
	assert.NotEmpty(t, c.ID)
	assert.Equal(t, []string{"lead", "warm"}, c.PersonTags)
	assert.Equal(t, []string{"saas"}, c.CompanyTags)
	repo.AssertExpectations(t)
}

func TestCreate_NameRequired(t *testing.T) {
	repo := new(MockRepository)

	svc := NewService(repo, zap.NewNop())
	_, err := svc.Create(context.Background(), Input{Name: "  "})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestList(t *testing.T) {
	stored := []*campaign.Campaign{
		{ID: "b", Name: "newer"},
		{ID: "a", Name: "older"},
	}
	repo := new(MockRepository)
	repo.On("FindAll", mock.Anything).Return(stored, nil)

	svc := NewService(repo, zap.NewNop())
	got, err := svc.List(context.Background())

	require.NoError(t, err)
	assert.Equal(t, stored, got)
}

func TestUpdate_PreservesIDAndCreatedAt(t *testing.T) {
	existing, err := campaign.NewCampaign("before", []string{"x"}, nil)
	require.NoError(t, err)

	repo := new(MockRepository)
	repo.On("FindByID", mock.Anything, existing.ID).Return(existing, nil)
	repo.On("Save", mock.Anything, mock.Anything).Return(nil)

	svc := NewService(repo, zap.NewNop())
	updated, err := svc.Update(context.Background(), existing.ID, Input{
		Name:       "after",
		PersonTags: []string{"y", "y"},
	})

	require.NoError(t, err)
	assert.Equal(t, existing.ID, updated.ID)
	assert.Equal(t, existing.CreatedAt, updated.CreatedAt)
	assert.Equal(t, "after", updated.Name)
	assert.Equal(t, []string{"y"}, updated.PersonTags)
	repo.AssertExpectations(t)
}

func TestUpdate_NotFound(t *testing.T) {
	repo := new(MockRepository)
	repo.On("FindByID", mock.Anything, "missing").Return(nil, shared.ErrNotFound)

	svc := NewService(repo, zap.NewNop())
	_, err := svc.Update(context.Background(), "missing", Input{Name: "x"})

	assert.ErrorIs(t, err, shared.ErrNotFound)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestUpdate_ConcurrentEditsSerialized(t *testing.T) {
	existing, err := campaign.NewCampaign("base", nil, nil)
	require.NoError(t, err)

	repo := new(MockRepository)
	repo.On("FindByID", mock.Anything, existing.ID).Return(existing, nil)
	repo.On("Save", mock.Anything, mock.Anything).Return(nil)

	svc := NewService(repo, zap.NewNop())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Update(context.Background(), existing.ID, Input{Name: "edited"})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	repo.AssertNumberOfCalls(t, "Save", 8)
}

func TestDelete_Idempotent(t *testing.T) {
	repo := new(MockRepository)
	repo.On("Delete", mock.Anything, "any-id").Return(nil)

	svc := NewService(repo, zap.NewNop())
	require.NoError(t, svc.Delete(context.Background(), "any-id"))
	require.NoError(t, svc.Delete(context.Background(), "any-id"))
	repo.AssertNumberOfCalls(t, "Delete", 2)
}
