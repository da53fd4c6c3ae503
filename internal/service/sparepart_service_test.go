package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vcsystems/incident-service/internal/domain"
)

type fakeSparePartRepo struct {
	seq      int
	requests map[string]domain.SparePartRequest
}

func newFakeSparePartRepo() *fakeSparePartRepo {
	return &fakeSparePartRepo{requests: make(map[string]domain.SparePartRequest)}
}

func (r *fakeSparePartRepo) Create(_ context.Context, request *domain.SparePartRequest) error {
	r.seq++
	request.ID = fmt.Sprintf("spr-%d", r.seq)
	r.requests[request.ID] = *request
	return nil
}

func (r *fakeSparePartRepo) Update(_ context.Context, request *domain.SparePartRequest) error {
	if _, ok := r.requests[request.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.requests[request.ID] = *request
	return nil
}

func (r *fakeSparePartRepo) GetByID(_ context.Context, id string) (*domain.SparePartRequest, error) {
	request, ok := r.requests[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &request, nil
}

func (r *fakeSparePartRepo) ListAll(_ context.Context) ([]domain.SparePartRequest, error) {
	var result []domain.SparePartRequest
	for _, request := range r.requests {
		result = append(result, request)
	}
	return result, nil
}

func (r *fakeSparePartRepo) ListByStatus(_ context.Context, status domain.SparePartStatus) ([]domain.SparePartRequest, error) {
	var result []domain.SparePartRequest
	for _, request := range r.requests {
		if request.Status == status {
			result = append(result, request)
		}
	}
	return result, nil
}

func newSparePartFixture(t *testing.T) (*SparePartService, string) {
	t.Helper()
	engine := newEngineFixture()
	incident := engine.createIncident(t)
	return NewSparePartService(newFakeSparePartRepo(), engine.incidents), incident.ID
}

func TestSparePartCreateRequest_RecordsRequesterAndJustification(t *testing.T) {
	svc, incidentID := newSparePartFixture(t)
	justification := "fuser unit worn beyond service limits"

	request, err := svc.CreateRequest(context.Background(), incidentID, "tech-1", "fuser unit", 2, &justification)

	require.NoError(t, err)
	assert.Equal(t, domain.SparePartStatusRequested, request.Status)
	assert.Equal(t, "tech-1", request.TechnicianID)
	require.NotNil(t, request.Justification)
	assert.Equal(t, justification, *request.Justification)
	assert.NotEmpty(t, request.ID)
}

func TestSparePartCreateRequest_Validation(t *testing.T) {
	svc, incidentID := newSparePartFixture(t)
	ctx := context.Background()

	_, err := svc.CreateRequest(ctx, incidentID, "tech-1", "  ", 1, nil)
	assert.Error(t, err, "empty part")

	_, err = svc.CreateRequest(ctx, incidentID, "", "fuser unit", 1, nil)
	assert.Error(t, err, "missing technician")

	_, err = svc.CreateRequest(ctx, incidentID, "tech-1", "fuser unit", 0, nil)
	assert.Error(t, err, "non-positive quantity")

	_, err = svc.CreateRequest(ctx, "inc-404", "tech-1", "fuser unit", 1, nil)
	assert.Error(t, err, "unknown incident")
}

func TestSparePartUpdateStatus(t *testing.T) {
	svc, incidentID := newSparePartFixture(t)
	ctx := context.Background()

	request, err := svc.CreateRequest(ctx, incidentID, "tech-1", "fuser unit", 1, nil)
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(ctx, request.ID, domain.SparePartStatusApproved)
	require.NoError(t, err)
	assert.Equal(t, domain.SparePartStatusApproved, updated.Status)

	_, err = svc.UpdateStatus(ctx, request.ID, "BOGUS")
	assert.Error(t, err)

	_, err = svc.UpdateStatus(ctx, "spr-404", domain.SparePartStatusRejected)
	assert.Error(t, err)
}
