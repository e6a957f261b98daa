package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plexdi/studio/modules/commissions/domain/aggregates/commission"
	"github.com/plexdi/studio/modules/commissions/infrastructure/cache"
	"github.com/plexdi/studio/modules/commissions/infrastructure/studioapi"
	"github.com/plexdi/studio/modules/commissions/services"
	"github.com/plexdi/studio/pkg/eventbus"
)

type fakeClient struct {
	listResult   []commission.Commission
	listErr      error
	createResult commission.Commission
	createErr    error
	updateErr    error
	deleteErr    error

	updateCalls []string
	deleteCalls []string
}

func (f *fakeClient) List(_ context.Context) ([]commission.Commission, error) {
	return f.listResult, f.listErr
}

func (f *fakeClient) Create(_ context.Context, params studioapi.CreateParams) (commission.Commission, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.createResult, nil
}

func (f *fakeClient) UpdateStatus(_ context.Context, id string, status commission.Status) error {
	f.updateCalls = append(f.updateCalls, id+":"+string(status))
	return f.updateErr
}

func (f *fakeClient) Delete(_ context.Context, id string) error {
	f.deleteCalls = append(f.deleteCalls, id)
	return f.deleteErr
}

func record(id string) commission.Commission {
	return commission.New("Ada", "a@x.com", commission.KindBanner, commission.WithID(id))
}

func newSyncService(t *testing.T, client *fakeClient) (*services.SyncService, *cache.CommissionCache) {
	t.Helper()
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	commissionCache := cache.New()
	return services.NewSyncService(client, commissionCache, eventbus.NewEventPublisher(logger)), commissionCache
}

func TestSyncService_RefreshReplacesCache(t *testing.T) {
	t.Parallel()

	client := &fakeClient{listResult: []commission.Commission{record("1"), record("2")}}
	svc, commissionCache := newSyncService(t, client)

	items, revision, err := svc.Refresh(context.Background())
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, revision, commissionCache.Revision())
}

func TestSyncService_UpdateStatusRevertsOnServerFailure(t *testing.T) {
	t.Parallel()

	client := &fakeClient{
		listResult: []commission.Commission{record("1")},
		updateErr:  &studioapi.RemoteError{StatusCode: 500, Message: "Server error: 500"},
	}
	svc, commissionCache := newSyncService(t, client)
	_, revision, err := svc.Refresh(context.Background())
	require.NoError(t, err)

	err = svc.UpdateStatus(context.Background(), revision, "1", commission.StatusCompleted)
	require.Error(t, err)

	got, ok := commissionCache.Get("1")
	require.True(t, ok)
	assert.Equal(t, commission.StatusQueued, got.Status(), "failed PATCH reverts the optimistic change")
}

func TestSyncService_UpdateStatusAppliesOptimistically(t *testing.T) {
	t.Parallel()

	client := &fakeClient{listResult: []commission.Commission{record("1")}}
	svc, commissionCache := newSyncService(t, client)
	_, revision, err := svc.Refresh(context.Background())
	require.NoError(t, err)

	require.NoError(t, svc.UpdateStatus(context.Background(), revision, "1", commission.StatusInProgress))
	assert.Equal(t, []string{"1:in_progress"}, client.updateCalls)

	got, _ := commissionCache.Get("1")
	assert.Equal(t, commission.StatusInProgress, got.Status())
}

func TestSyncService_StaleRevisionForcesRefresh(t *testing.T) {
	t.Parallel()

	client := &fakeClient{listResult: []commission.Commission{record("1")}}
	svc, _ := newSyncService(t, client)
	_, revision, err := svc.Refresh(context.Background())
	require.NoError(t, err)

	require.NoError(t, svc.UpdateStatus(context.Background(), revision, "1", commission.StatusInProgress))

	err = svc.UpdateStatus(context.Background(), revision, "1", commission.StatusCompleted)
	assert.ErrorIs(t, err, services.ErrStaleView)
	// Only the first update reached the server.
	assert.Len(t, client.updateCalls, 1)
}

func TestSyncService_DeleteReinsertsOnServerFailure(t *testing.T) {
	t.Parallel()

	client := &fakeClient{
		listResult: []commission.Commission{record("1"), record("2"), record("3")},
		deleteErr:  errors.New("connection reset"),
	}
	svc, commissionCache := newSyncService(t, client)
	_, revision, err := svc.Refresh(context.Background())
	require.NoError(t, err)

	err = svc.Delete(context.Background(), revision, "2")
	require.Error(t, err)

	items, _ := commissionCache.All()
	require.Len(t, items, 3)
	assert.Equal(t, "2", items[1].ID(), "failed delete reinserts at the original position")
}

func TestSyncService_DeleteRemovesImmediately(t *testing.T) {
	t.Parallel()

	client := &fakeClient{listResult: []commission.Commission{record("1"), record("2")}}
	svc, commissionCache := newSyncService(t, client)
	_, revision, err := svc.Refresh(context.Background())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), revision, "1"))
	assert.Equal(t, []string{"1"}, client.deleteCalls)

	_, ok := commissionCache.Get("1")
	assert.False(t, ok)
}

func TestSyncService_CreateConfirmsWithServerRecord(t *testing.T) {
	t.Parallel()

	client := &fakeClient{
		listResult:   []commission.Commission{record("1")},
		createResult: record("42"),
	}
	svc, commissionCache := newSyncService(t, client)
	_, revision, err := svc.Refresh(context.Background())
	require.NoError(t, err)

	created, err := svc.Create(context.Background(), revision, studioapi.CreateParams{
		Name: "Ada", Email: "a@x.com", Kind: commission.KindBanner,
	})
	require.NoError(t, err)
	assert.Equal(t, "42", created.ID())

	items, _ := commissionCache.All()
	require.Len(t, items, 2)
	assert.Equal(t, "42", items[0].ID(), "confirmed record replaces the optimistic head")
}

func TestSyncService_CreateDiscardsOnServerFailure(t *testing.T) {
	t.Parallel()

	client := &fakeClient{
		listResult: []commission.Commission{record("1")},
		createErr:  &studioapi.RemoteError{StatusCode: 422, Message: "name required"},
	}
	svc, commissionCache := newSyncService(t, client)
	_, revision, err := svc.Refresh(context.Background())
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), revision, studioapi.CreateParams{
		Name: "Ada", Kind: commission.KindBanner,
	})
	require.Error(t, err)
	assert.Equal(t, 1, commissionCache.Len(), "optimistic record is discarded")
}

func TestSyncService_CountsAggregateByStatus(t *testing.T) {
	t.Parallel()

	client := &fakeClient{listResult: []commission.Commission{
		record("1"),
		commission.New("Bea", "b@x.com", commission.KindLogo, commission.WithID("2"), commission.WithStatus(commission.StatusInProgress)),
		commission.New("Cy", "c@x.com", commission.KindEmotes, commission.WithID("3"), commission.WithStatus(commission.StatusCompleted)),
	}}
	svc, _ := newSyncService(t, client)

	counts, err := svc.Counts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, services.Counts{Total: 3, Queued: 1, InProgress: 1, Completed: 1}, counts)
}
