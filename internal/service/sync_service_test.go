package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/zoklk/ProjectTracker/internal/model"
	"github.com/zoklk/ProjectTracker/internal/mq"
)

func newSyncService(t *testing.T, fetcher *stubFetcher, store *stubProjectStore, pub EventPublisher) *SyncService {
	t.Helper()
	return NewSyncService(fetcher, store, pub, zap.NewNop())
}

func remote(id, name, status string, start, end time.Time) model.RemoteProject {
	return model.RemoteProject{RemoteID: id, Name: name, Status: status, StartDate: start, EndDate: end}
}

func TestSyncCreatesNewRemoteProjects(t *testing.T) {
	start := day(2026, 8, 1)
	end := day(2026, 9, 30)
	fetcher := &stubFetcher{remotes: []model.RemoteProject{
		remote("r1", "Thesis", model.StatusActive, start, end),
		remote("r2", "Blog", model.StatusNotStarted, start, end),
	}}
	store := &stubProjectStore{}
	svc := newSyncService(t, fetcher, store, nil)

	result, err := svc.Sync(context.Background())
	require.NoError(t, err)

	assert.Equal(t, model.SyncResult{Created: 2, Updated: 0, Deleted: 0}, result)
	require.Len(t, store.gotCreates, 2)
	assert.Empty(t, store.gotUpdates)
	assert.Empty(t, store.gotDeletes)

	created := store.gotCreates[0]
	assert.Equal(t, "r1", created.RemoteID)
	assert.Equal(t, "Thesis", created.Name)
	assert.Equal(t, 1, created.TargetValue)
	assert.Equal(t, 0, created.InitialProgress)
}

func TestSyncIsIdempotent(t *testing.T) {
	start := day(2026, 8, 1)
	end := day(2026, 9, 30)
	fetcher := &stubFetcher{remotes: []model.RemoteProject{
		remote("r1", "Thesis", model.StatusActive, start, end),
	}}
	store := &stubProjectStore{projects: []model.Project{
		{ID: 1, RemoteID: "r1", Name: "Thesis", Status: model.StatusActive, StartDate: start, EndDate: end, TargetValue: 10},
	}}
	svc := newSyncService(t, fetcher, store, nil)

	result, err := svc.Sync(context.Background())
	require.NoError(t, err)

	assert.Equal(t, model.SyncResult{}, result)
	assert.Empty(t, store.gotCreates)
	assert.Empty(t, store.gotUpdates)
	assert.Empty(t, store.gotDeletes)
}

func TestSyncUpdatesOnlyRemoteOwnedFields(t *testing.T) {
	start := day(2026, 8, 1)
	fetcher := &stubFetcher{remotes: []model.RemoteProject{
		remote("r1", "Thesis v2", model.StatusDone, start, day(2026, 10, 15)),
	}}
	store := &stubProjectStore{projects: []model.Project{
		{
			ID: 1, RemoteID: "r1", Name: "Thesis", Status: model.StatusActive,
			StartDate: start, EndDate: day(2026, 9, 30),
			TargetValue: 10, InitialProgress: 3,
		},
	}}
	svc := newSyncService(t, fetcher, store, nil)

	result, err := svc.Sync(context.Background())
	require.NoError(t, err)

	assert.Equal(t, model.SyncResult{Updated: 1}, result)
	require.Len(t, store.gotUpdates, 1)

	updated := store.gotUpdates[0]
	assert.Equal(t, "Thesis v2", updated.Name)
	assert.Equal(t, model.StatusDone, updated.Status)
	assert.True(t, updated.EndDate.Equal(day(2026, 10, 15)))
	// locally-owned fields survive untouched
	assert.Equal(t, 10, updated.TargetValue)
	assert.Equal(t, 3, updated.InitialProgress)
}

func TestSyncDeletesRowsMissingFromRemote(t *testing.T) {
	fetcher := &stubFetcher{}
	store := &stubProjectStore{projects: []model.Project{
		{ID: 1, RemoteID: "r1", Name: "Gone"},
		{ID: 2, RemoteID: "r2", Name: "Also gone"},
	}}
	svc := newSyncService(t, fetcher, store, nil)

	result, err := svc.Sync(context.Background())
	require.NoError(t, err)

	assert.Equal(t, model.SyncResult{Deleted: 2}, result)
	assert.ElementsMatch(t, []string{"r1", "r2"}, store.gotDeletes)
}

func TestSyncFetchFailureLeavesStoreUntouched(t *testing.T) {
	fetcher := &stubFetcher{err: errStore}
	store := &stubProjectStore{}
	svc := newSyncService(t, fetcher, store, nil)

	_, err := svc.Sync(context.Background())

	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Zero(t, store.batchCalls)
}

func TestSyncRejectsDuplicateRemoteIDs(t *testing.T) {
	start := day(2026, 8, 1)
	end := day(2026, 9, 30)
	fetcher := &stubFetcher{remotes: []model.RemoteProject{
		remote("r1", "One", model.StatusActive, start, end),
		remote("r1", "Two", model.StatusActive, start, end),
	}}
	store := &stubProjectStore{}
	svc := newSyncService(t, fetcher, store, nil)

	_, err := svc.Sync(context.Background())

	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Zero(t, store.batchCalls)
}

func TestSyncBatchFailurePropagates(t *testing.T) {
	fetcher := &stubFetcher{remotes: []model.RemoteProject{
		remote("r1", "Thesis", model.StatusActive, day(2026, 8, 1), day(2026, 9, 30)),
	}}
	store := &stubProjectStore{batchErr: errStore}
	svc := newSyncService(t, fetcher, store, nil)

	_, err := svc.Sync(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, errStore)
}

func TestSyncPublishesEvent(t *testing.T) {
	fetcher := &stubFetcher{remotes: []model.RemoteProject{
		remote("r1", "Thesis", model.StatusActive, day(2026, 8, 1), day(2026, 9, 30)),
	}}
	store := &stubProjectStore{}
	pub := &stubPublisher{}
	svc := newSyncService(t, fetcher, store, pub)

	_, err := svc.Sync(context.Background())
	require.NoError(t, err)

	require.Len(t, pub.keys, 1)
	assert.Equal(t, mq.RoutingKeyProjectSynced, pub.keys[0])
	assert.Equal(t, mq.ProjectSyncedPayload{Created: 1}, pub.payloads[0])
}

func TestSyncPublishFailureDoesNotFailSync(t *testing.T) {
	fetcher := &stubFetcher{remotes: []model.RemoteProject{
		remote("r1", "Thesis", model.StatusActive, day(2026, 8, 1), day(2026, 9, 30)),
	}}
	store := &stubProjectStore{}
	pub := &stubPublisher{err: errStore}
	svc := newSyncService(t, fetcher, store, pub)

	result, err := svc.Sync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Created)
}

func TestSyncMixedBatch(t *testing.T) {
	start := day(2026, 8, 1)
	end := day(2026, 9, 30)
	fetcher := &stubFetcher{remotes: []model.RemoteProject{
		remote("r1", "Kept", model.StatusActive, start, end),
		remote("r2", "Renamed", model.StatusActive, start, end),
		remote("r3", "Brand new", model.StatusNotStarted, start, end),
	}}
	store := &stubProjectStore{projects: []model.Project{
		{ID: 1, RemoteID: "r1", Name: "Kept", Status: model.StatusActive, StartDate: start, EndDate: end},
		{ID: 2, RemoteID: "r2", Name: "Old name", Status: model.StatusActive, StartDate: start, EndDate: end},
		{ID: 3, RemoteID: "r9", Name: "Dropped remotely"},
	}}
	svc := newSyncService(t, fetcher, store, nil)

	result, err := svc.Sync(context.Background())
	require.NoError(t, err)

	assert.Equal(t, model.SyncResult{Created: 1, Updated: 1, Deleted: 1}, result)
	assert.Equal(t, "r3", store.gotCreates[0].RemoteID)
	assert.Equal(t, "Renamed", store.gotUpdates[0].Name)
	assert.Equal(t, []string{"r9"}, store.gotDeletes)
}
