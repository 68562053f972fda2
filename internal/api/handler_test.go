package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/zoklk/ProjectTracker/internal/model"
	"github.com/zoklk/ProjectTracker/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeProjectStore struct {
	projects []model.Project
}

func (s *fakeProjectStore) FindAll(ctx context.Context) ([]model.Project, error) {
	return s.projects, nil
}

func (s *fakeProjectStore) FindByID(ctx context.Context, id int) (*model.Project, error) {
	for i := range s.projects {
		if s.projects[i].ID == id {
			return &s.projects[i], nil
		}
	}
	return nil, nil
}

func (s *fakeProjectStore) ApplySyncBatch(ctx context.Context, creates, updates []model.Project, deleteRemoteIDs []string) error {
	return nil
}

func (s *fakeProjectStore) BulkUpdateLocal(ctx context.Context, changes []model.ProjectLocalUpdate) (int, error) {
	return len(changes), nil
}

type fakeFetcher struct {
	err error
}

func (f *fakeFetcher) FetchAllProjects(ctx context.Context) ([]model.RemoteProject, error) {
	if f.err != nil {
		return nil, f.err
	}
	return nil, nil
}

func newProjectTestRouter(t *testing.T, store *fakeProjectStore, fetcher *fakeFetcher) *gin.Engine {
	t.Helper()
	logger := zap.NewNop()
	cache := NewDashboardCache(nil, logger)
	projectSvc := service.NewProjectService(store, logger)
	syncSvc := service.NewSyncService(fetcher, store, nil, logger)
	handler := NewProjectHandler(syncSvc, projectSvc, cache, logger)

	r := gin.New()
	r.POST("/projects/sync", handler.Sync)
	r.GET("/projects", handler.ListProjects)
	r.GET("/projects/:id", handler.GetProject)
	r.PUT("/projects", handler.BulkUpdate)
	return r
}

func TestListProjectsSortsByStatus(t *testing.T) {
	store := &fakeProjectStore{projects: []model.Project{
		{ID: 1, Name: "finished", Status: model.StatusDone},
		{ID: 2, Name: "running", Status: model.StatusActive},
	}}
	r := newProjectTestRouter(t, store, &fakeFetcher{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/projects", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	body := w.Body.String()
	assert.Less(t, strings.Index(body, "running"), strings.Index(body, "finished"))
}

func TestListProjectsUnknownFilter(t *testing.T) {
	r := newProjectTestRouter(t, &fakeProjectStore{}, &fakeFetcher{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/projects?filter=bogus", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
}

func TestGetProjectNotFound(t *testing.T) {
	r := newProjectTestRouter(t, &fakeProjectStore{}, &fakeFetcher{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/projects/99", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, 404, w.Code)
}

func TestGetProjectBadID(t *testing.T) {
	r := newProjectTestRouter(t, &fakeProjectStore{}, &fakeFetcher{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/projects/abc", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
}

func TestBulkUpdateValidationErrorMapsTo400(t *testing.T) {
	r := newProjectTestRouter(t, &fakeProjectStore{}, &fakeFetcher{})

	body := `{"updates":[{"id":1,"target_value":0,"initial_progress":0}]}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/projects", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
	assert.Contains(t, w.Body.String(), "invalid records")
}

func TestBulkUpdateAppliesValidBatch(t *testing.T) {
	r := newProjectTestRouter(t, &fakeProjectStore{}, &fakeFetcher{})

	body := `{"updates":[{"id":1,"target_value":10,"initial_progress":2}]}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/projects", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	assert.Contains(t, w.Body.String(), `"updated":1`)
}

func TestSyncFetchFailureMapsTo502(t *testing.T) {
	fetcher := &fakeFetcher{err: errors.New("notion down")}
	r := newProjectTestRouter(t, &fakeProjectStore{}, fetcher)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/projects/sync", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, 502, w.Code)
}

type fakeWorkLogStore struct{}

func (s *fakeWorkLogStore) FindByDate(ctx context.Context, date time.Time) ([]model.WorkLog, error) {
	return nil, nil
}

func (s *fakeWorkLogStore) FindByDateRange(ctx context.Context, start, end time.Time) ([]model.WorkLogWithProject, error) {
	return nil, nil
}

func (s *fakeWorkLogStore) BulkInsert(ctx context.Context, logs []model.WorkLog) (int, error) {
	return len(logs), nil
}

func (s *fakeWorkLogStore) BulkUpdate(ctx context.Context, changes []model.WorkLogUpdate) (int, error) {
	return len(changes), nil
}

func (s *fakeWorkLogStore) EfficiencyStats(ctx context.Context, projectIDs []int) (map[int]model.EfficiencyStats, error) {
	return map[int]model.EfficiencyStats{}, nil
}

func TestGetRangeRejectsMalformedDates(t *testing.T) {
	logger := zap.NewNop()
	cache := NewDashboardCache(nil, logger)
	projectSvc := service.NewProjectService(&fakeProjectStore{}, logger)
	workLogSvc := service.NewWorkLogService(&fakeWorkLogStore{}, projectSvc, logger)
	handler := NewWorkLogHandler(workLogSvc, cache, logger)

	r := gin.New()
	r.GET("/worklogs", handler.GetRange)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/worklogs?start=notadate&end=2026-08-29", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, 400, w.Code)
	assert.Contains(t, w.Body.String(), "YYYY-MM-DD")
}
