package service

import (
	"context"
	"errors"
	"time"

	"github.com/zoklk/ProjectTracker/internal/model"
)

// Stub collaborators shared across the service tests. Each records the
// arguments it saw so assertions can inspect what reached the store.

type stubFetcher struct {
	remotes []model.RemoteProject
	err     error
	calls   int
}

func (f *stubFetcher) FetchAllProjects(ctx context.Context) ([]model.RemoteProject, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.remotes, nil
}

type stubProjectStore struct {
	projects []model.Project

	findAllErr error
	batchErr   error

	batchCalls      int
	gotCreates      []model.Project
	gotUpdates      []model.Project
	gotDeletes      []string
	gotLocalChanges []model.ProjectLocalUpdate
	localUpdated    int
}

func (s *stubProjectStore) FindAll(ctx context.Context) ([]model.Project, error) {
	if s.findAllErr != nil {
		return nil, s.findAllErr
	}
	return s.projects, nil
}

func (s *stubProjectStore) FindByID(ctx context.Context, id int) (*model.Project, error) {
	for i := range s.projects {
		if s.projects[i].ID == id {
			return &s.projects[i], nil
		}
	}
	return nil, nil
}

func (s *stubProjectStore) ApplySyncBatch(ctx context.Context, creates, updates []model.Project, deleteRemoteIDs []string) error {
	s.batchCalls++
	s.gotCreates = creates
	s.gotUpdates = updates
	s.gotDeletes = deleteRemoteIDs
	return s.batchErr
}

func (s *stubProjectStore) BulkUpdateLocal(ctx context.Context, changes []model.ProjectLocalUpdate) (int, error) {
	s.gotLocalChanges = changes
	return s.localUpdated, nil
}

type stubWorkLogStore struct {
	logsByDate map[string][]model.WorkLog
	rangeLogs  []model.WorkLogWithProject
	stats      map[int]model.EfficiencyStats

	rangeErr error

	gotInserts []model.WorkLog
	gotUpdates []model.WorkLogUpdate
	updated    int
}

func dateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

func (s *stubWorkLogStore) FindByDate(ctx context.Context, date time.Time) ([]model.WorkLog, error) {
	return s.logsByDate[dateKey(date)], nil
}

func (s *stubWorkLogStore) FindByDateRange(ctx context.Context, start, end time.Time) ([]model.WorkLogWithProject, error) {
	if s.rangeErr != nil {
		return nil, s.rangeErr
	}
	var out []model.WorkLogWithProject
	for _, l := range s.rangeLogs {
		if l.WorkDate.Before(start) || l.WorkDate.After(end) {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

func (s *stubWorkLogStore) BulkInsert(ctx context.Context, logs []model.WorkLog) (int, error) {
	s.gotInserts = logs
	if s.logsByDate == nil {
		s.logsByDate = make(map[string][]model.WorkLog)
	}
	for _, l := range logs {
		key := dateKey(l.WorkDate)
		s.logsByDate[key] = append(s.logsByDate[key], l)
	}
	return len(logs), nil
}

func (s *stubWorkLogStore) BulkUpdate(ctx context.Context, changes []model.WorkLogUpdate) (int, error) {
	s.gotUpdates = changes
	return s.updated, nil
}

func (s *stubWorkLogStore) EfficiencyStats(ctx context.Context, projectIDs []int) (map[int]model.EfficiencyStats, error) {
	if s.stats == nil {
		return map[int]model.EfficiencyStats{}, nil
	}
	return s.stats, nil
}

type stubPublisher struct {
	keys     []string
	payloads []any
	err      error
}

func (p *stubPublisher) Publish(routingKey string, payload any) error {
	p.keys = append(p.keys, routingKey)
	p.payloads = append(p.payloads, payload)
	return p.err
}

var errStore = errors.New("store unavailable")

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
