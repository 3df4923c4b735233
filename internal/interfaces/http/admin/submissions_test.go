package admin

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	adminapp "github.com/sngm3741/telecom-hire-backend/api/internal/admin/application"
	admindomain "github.com/sngm3741/telecom-hire-backend/api/internal/admin/domain"
)

// fakeSubmissionService implements adminapp.SubmissionService for tests.
type fakeSubmissionService struct {
	lastFilter adminapp.SubmissionFilter
	lastPaging adminapp.Paging
	list       []admindomain.Submission
	total      int64
	detail     *admindomain.Submission
	metrics    *admindomain.Metrics
	err        error
}

func (f *fakeSubmissionService) List(_ context.Context, filter adminapp.SubmissionFilter, paging adminapp.Paging) ([]admindomain.Submission, int64, error) {
	f.lastFilter = filter
	f.lastPaging = paging
	if f.err != nil {
		return nil, 0, f.err
	}
	return f.list, f.total, nil
}

func (f *fakeSubmissionService) Detail(context.Context, string) (*admindomain.Submission, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.detail, nil
}

func (f *fakeSubmissionService) Metrics(context.Context) (*admindomain.Metrics, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.metrics, nil
}

func newAdminRouter(service adminapp.SubmissionService) *chi.Mux {
	handler := NewHandler(Config{
		Logger:         zerolog.Nop(),
		Submissions:    service,
		RequestTimeout: time.Second,
	})
	router := chi.NewRouter()
	handler.Register(router)
	return router
}

func adminRecord() admindomain.Submission {
	return admindomain.Submission{
		ID:            "665a1b2c3d4e5f6a7b8c9d0e",
		Reference:     "3e7c9a30-0000-4000-8000-000000000001",
		EmailPrimary:  "a@x.com",
		Circle:        "Mumbai",
		State:         "Maharashtra",
		District:      "Thane",
		Name:          "a b",
		ContactNumber: "9820012345",
		PinCode:       "400601",
		SubmittedAt:   time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestSubmissionListHandler(t *testing.T) {
	service := &fakeSubmissionService{list: []admindomain.Submission{adminRecord()}, total: 42}
	router := newAdminRouter(service)

	req := httptest.NewRequest(http.MethodGet, "/submissions?circle=Mumbai&state=Maharashtra&q=rigger&page=2&limit=10", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	if service.lastFilter.Circle != "Mumbai" || service.lastFilter.State != "Maharashtra" || service.lastFilter.Keyword != "rigger" {
		t.Errorf("filter = %+v, query params not applied", service.lastFilter)
	}
	if service.lastPaging.Page != 2 || service.lastPaging.Limit != 10 {
		t.Errorf("paging = %+v, want page 2 limit 10", service.lastPaging)
	}

	var resp struct {
		Items []map[string]any `json:"items"`
		Total int64            `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Total != 42 || len(resp.Items) != 1 {
		t.Fatalf("total = %d, items = %d, want 42/1", resp.Total, len(resp.Items))
	}
	// 管理 API はフルレコードを返す(マスクなし・内部 ID あり)
	if resp.Items[0]["contact_number"] != "9820012345" {
		t.Errorf("contact_number = %v, admin view must not mask", resp.Items[0]["contact_number"])
	}
	if resp.Items[0]["id"] != "665a1b2c3d4e5f6a7b8c9d0e" {
		t.Errorf("id = %v, want internal identifier", resp.Items[0]["id"])
	}
}

func TestSubmissionDetailHandlerNotFound(t *testing.T) {
	router := newAdminRouter(&fakeSubmissionService{err: adminapp.ErrNotFound})

	req := httptest.NewRequest(http.MethodGet, "/submissions/does-not-exist", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestSubmissionHandlersStoreUnavailable(t *testing.T) {
	router := newAdminRouter(&fakeSubmissionService{err: adminapp.ErrStoreUnavailable})

	for _, path := range []string{"/submissions", "/submissions/abc", "/submissions/metrics"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusServiceUnavailable {
			t.Errorf("%s: status = %d, want 503", path, rec.Code)
		}
	}
}

func TestSubmissionMetricsHandler(t *testing.T) {
	service := &fakeSubmissionService{metrics: &admindomain.Metrics{
		Total: 7,
		Circles: []admindomain.CircleCount{
			{Circle: "Mumbai", Count: 4},
			{Circle: "Bihar", Count: 3},
		},
	}}
	router := newAdminRouter(service)

	req := httptest.NewRequest(http.MethodGet, "/submissions/metrics", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp adminMetricsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Total != 7 || len(resp.Circles) != 2 {
		t.Fatalf("total = %d, circles = %d, want 7/2", resp.Total, len(resp.Circles))
	}
	if resp.Circles[0].Circle != "Mumbai" || resp.Circles[0].Count != 4 {
		t.Errorf("circles[0] = %+v, want Mumbai/4", resp.Circles[0])
	}
}
