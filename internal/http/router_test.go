package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/yungbote/deliverysla-backend/internal/data/repos"
	"github.com/yungbote/deliverysla-backend/internal/data/repos/testutil"
	types "github.com/yungbote/deliverysla-backend/internal/domain"
	httpH "github.com/yungbote/deliverysla-backend/internal/http/handlers"
	"github.com/yungbote/deliverysla-backend/internal/jobs/scheduler"
	"github.com/yungbote/deliverysla-backend/internal/observability"
	"github.com/yungbote/deliverysla-backend/internal/pkg/dbctx"
	"github.com/yungbote/deliverysla-backend/internal/services"
)

type fakeRunner struct {
	err  error
	runs []string
}

func (f *fakeRunner) RunNow(_ context.Context, id string) error {
	f.runs = append(f.runs, id)
	return f.err
}

func newTestRouter(t *testing.T, db *gorm.DB, runner httpH.JobRunner) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := testutil.Logger(t)
	inbox := services.NewInboxService(log,
		repos.NewUserRepo(db, log),
		repos.NewOrderRepo(db, log),
		repos.NewUserOrderRepo(db, log),
		repos.NewNotificationRepo(db, log),
	)
	return NewRouter(RouterConfig{
		Log:                 log,
		Metrics:             observability.NewMetrics(prometheus.NewRegistry()),
		HealthHandler:       httpH.NewHealthHandler(db),
		JobHandler:          httpH.NewJobHandler(repos.NewSchedulerJobRepo(db, log), repos.NewSchedulerJobExecutionRepo(db, log), runner),
		NotificationHandler: httpH.NewNotificationHandler(inbox),
	})
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	db := testutil.DB(t)
	r := newTestRouter(t, db, nil)

	w := do(r, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NotEmpty(t, w.Header().Get("X-Request-Id"))

	w = do(r, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "http_requests_total")
}

func TestRouter_HealthReportsClosedDB(t *testing.T) {
	db := testutil.DB(t)
	r := newTestRouter(t, db, nil)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	w := do(r, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestRouter_ListJobs(t *testing.T) {
	db := testutil.DB(t)
	next := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repos.NewSchedulerJobRepo(db, testutil.Logger(t)).Upsert(dbctx.Background(), &types.SchedulerJob{
		ID: "update_sla", CronSpec: "0 0 * * *", NextRunTime: &next, UpdatedAt: next,
	}))
	r := newTestRouter(t, db, nil)

	w := do(r, http.MethodGet, "/jobs", "")
	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Jobs []types.SchedulerJob `json:"jobs"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Jobs, 1)
	require.Equal(t, "0 0 * * *", body.Jobs[0].CronSpec)

	w = do(r, http.MethodGet, "/jobs/update_sla/executions?limit=zero", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRouter_RunJob(t *testing.T) {
	db := testutil.DB(t)

	w := do(newTestRouter(t, db, nil), http.MethodPost, "/jobs/send_mails/run", "")
	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	runner := &fakeRunner{}
	r := newTestRouter(t, db, runner)
	w = do(r, http.MethodPost, "/jobs/send_mails/run", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, []string{"send_mails"}, runner.runs)

	runner.err = scheduler.ErrUnknownJob
	require.Equal(t, http.StatusNotFound, do(r, http.MethodPost, "/jobs/nope/run", "").Code)
	runner.err = scheduler.ErrJobRunning
	require.Equal(t, http.StatusConflict, do(r, http.MethodPost, "/jobs/send_mails/run", "").Code)
	runner.err = scheduler.ErrStopping
	require.Equal(t, http.StatusServiceUnavailable, do(r, http.MethodPost, "/jobs/send_mails/run", "").Code)
	runner.err = errors.New("boom")
	require.Equal(t, http.StatusInternalServerError, do(r, http.MethodPost, "/jobs/send_mails/run", "").Code)
}

func TestRouter_InboxListAndDismiss(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	role := testutil.SeedRole(t, ctx, db, "pm")
	u := testutil.SeedUser(t, ctx, db, role.ID, "pm@example.com", testutil.UserOpts{})
	n := &types.Notification{Title: "hello"}
	types.ApplyRecipient(n, types.ToUser{UserID: u.ID})
	n = testutil.SeedNotification(t, ctx, db, n)
	r := newTestRouter(t, db, nil)

	w := do(r, http.MethodGet, "/api/users/"+itoa(u.ID)+"/notifications", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "hello")

	require.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/api/users/9999/notifications", "").Code)
	require.Equal(t, http.StatusBadRequest, do(r, http.MethodGet, "/api/users/abc/notifications", "").Code)
	require.Equal(t, http.StatusBadRequest, do(r, http.MethodPatch, "/api/notifications/"+itoa(n.ID), `{}`).Code)

	w = do(r, http.MethodPatch, "/api/notifications/"+itoa(n.ID), `{"user_id":`+itoa(u.ID)+`}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodGet, "/api/users/"+itoa(u.ID)+"/notifications", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NotContains(t, w.Body.String(), "hello")
}

func TestRouter_CORSAndTracingOnAPI(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := NewRouter(RouterConfig{
		Log:           testutil.Logger(t),
		ServiceName:   "deliverysla-test",
		CORSOrigins:   []string{"https://inbox.example.com"},
		HealthHandler: httpH.NewHealthHandler(nil),
	})

	req := httptest.NewRequest(http.MethodOptions, "/api/notifications/1", nil)
	req.Header.Set("Origin", "https://inbox.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, "https://inbox.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-Id", "req-1")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "req-1", w.Header().Get("X-Request-Id"))
	require.NotEmpty(t, w.Header().Get("X-Trace-Id"))
}
