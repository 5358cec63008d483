package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/deliverysla-backend/internal/data/repos"
	"github.com/yungbote/deliverysla-backend/internal/http/response"
	"github.com/yungbote/deliverysla-backend/internal/jobs/scheduler"
	"github.com/yungbote/deliverysla-backend/internal/pkg/dbctx"
)

const defaultExecutionLimit = 50

// JobRunner triggers one registered job outside its schedule.
type JobRunner interface {
	RunNow(ctx context.Context, id string) error
}

type JobHandler struct {
	jobs       repos.SchedulerJobRepo
	executions repos.SchedulerJobExecutionRepo
	runner     JobRunner
}

func NewJobHandler(jobs repos.SchedulerJobRepo, executions repos.SchedulerJobExecutionRepo, runner JobRunner) *JobHandler {
	return &JobHandler{jobs: jobs, executions: executions, runner: runner}
}

// GET /jobs
func (h *JobHandler) ListJobs(c *gin.Context) {
	jobs, err := h.jobs.List(dbctx.New(c.Request.Context()))
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "list_jobs_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"jobs": jobs})
}

// GET /jobs/:id/executions?limit=N
func (h *JobHandler) ListExecutions(c *gin.Context) {
	limit := defaultExecutionLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			response.RespondError(c, http.StatusBadRequest, "invalid_limit", errors.New("limit must be a positive integer"))
			return
		}
		limit = n
	}
	execs, err := h.executions.ListByJob(dbctx.New(c.Request.Context()), c.Param("id"), limit)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "list_executions_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"executions": execs})
}

// POST /jobs/:id/run
func (h *JobHandler) RunJob(c *gin.Context) {
	if h.runner == nil {
		response.RespondError(c, http.StatusServiceUnavailable, "scheduler_disabled", errors.New("scheduler is not running in this process"))
		return
	}
	id := c.Param("id")
	err := h.runner.RunNow(c.Request.Context(), id)
	switch {
	case err == nil:
		response.RespondOK(c, gin.H{"job": id, "status": "Executed"})
	case errors.Is(err, scheduler.ErrUnknownJob):
		response.RespondError(c, http.StatusNotFound, "job_not_found", err)
	case errors.Is(err, scheduler.ErrJobRunning):
		response.RespondError(c, http.StatusConflict, "job_running", err)
	case errors.Is(err, scheduler.ErrStopping):
		response.RespondError(c, http.StatusServiceUnavailable, "scheduler_stopping", err)
	default:
		response.RespondError(c, http.StatusInternalServerError, "job_failed", err)
	}
}
