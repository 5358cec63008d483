package scheduling

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/deliverysla-backend/internal/domain"
	"github.com/yungbote/deliverysla-backend/internal/pkg/dbctx"
	"github.com/yungbote/deliverysla-backend/internal/pkg/logger"
)

type SchedulerJobExecutionRepo interface {
	Create(dbc dbctx.Context, exec *types.SchedulerJobExecution) error
	Finish(dbc dbctx.Context, id uuid.UUID, status string, duration float64, finished time.Time, exception string) error
	ListByJob(dbc dbctx.Context, jobID string, limit int) ([]*types.SchedulerJobExecution, error)
	DeleteBefore(dbc dbctx.Context, cutoff time.Time) (int64, error)
}

type schedulerJobExecutionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSchedulerJobExecutionRepo(db *gorm.DB, baseLog *logger.Logger) SchedulerJobExecutionRepo {
	return &schedulerJobExecutionRepo{db: db, log: baseLog.With("repo", "SchedulerJobExecutionRepo")}
}

func (r *schedulerJobExecutionRepo) Create(dbc dbctx.Context, exec *types.SchedulerJobExecution) error {
	if exec.ID == uuid.Nil {
		exec.ID = uuid.New()
	}
	return dbc.Conn(r.db).Create(exec).Error
}

func (r *schedulerJobExecutionRepo) Finish(dbc dbctx.Context, id uuid.UUID, status string, duration float64, finished time.Time, exception string) error {
	return dbc.Conn(r.db).
		Model(&types.SchedulerJobExecution{}).
		Where("id = ?", id).
		UpdateColumns(map[string]interface{}{
			"status":    status,
			"duration":  duration,
			"finished":  float64(finished.UnixNano()) / 1e9,
			"exception": exception,
		}).Error
}

func (r *schedulerJobExecutionRepo) ListByJob(dbc dbctx.Context, jobID string, limit int) ([]*types.SchedulerJobExecution, error) {
	var out []*types.SchedulerJobExecution
	q := dbc.Conn(r.db).
		Where("job_id = ?", jobID).
		Order("run_time DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteBefore removes executions that ran at or before cutoff.
func (r *schedulerJobExecutionRepo) DeleteBefore(dbc dbctx.Context, cutoff time.Time) (int64, error) {
	res := dbc.Conn(r.db).
		Where("run_time <= ?", cutoff).
		Delete(&types.SchedulerJobExecution{})
	return res.RowsAffected, res.Error
}
