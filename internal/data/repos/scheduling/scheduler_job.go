package scheduling

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/deliverysla-backend/internal/domain"
	"github.com/yungbote/deliverysla-backend/internal/pkg/dbctx"
	"github.com/yungbote/deliverysla-backend/internal/pkg/logger"
)

type SchedulerJobRepo interface {
	Upsert(dbc dbctx.Context, job *types.SchedulerJob) error
	GetByID(dbc dbctx.Context, id string) (*types.SchedulerJob, error)
	List(dbc dbctx.Context) ([]*types.SchedulerJob, error)
	UpdateNextRunTime(dbc dbctx.Context, id string, next *time.Time) error
}

type schedulerJobRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSchedulerJobRepo(db *gorm.DB, baseLog *logger.Logger) SchedulerJobRepo {
	return &schedulerJobRepo{db: db, log: baseLog.With("repo", "SchedulerJobRepo")}
}

// Upsert inserts the job or replaces the schedule of an existing id.
func (r *schedulerJobRepo) Upsert(dbc dbctx.Context, job *types.SchedulerJob) error {
	if job.UpdatedAt.IsZero() {
		job.UpdatedAt = time.Now().UTC()
	}
	return dbc.Conn(r.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"cron_spec", "next_run_time", "updated_at"}),
		}).
		Create(job).Error
}

func (r *schedulerJobRepo) GetByID(dbc dbctx.Context, id string) (*types.SchedulerJob, error) {
	var job types.SchedulerJob
	if err := dbc.Conn(r.db).
		Where("id = ?", id).
		Limit(1).
		Find(&job).Error; err != nil {
		return nil, err
	}
	if job.ID == "" {
		return nil, nil
	}
	return &job, nil
}

func (r *schedulerJobRepo) List(dbc dbctx.Context) ([]*types.SchedulerJob, error) {
	var out []*types.SchedulerJob
	if err := dbc.Conn(r.db).
		Order("id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *schedulerJobRepo) UpdateNextRunTime(dbc dbctx.Context, id string, next *time.Time) error {
	return dbc.Conn(r.db).
		Model(&types.SchedulerJob{}).
		Where("id = ?", id).
		UpdateColumns(map[string]interface{}{
			"next_run_time": next,
			"updated_at":    time.Now().UTC(),
		}).Error
}
