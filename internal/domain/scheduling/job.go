package scheduling

import (
	"time"

	"github.com/google/uuid"
)

const (
	ExecutionRunning  = "Running"
	ExecutionExecuted = "Executed"
	ExecutionError    = "Error"
)

// SchedulerJob is the persistent registration of a recurring job.
type SchedulerJob struct {
	ID          string     `gorm:"primaryKey;column:id;size:255" json:"id"`
	CronSpec    string     `gorm:"column:cron_spec;size:255;not null" json:"cron_spec"`
	NextRunTime *time.Time `gorm:"column:next_run_time;index" json:"next_run_time,omitempty"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;not null" json:"updated_at"`
}

func (SchedulerJob) TableName() string { return "scheduler_job" }

// SchedulerJobExecution records one fire of a job.
type SchedulerJobExecution struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;column:id" json:"id"`
	JobID     string    `gorm:"column:job_id;size:255;not null;index" json:"job_id"`
	Status    string    `gorm:"column:status;size:50;not null" json:"status"`
	RunTime   time.Time `gorm:"column:run_time;not null;index" json:"run_time"`
	Duration  *float64  `gorm:"column:duration" json:"duration,omitempty"`
	Finished  *float64  `gorm:"column:finished" json:"finished,omitempty"`
	Exception string    `gorm:"column:exception;type:text" json:"exception,omitempty"`
}

func (SchedulerJobExecution) TableName() string { return "scheduler_job_execution" }
