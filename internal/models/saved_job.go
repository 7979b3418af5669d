package models

import (
	"time"

	"gorm.io/datatypes"
)

// SavedJob bookmarks a job (local or external) for a candidate. jobData is a
// snapshot of the job's display fields: external jobs have no local row to
// join against, so the copy taken at save time is what gets rendered later.
type SavedJob struct {
	ID      string         `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID  string         `gorm:"column:user_id;type:uuid;uniqueIndex:idx_saved_jobs_user_job" json:"userId"`
	JobID   string         `gorm:"column:job_id;type:text;uniqueIndex:idx_saved_jobs_user_job" json:"jobId"`
	JobData datatypes.JSON `gorm:"column:job_data;type:jsonb" json:"jobData"`

	SavedAt time.Time `gorm:"column:saved_at;type:timestamptz;index" json:"savedAt"`
}

func (SavedJob) TableName() string { return "saved_jobs" }
