package models

import (
	"time"

	"gorm.io/datatypes"
)

type ApplicationStatus string

const (
	ApplicationPending     ApplicationStatus = "pending"
	ApplicationReviewed    ApplicationStatus = "reviewed"
	ApplicationShortlisted ApplicationStatus = "shortlisted"
	ApplicationRejected    ApplicationStatus = "rejected"
	ApplicationAccepted    ApplicationStatus = "accepted"
)

// ValidApplicationStatus reports whether s belongs to the closed status set
// a recruiter may assign to a local application.
func ValidApplicationStatus(s string) bool {
	switch ApplicationStatus(s) {
	case ApplicationPending, ApplicationReviewed, ApplicationShortlisted,
		ApplicationRejected, ApplicationAccepted:
		return true
	default:
		return false
	}
}

// Application links a candidate to a local job. The (user_id, job_id) pair
// is unique at the store level; concurrent duplicate inserts surface as a
// duplicated-key error, never as a lost write.
type Application struct {
	ID     string `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID string `gorm:"column:user_id;type:uuid;uniqueIndex:idx_applications_user_job" json:"userId"`
	JobID  string `gorm:"column:job_id;type:uuid;uniqueIndex:idx_applications_user_job" json:"jobId"`
	Job    *Job   `gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE" json:"job,omitempty"`
	User   *User  `gorm:"foreignKey:UserID" json:"-"`

	CoverLetter *string           `gorm:"column:cover_letter;type:text" json:"coverLetter"`
	Status      ApplicationStatus `gorm:"column:status;type:text;default:pending" json:"status"`

	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz;index" json:"createdAt"`
}

func (Application) TableName() string { return "applications" }

// ExternalApplication records a candidate's application to a job sourced
// from the external search provider. The provider cannot be re-queried by
// id later, so the job's display fields are captured as a snapshot.
type ExternalApplication struct {
	ID      string         `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID  string         `gorm:"column:user_id;type:uuid;uniqueIndex:idx_external_applications_user_job" json:"userId"`
	JobID   string         `gorm:"column:job_id;type:text;uniqueIndex:idx_external_applications_user_job" json:"jobId"`
	JobData datatypes.JSON `gorm:"column:job_data;type:jsonb" json:"jobData"`
	Status  string         `gorm:"column:status;type:text;default:applied" json:"status"`

	AppliedAt time.Time `gorm:"column:applied_at;type:timestamptz;index" json:"appliedAt"`
}

func (ExternalApplication) TableName() string { return "external_applications" }
