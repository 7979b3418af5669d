package models

import (
	"time"

	"gorm.io/datatypes"
)

type JobStatus string

const (
	JobStatusActive JobStatus = "active"
	JobStatusPaused JobStatus = "paused"
	JobStatusClosed JobStatus = "closed"
)

// Contract types used across the board (CDI/CDD/Stage/Freelance).
const (
	ContractCDI       = "CDI"
	ContractCDD       = "CDD"
	ContractStage     = "Stage"
	ContractFreelance = "Freelance"
)

type Job struct {
	ID     string `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID string `gorm:"column:user_id;type:uuid;index" json:"userId"`
	User   *User  `gorm:"foreignKey:UserID" json:"-"`

	Title        string         `gorm:"column:title;type:text" json:"title"`
	Company      string         `gorm:"column:company;type:text" json:"company"`
	Location     string         `gorm:"column:location;type:text" json:"location"`
	Description  string         `gorm:"column:description;type:text" json:"description"`
	Requirements *string        `gorm:"column:requirements;type:text" json:"requirements"`
	SalaryMin    *int           `gorm:"column:salary_min" json:"salary_min"`
	SalaryMax    *int           `gorm:"column:salary_max" json:"salary_max"`
	ContractType string         `gorm:"column:contract_type;type:text;index" json:"contract_type"`
	Category     string         `gorm:"column:category;type:text" json:"category"`
	Keywords     datatypes.JSON `gorm:"column:keywords;type:jsonb" json:"keywords"`
	Status       JobStatus      `gorm:"column:status;type:text;index;default:active" json:"status"`

	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz;index" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamptz" json:"updatedAt"`
}

func (Job) TableName() string { return "jobs" }

// JobWithMeta is a Job joined with its owner's public display fields and the
// number of applications it has received.
type JobWithMeta struct {
	Job
	OwnerName        string `json:"ownerName"`
	OwnerCompanyName string `json:"ownerCompanyName"`
	OwnerPhoto       string `json:"ownerPhoto"`
	ApplicationCount int64  `json:"applicationsCount"`
}
