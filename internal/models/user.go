package models

import (
	"time"

	"gorm.io/datatypes"
)

type UserRole string

const (
	RoleCandidate UserRole = "candidate"
	RoleRecruiter UserRole = "recruiter"
)

// ParseRole maps a raw role string to the closed role set.
func ParseRole(s string) (UserRole, bool) {
	switch UserRole(s) {
	case RoleCandidate:
		return RoleCandidate, true
	case RoleRecruiter:
		return RoleRecruiter, true
	default:
		return "", false
	}
}

type User struct {
	ID           string   `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Email        string   `gorm:"column:email;type:text;uniqueIndex" json:"email"`
	PasswordHash string   `gorm:"column:password_hash;type:text" json:"-"`
	Name         string   `gorm:"column:name;type:text" json:"name"`
	Role         UserRole `gorm:"column:role;type:text;index" json:"role"`

	Phone        string `gorm:"column:phone;type:text" json:"phone"`
	Address      string `gorm:"column:address;type:text" json:"address"`
	City         string `gorm:"column:city;type:text" json:"city"`
	About        string `gorm:"column:about;type:text" json:"about"`
	ProfilePhoto string `gorm:"column:profile_photo;type:text" json:"profilePhoto"`

	// Recruiter-only fields.
	CompanyName string `gorm:"column:company_name;type:text" json:"companyName,omitempty"`
	Website     string `gorm:"column:website;type:text" json:"website,omitempty"`

	// Candidate-only sub-records, stored as JSON and decoded only at the
	// storage boundary.
	Experiences datatypes.JSON `gorm:"column:experiences;type:jsonb" json:"experiences,omitempty"`
	Education   datatypes.JSON `gorm:"column:education;type:jsonb" json:"education,omitempty"`
	Skills      datatypes.JSON `gorm:"column:skills;type:jsonb" json:"skills,omitempty"`
	Languages   datatypes.JSON `gorm:"column:languages;type:jsonb" json:"languages,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamptz" json:"updatedAt"`
}

func (User) TableName() string { return "users" }

// PublicApplicant is the restricted projection of a candidate that a
// recruiter sees attached to an application.
type PublicApplicant struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Email        string         `json:"email"`
	Phone        string         `json:"phone"`
	City         string         `json:"city"`
	Address      string         `json:"address"`
	About        string         `json:"about"`
	ProfilePhoto string         `json:"profilePhoto"`
	Experiences  datatypes.JSON `json:"experiences,omitempty"`
	Education    datatypes.JSON `json:"education,omitempty"`
	Skills       datatypes.JSON `json:"skills,omitempty"`
	Languages    datatypes.JSON `json:"languages,omitempty"`
}

func (u User) PublicApplicant() PublicApplicant {
	return PublicApplicant{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Phone:        u.Phone,
		City:         u.City,
		Address:      u.Address,
		About:        u.About,
		ProfilePhoto: u.ProfilePhoto,
		Experiences:  u.Experiences,
		Education:    u.Education,
		Skills:       u.Skills,
		Languages:    u.Languages,
	}
}
