package models

import "time"

type CV struct {
	ID        string `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID    string `gorm:"column:user_id;type:uuid;index" json:"userId"`
	Filename  string `gorm:"column:filename;type:text" json:"filename"`
	URL       string `gorm:"column:url;type:text" json:"url"`
	ObjectKey string `gorm:"column:object_key;type:text" json:"-"`

	UploadedAt time.Time `gorm:"column:uploaded_at;type:timestamptz;index" json:"uploadedAt"`
}

func (CV) TableName() string { return "cvs" }
