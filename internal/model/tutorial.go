// Package model holds the domain entities shared by the repository,
// service and handler layers.
package model

// Tutorial is the single resource exposed by the API.
//
// The db tags drive pgx row scanning, the gorm tags the SQLite schema.
type Tutorial struct {
	ID          int64  `json:"id" db:"id" gorm:"column:id;primaryKey;autoIncrement"`
	Title       string `json:"title" db:"title" gorm:"column:title;type:text;not null"`
	Description string `json:"description" db:"description" gorm:"column:description;type:text;not null;default:''"`
	IsPublished bool   `json:"isPublished" db:"is_published" gorm:"column:is_published;not null;default:false"`
}

func (Tutorial) TableName() string {
	return "tutorials"
}
