package models

import (
	"time"
)

// Announcement is the stored form. Type and Target are copied out of the
// document so the single equality filter can use an index.
type Announcement struct {
	ID         string    `json:"id" gorm:"primaryKey;type:text"`
	Type       string    `json:"type" gorm:"type:text;index"`
	Target     string    `json:"target" gorm:"type:text;index"`
	Motivation string    `json:"motivation" gorm:"type:text"`
	Document   string    `json:"document" gorm:"type:text;not null"`
	CDate      time.Time `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp();index"`
}
