// Package domain defines the persistence models shared by the advisory server
// and the terminal client. Server-side rows (assistance requests, idempotency
// records) and the client's local key-value entries are mapped with GORM; the
// profile and archive types are stored JSON-encoded inside key-value entries.
package domain

import (
	"time"
)

// AssistanceRequest is a farmer's request for a call back from a human
// agricultural officer.
//
// Fields:
//   - ID: UUID primary key (char(36)).
//   - Phone: contact number supplied by the farmer.
//   - Issue: free-text description of the problem.
//   - Language: "en" or "ml", the language the farmer used.
//   - CreatedAt: timestamp managed by GORM.
type AssistanceRequest struct {
	ID        string    `json:"id"         gorm:"type:char(36);primaryKey"`
	Phone     string    `json:"phone"      gorm:"type:varchar(32);not null;index"`
	Issue     string    `json:"issue"      gorm:"type:text;not null"`
	Language  string    `json:"language"   gorm:"type:varchar(8);not null;default:'en';check:language IN ('en','ml')"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}

// TableName returns the database table name for AssistanceRequest.
func (AssistanceRequest) TableName() string { return "assistance_requests" }

// KVEntry is one key of the terminal client's local persisted store.
type KVEntry struct {
	Key       string    `gorm:"type:varchar(128);primaryKey"`
	Value     string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName returns the database table name for KVEntry.
func (KVEntry) TableName() string { return "kv_entries" }
