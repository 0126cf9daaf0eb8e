package model

import "time"

// Snapshot is the whole persisted document. Stores read and write it in one piece.
type Snapshot struct {
	Users     []User           `json:"users"`
	Modules   []LearningModule `json:"modules"`
	Progress  []UserProgress   `json:"progress"`
	Analytics []AnalyticsEvent `json:"analytics"`
}

// Normalize replaces missing collections with empty ones.
func (s *Snapshot) Normalize() *Snapshot {
	if s.Users == nil {
		s.Users = []User{}
	}
	if s.Modules == nil {
		s.Modules = []LearningModule{}
	}
	if s.Progress == nil {
		s.Progress = []UserProgress{}
	}
	if s.Analytics == nil {
		s.Analytics = []AnalyticsEvent{}
	}
	return s
}

func NewSnapshot() *Snapshot {
	return (&Snapshot{}).Normalize()
}

// SnapshotDocument is the row layout used by the database backend.
type SnapshotDocument struct {
	Name      string `gorm:"primaryKey;size:64"`
	Data      []byte `gorm:"not null"`
	Version   int64  `gorm:"not null;default:0"`
	UpdatedAt time.Time
}

func (SnapshotDocument) TableName() string {
	return "snapshots"
}
