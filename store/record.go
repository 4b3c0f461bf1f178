package store

import (
	"encoding/hex"
	"time"

	"github.com/zeebo/blake3"
	"gorm.io/plugin/soft_delete"

	"github.com/ardnew/dragon/game"
)

// Record is one play.
type Record struct {
	ID        int64                 `json:"id"         gorm:"primaryKey"`
	Level     string                `json:"level"      gorm:"index:idx_level"`
	Digest    string                `json:"digest"     gorm:"index:idx_digest"`
	State     string                `json:"state"`
	Actions   int                   `json:"actions"`
	Message   string                `json:"message,omitempty"`
	CreatedAt time.Time             `json:"created_at"`
	Deleted   soft_delete.DeletedAt `json:"-"          gorm:"softDelete:flag;default:0"`
}

// TableName names the table records are kept in.
func (Record) TableName() string { return "play" }

// NewRecord returns the record of playing script on a level.
func NewRecord(levelID, script string, res game.Result) *Record {
	return &Record{
		Level:   levelID,
		Digest:  Digest(script),
		State:   res.State.String(),
		Actions: res.Actions,
		Message: res.Message,
	}
}

// Digest returns the hex BLAKE3 digest of script.
func Digest(script string) string {
	sum := blake3.Sum256([]byte(script))

	return hex.EncodeToString(sum[:])
}
