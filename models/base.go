package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// TempIDPrefix marks identities that exist only in memory. The store
// must never receive one as an update/delete target; inserts replace
// them with a generated durable id.
const TempIDPrefix = "tmp-"

// BaseModel replaces gorm.Model for uuid-keyed rows.
type BaseModel struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewID() string {
	return uuid.NewString()
}

func NewTempID() string {
	return TempIDPrefix + uuid.NewString()
}

func IsTempID(id string) bool {
	return strings.HasPrefix(id, TempIDPrefix)
}
