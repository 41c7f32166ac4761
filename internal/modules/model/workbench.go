package model

import (
	"time"

	"github.com/google/uuid"
)

type Workbench struct {
	ID               uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProjectID        uuid.UUID `gorm:"type:uuid;not null;index" json:"project_id"`
	Resource         string    `gorm:"type:varchar(256);not null" json:"resource"`
	DeployedAt       time.Time `gorm:"not null;default:now()" json:"deployed_at"`
	DeployedByUserID string    `gorm:"type:varchar(256);not null" json:"deployed_by_user_id"`

	// Workbench <-> Project
	Project *Project `gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (w *Workbench) GetID() uuid.UUID { return w.ID }
