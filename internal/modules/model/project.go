package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Project struct {
	ID             uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Code           string         `gorm:"type:varchar(32);uniqueIndex;not null" json:"code"`
	Name           string         `gorm:"type:varchar(256);not null" json:"name"`
	Description    string         `gorm:"type:varchar(2048);not null;default:''" json:"description"`
	LogoName       *string        `gorm:"type:varchar(40)" json:"logo_name"`
	CreatedAt      time.Time      `gorm:"autoCreateTime;index;not null" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime;not null" json:"updated_at"`
	Tags           pq.StringArray `gorm:"type:varchar(256)[];not null;default:'{}'" swaggertype:"array,string" json:"tags"`
	SystemTags     pq.StringArray `gorm:"type:varchar(256)[];not null;default:'{}'" swaggertype:"array,string" json:"system_tags"`
	IsDiscoverable bool           `gorm:"not null" json:"is_discoverable"`

	// Project <-> ResourceRequest
	ResourceRequests []ResourceRequest `gorm:"constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`

	// Project <-> Workbench
	Workbenches []Workbench `gorm:"constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (p *Project) GetID() uuid.UUID { return p.ID }
