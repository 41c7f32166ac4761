package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// VMConnections is an opaque mapping attached to a resource request by the
// fulfillment flow. Its contents are never interpreted here.
type VMConnections map[string][]string

type ResourceRequest struct {
	ID            uuid.UUID                          `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProjectID     uuid.UUID                          `gorm:"type:uuid;not null;uniqueIndex:user_id_project_id_requested_for,priority:2" json:"project_id"`
	UserID        string                             `gorm:"type:varchar(256);not null;uniqueIndex:user_id_project_id_requested_for,priority:1" json:"user_id"`
	Username      string                             `gorm:"type:varchar(256);not null" json:"username"`
	Email         string                             `gorm:"type:varchar(256);not null" json:"email"`
	RequestedFor  string                             `gorm:"type:varchar(256);not null;uniqueIndex:user_id_project_id_requested_for,priority:3" json:"requested_for"`
	RequestedAt   time.Time                          `gorm:"autoCreateTime;not null" json:"requested_at"`
	CompletedAt   *time.Time                         `json:"completed_at"`
	Message       *string                            `gorm:"type:varchar(100)" json:"message"`
	VMConnections *datatypes.JSONType[VMConnections] `gorm:"type:jsonb" swaggertype:"object" json:"vm_connections"`

	// ResourceRequest <-> Project
	Project *Project `gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"project,omitempty"`
}

func (r *ResourceRequest) GetID() uuid.UUID { return r.ID }

// Connections returns the vm connections payload, nil when none was stored.
func (r *ResourceRequest) Connections() VMConnections {
	if r.VMConnections == nil {
		return nil
	}
	return r.VMConnections.Data()
}

func NewVMConnections(c VMConnections) *datatypes.JSONType[VMConnections] {
	if c == nil {
		return nil
	}
	v := datatypes.NewJSONType(c)
	return &v
}
