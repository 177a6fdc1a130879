package models

import "time"

// AuditLog is append-only. The composite indexes follow the audit-log
// listing: per barbershop or per actor, newest first, narrowed by action
// or entity.
type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"index:idx_audit_shop_created,priority:2;index:idx_audit_actor_created,priority:2" json:"created_at"`

	BarbershopID *uint  `gorm:"index:idx_audit_shop_created,priority:1" json:"barbershop_id"`
	ActorUID     string `gorm:"size:128;index:idx_audit_actor_created,priority:1" json:"actor_uid"`
	Action       string `gorm:"size:50;not null;index:idx_audit_action" json:"action"`

	Entity   string `gorm:"size:50;index:idx_audit_entity,priority:1" json:"entity"`
	EntityID *uint  `gorm:"index:idx_audit_entity,priority:2" json:"entity_id"`
	Metadata string `gorm:"type:text" json:"metadata"`
}
