// Package adminlog implements the append-only admin audit log on gorm/postgres.
package adminlog

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	infrarepo "github.com/sevatrust/donation-api/infra/repository"
	domainlog "github.com/sevatrust/donation-api/pkg/domain/adminlog"
	"github.com/sevatrust/donation-api/pkg/repository"
	"gorm.io/gorm"
)

// Entry represents an admin action record in the database.
type Entry struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	AdminID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Action    string    `gorm:"not null;size:50"`
	Details   []byte    `gorm:"type:jsonb"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName specifies the table name for the Entry model.
func (Entry) TableName() string {
	return "admin_logs"
}

type repo struct {
	db *gorm.DB
}

// New creates a gorm-backed AdminLogRepository.
func New(db *gorm.DB) repository.AdminLogRepository {
	return &repo{db: db}
}

func (r *repo) Create(ctx context.Context, e *domainlog.Entry) error {
	var details []byte
	if len(e.Details) > 0 {
		raw, err := json.Marshal(e.Details)
		if err != nil {
			return err
		}
		details = raw
	}

	model := &Entry{
		ID:        e.ID,
		AdminID:   e.AdminID,
		Action:    string(e.Action),
		Details:   details,
		CreatedAt: e.CreatedAt,
	}
	return infrarepo.MapGormErrorToDomain(
		r.db.WithContext(ctx).Create(model).Error,
	)
}
