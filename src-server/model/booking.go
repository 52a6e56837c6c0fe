package model

import (
	"context"
	"fmt"
	"time"

	"devents/src-server/utils"

	"github.com/uptrace/bun"
)

type Booking struct {
	bun.BaseModel `bun:"table:bookings"`

	ID      string `bun:"id,pk"`               // required
	EventID string `bun:"event_id,notnull"`    // required
	Email   string `bun:"email,notnull"`       // required, trimmed + lowercased

	CreatedAt int64 `bun:"created_at,notnull"`
	UpdatedAt int64 `bun:"updated_at"`

	Event *Event `bun:"rel:belongs-to,join:event_id=id"`
}

// Upsert validates the booking, then inserts or updates it. The referenced
// event's existence is checked only on first persist or when changed contains
// eventId; existence is asserted at the moment the reference is written, a
// concurrent event deletion after the check is not re-detected. There is no
// uniqueness constraint on email or (eventId, email): multiple bookings per
// event and repeated emails across events are both legal.
func (b *Booking) Upsert(ctx context.Context, db bun.IDB, changed FieldSet) error {
	if b.ID == "" {
		return fmt.Errorf("(*Booking).Upsert: booking id is blank")
	}
	if b.EventID == "" {
		return &ValidationError{Field: FieldEventID, Reason: "Event ID is required"}
	}
	if b.Email == "" {
		return &ValidationError{Field: FieldEmail, Reason: "Email is required"}
	}

	email, ok := utils.NormalizeEmail(b.Email)
	if !ok {
		return &ValidationError{Field: FieldEmail, Reason: "Please provide a valid email address"}
	}
	b.Email = email

	exists, err := db.NewSelect().
		Model((*Booking)(nil)).
		Where("id = ?", b.ID).
		Exists(ctx)
	if err != nil {
		return fmt.Errorf("(*Booking).Upsert: %w", err)
	}

	if !exists || changed.Has(FieldEventID) {
		eventExists, err := db.NewSelect().
			Model((*Event)(nil)).
			Where("id = ?", b.EventID).
			Exists(ctx)
		if err != nil {
			return fmt.Errorf("(*Booking).Upsert: %w", err)
		}
		if !eventExists {
			return ErrEventNotFound
		}
	}

	now := time.Now().UTC().Unix()
	switch exists {
	case true:
		b.UpdatedAt = now
		if _, err := db.NewUpdate().
			Model(b).
			WherePK().
			Exec(ctx); err != nil {
			return fmt.Errorf("(*Booking).Upsert: %w", err)
		}
	case false:
		if b.CreatedAt == 0 {
			b.CreatedAt = now
		}
		b.UpdatedAt = now
		if _, err := db.NewInsert().
			Model(b).
			Exec(ctx); err != nil {
			return fmt.Errorf("(*Booking).Upsert: %w", err)
		}
	}

	return nil
}
