package model

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/uptrace/bun"
)

func CreateSchema(ctx context.Context, db *bun.DB) error {
	if err := db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		for _, model := range []interface{}{
			(*Event)(nil),
			(*Booking)(nil),
		} {
			if _, err := tx.
				NewCreateTable().
				Model(model).
				IfNotExists().
				Exec(ctx); err != nil {
				return err
			}
		}

		// bookings are filtered by event and by (event, email); the slug
		// unique index comes from the column definition
		if _, err := tx.
			NewCreateIndex().
			Model((*Booking)(nil)).
			Index("idx_bookings_event_id").
			Column("event_id").
			IfNotExists().
			Exec(ctx); err != nil {
			return err
		}
		if _, err := tx.
			NewCreateIndex().
			Model((*Booking)(nil)).
			Index("idx_bookings_event_id_email").
			Column("event_id", "email").
			IfNotExists().
			Exec(ctx); err != nil {
			return err
		}
		return nil
	}); err != nil {
		return fmt.Errorf("CreateSchema: %w", err)
	}

	return nil
}
