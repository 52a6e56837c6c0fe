package metric

import (
	"context"
	"time"

	"devents/src-server/model"
	"devents/src-server/utils"
)

// database measures the latency of an index-only read that matches nothing.
func database(as *utils.AppState) (time.Duration, error) {
	db, err := as.DB(context.Background())
	if err != nil {
		return 0, err
	}
	start := time.Now()
	if _, err := db.NewSelect().
		Model((*model.Event)(nil)).
		Where("slug = ?", "").
		Exists(context.Background()); err != nil {
		return 0, err
	}
	return time.Since(start), nil
}
