package route

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"devents/src-server/model"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func Logging(next func(http.ResponseWriter, *http.Request)) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		startTimer := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(recorder, r)
		slog.Debug("http",
			"method", r.Method,
			"path", r.URL.Path,
			"status", recorder.status,
			"duration", time.Since(startTimer))
	}
}

// writeSaveError maps a failed Upsert to a response. Validation and
// referential failures carry their exact message text; consumers key off it.
func writeSaveError(w http.ResponseWriter, err error) {
	var validationErr *model.ValidationError
	switch {
	case errors.As(err, &validationErr):
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(validationErr.Reason))
	case errors.Is(err, model.ErrEventNotFound):
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(err.Error()))
	case model.IsDuplicate(err):
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte("An event with this slug already exists"))
	default:
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Can't save record"))
		slog.Error("can't save record", "error", err)
	}
}
