package route

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"devents/src-server/model"
	"devents/src-server/utils"

	"github.com/google/uuid"
)

type OneBookingRespBody struct {
	ID               string `json:"id"`
	EventID          string `json:"eventId"`
	Email            string `json:"email"`
	CreatedAtUnixUTC int64  `json:"createdAtUnixUTC"`
	UpdatedAtUnixUTC int64  `json:"updatedAtUnixUTC"`
}

func bookingRespBody(b *model.Booking) OneBookingRespBody {
	return OneBookingRespBody{
		ID:               b.ID,
		EventID:          b.EventID,
		Email:            b.Email,
		CreatedAtUnixUTC: b.CreatedAt,
		UpdatedAtUnixUTC: b.UpdatedAt,
	}
}

func Booking(muxer *http.ServeMux, as *utils.AppState) {
	type CreateBookingReqBody struct {
		EventID string `json:"eventId"`
		Email   string `json:"email"`
	}

	// book a slot for an event
	muxer.HandleFunc("POST /api/bookings", Logging(
		func(w http.ResponseWriter, r *http.Request) {
			var reqBody CreateBookingReqBody
			if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte("Invalid request body"))
				return
			}

			db, err := as.DB(r.Context())
			if err != nil {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte("Can't reach database"))
				slog.Error("can't reach database", "error", err)
				return
			}

			bookingModel := &model.Booking{
				ID:      uuid.NewString(),
				EventID: reqBody.EventID,
				Email:   reqBody.Email,
			}

			startTimer := time.Now()
			if err := bookingModel.Upsert(r.Context(), db, nil); err != nil {
				writeSaveError(w, err)
				return
			}
			as.MetricChans.ObserveDatabaseWrite(float64(time.Since(startTimer).Microseconds()))
			as.MetricChans.CountBookingCreated()

			respBodyJson, err := json.Marshal(bookingRespBody(bookingModel))
			if err != nil {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte("Can't marshal response body"))
				return
			}
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			w.Write(respBodyJson)
		}))

	// list all bookings of one event
	muxer.HandleFunc("GET /api/events/{id}/bookings", Logging(
		func(w http.ResponseWriter, r *http.Request) {
			db, err := as.DB(r.Context())
			if err != nil {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte("Can't reach database"))
				slog.Error("can't reach database", "error", err)
				return
			}

			bookingModels := make([]model.Booking, 0)
			startTimer := time.Now()
			if err := db.NewSelect().
				Model(&bookingModels).
				Where("event_id = ?", r.PathValue("id")).
				Order("created_at ASC").
				Scan(r.Context()); err != nil {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte("Can't get bookings"))
				slog.Error("can't get bookings", "error", err)
				return
			}
			as.MetricChans.ObserveDatabaseRead(float64(time.Since(startTimer).Microseconds()))

			respBody := make([]OneBookingRespBody, 0, len(bookingModels))
			for i := range bookingModels {
				respBody = append(respBody, bookingRespBody(&bookingModels[i]))
			}
			respBodyJson, err := json.Marshal(respBody)
			if err != nil {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte("Can't marshal response body"))
				return
			}
			w.Header().Set("Content-Type", "application/json")
			w.Write(respBodyJson)
		}))
}
