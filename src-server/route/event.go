package route

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"devents/src-server/model"
	"devents/src-server/notify"
	"devents/src-server/utils"

	"github.com/google/uuid"
)

type OneEventRespBody struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	Overview         string   `json:"overview"`
	Image            string   `json:"image"`
	Venue            string   `json:"venue"`
	Location         string   `json:"location"`
	Mode             string   `json:"mode"`
	Audience         string   `json:"audience"`
	Organizer        string   `json:"organizer"`
	Date             string   `json:"date"`
	Time             string   `json:"time"`
	Agenda           []string `json:"agenda"`
	Tags             []string `json:"tags"`
	Slug             string   `json:"slug"`
	CreatedAtUnixUTC int64    `json:"createdAtUnixUTC"`
	UpdatedAtUnixUTC int64    `json:"updatedAtUnixUTC"`
}

func eventRespBody(e *model.Event) OneEventRespBody {
	return OneEventRespBody{
		ID:               e.ID,
		Title:            e.Title,
		Description:      e.Description,
		Overview:         e.Overview,
		Image:            e.Image,
		Venue:            e.Venue,
		Location:         e.Location,
		Mode:             e.Mode,
		Audience:         e.Audience,
		Organizer:        e.Organizer,
		Date:             e.Date,
		Time:             e.Time,
		Agenda:           e.Agenda,
		Tags:             e.Tags,
		Slug:             e.Slug,
		CreatedAtUnixUTC: e.CreatedAt,
		UpdatedAtUnixUTC: e.UpdatedAt,
	}
}

func Event(muxer *http.ServeMux, as *utils.AppState, notifier notify.Notifier) {
	type CreateEventReqBody struct {
		Title       string   `json:"title"`
		Description string   `json:"description"`
		Overview    string   `json:"overview"`
		Image       string   `json:"image"`
		Venue       string   `json:"venue"`
		Location    string   `json:"location"`
		Mode        string   `json:"mode"`
		Audience    string   `json:"audience"`
		Organizer   string   `json:"organizer"`
		Date        string   `json:"date"`
		Time        string   `json:"time"`
		Agenda      []string `json:"agenda"`
		Tags        []string `json:"tags"`
	}

	// list all events
	muxer.HandleFunc("GET /api/events", Logging(
		func(w http.ResponseWriter, r *http.Request) {
			db, err := as.DB(r.Context())
			if err != nil {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte("Can't reach database"))
				slog.Error("can't reach database", "error", err)
				return
			}

			eventModels := make([]model.Event, 0)
			startTimer := time.Now()
			if err := db.NewSelect().
				Model(&eventModels).
				Order("date ASC").
				Scan(r.Context()); err != nil {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte("Can't get events"))
				slog.Error("can't get events", "error", err)
				return
			}
			as.MetricChans.ObserveDatabaseRead(float64(time.Since(startTimer).Microseconds()))

			respBody := make([]OneEventRespBody, 0, len(eventModels))
			for i := range eventModels {
				respBody = append(respBody, eventRespBody(&eventModels[i]))
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

	// get one event by its slug
	muxer.HandleFunc("GET /api/events/{slug}", Logging(
		func(w http.ResponseWriter, r *http.Request) {
			db, err := as.DB(r.Context())
			if err != nil {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte("Can't reach database"))
				slog.Error("can't reach database", "error", err)
				return
			}

			eventModel := new(model.Event)
			startTimer := time.Now()
			if err := db.NewSelect().
				Model(eventModel).
				Where("slug = ?", r.PathValue("slug")).
				Scan(r.Context()); err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					w.WriteHeader(http.StatusNotFound)
					w.Write([]byte("Event not found"))
					return
				}
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte("Can't get event"))
				slog.Error("can't get event", "error", err)
				return
			}
			as.MetricChans.ObserveDatabaseRead(float64(time.Since(startTimer).Microseconds()))

			respBodyJson, err := json.Marshal(eventRespBody(eventModel))
			if err != nil {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte("Can't marshal response body"))
				return
			}
			w.Header().Set("Content-Type", "application/json")
			w.Write(respBodyJson)
		}))

	// create a new event
	muxer.HandleFunc("POST /api/events", Logging(
		func(w http.ResponseWriter, r *http.Request) {
			var reqBody CreateEventReqBody
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

			eventModel := &model.Event{
				ID:          uuid.NewString(),
				Title:       reqBody.Title,
				Description: reqBody.Description,
				Overview:    reqBody.Overview,
				Image:       reqBody.Image,
				Venue:       reqBody.Venue,
				Location:    reqBody.Location,
				Mode:        reqBody.Mode,
				Audience:    reqBody.Audience,
				Organizer:   reqBody.Organizer,
				Date:        reqBody.Date,
				Time:        reqBody.Time,
				Agenda:      reqBody.Agenda,
				Tags:        reqBody.Tags,
			}

			startTimer := time.Now()
			if err := eventModel.Upsert(r.Context(), db, nil); err != nil {
				writeSaveError(w, err)
				return
			}
			as.MetricChans.ObserveDatabaseWrite(float64(time.Since(startTimer).Microseconds()))
			as.MetricChans.CountEventCreated()

			// detached from the request context, the announcement outlives it
			go notifier.EventCreated(context.WithoutCancel(r.Context()), eventModel)

			respBodyJson, err := json.Marshal(eventRespBody(eventModel))
			if err != nil {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte("Can't marshal response body"))
				return
			}
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			w.Write(respBodyJson)
		}))

	type ModifyEventReqBody struct {
		Title       *string   `json:"title"`
		Description *string   `json:"description"`
		Overview    *string   `json:"overview"`
		Image       *string   `json:"image"`
		Venue       *string   `json:"venue"`
		Location    *string   `json:"location"`
		Mode        *string   `json:"mode"`
		Audience    *string   `json:"audience"`
		Organizer   *string   `json:"organizer"`
		Date        *string   `json:"date"`
		Time        *string   `json:"time"`
		Agenda      *[]string `json:"agenda"`
		Tags        *[]string `json:"tags"`
	}

	// modify an existing event; only fields present in the body are applied,
	// and only those count as changed
	muxer.HandleFunc("PUT /api/events/{id}", Logging(
		func(w http.ResponseWriter, r *http.Request) {
			var reqBody ModifyEventReqBody
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

			eventModel := new(model.Event)
			if err := db.NewSelect().
				Model(eventModel).
				Where("id = ?", r.PathValue("id")).
				Scan(r.Context()); err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					w.WriteHeader(http.StatusNotFound)
					w.Write([]byte("Event not found"))
					return
				}
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte("Can't get event"))
				slog.Error("can't get event", "error", err)
				return
			}

			changed := model.Changed()
			if reqBody.Title != nil {
				eventModel.Title = *reqBody.Title
				changed.Add(model.FieldTitle)
			}
			if reqBody.Description != nil {
				eventModel.Description = *reqBody.Description
				changed.Add(model.FieldDescription)
			}
			if reqBody.Overview != nil {
				eventModel.Overview = *reqBody.Overview
				changed.Add(model.FieldOverview)
			}
			if reqBody.Image != nil {
				eventModel.Image = *reqBody.Image
				changed.Add(model.FieldImage)
			}
			if reqBody.Venue != nil {
				eventModel.Venue = *reqBody.Venue
				changed.Add(model.FieldVenue)
			}
			if reqBody.Location != nil {
				eventModel.Location = *reqBody.Location
				changed.Add(model.FieldLocation)
			}
			if reqBody.Mode != nil {
				eventModel.Mode = *reqBody.Mode
				changed.Add(model.FieldMode)
			}
			if reqBody.Audience != nil {
				eventModel.Audience = *reqBody.Audience
				changed.Add(model.FieldAudience)
			}
			if reqBody.Organizer != nil {
				eventModel.Organizer = *reqBody.Organizer
				changed.Add(model.FieldOrganizer)
			}
			if reqBody.Date != nil {
				eventModel.Date = *reqBody.Date
				changed.Add(model.FieldDate)
			}
			if reqBody.Time != nil {
				eventModel.Time = *reqBody.Time
				changed.Add(model.FieldTime)
			}
			if reqBody.Agenda != nil {
				eventModel.Agenda = *reqBody.Agenda
				changed.Add(model.FieldAgenda)
			}
			if reqBody.Tags != nil {
				eventModel.Tags = *reqBody.Tags
				changed.Add(model.FieldTags)
			}

			startTimer := time.Now()
			if err := eventModel.Upsert(r.Context(), db, changed); err != nil {
				writeSaveError(w, err)
				return
			}
			as.MetricChans.ObserveDatabaseWrite(float64(time.Since(startTimer).Microseconds()))

			respBodyJson, err := json.Marshal(eventRespBody(eventModel))
			if err != nil {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte("Can't marshal response body"))
				return
			}
			w.Header().Set("Content-Type", "application/json")
			w.Write(respBodyJson)
		}))
}
