package model

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"devents/src-server/utils"

	"github.com/bwmarrin/discordgo"
	"github.com/uptrace/bun"
)

type Event struct {
	bun.BaseModel `bun:"table:events"`

	ID          string `bun:"id,pk"`                 // required
	Title       string `bun:"title,notnull"`         // required
	Description string `bun:"description,notnull"`   // required
	Overview    string `bun:"overview,notnull"`      // required
	Image       string `bun:"image,notnull"`         // required
	Venue       string `bun:"venue,notnull"`         // required
	Location    string `bun:"location,notnull"`      // required
	Mode        string `bun:"mode,notnull"`          // required
	Audience    string `bun:"audience,notnull"`      // required
	Organizer   string `bun:"organizer,notnull"`     // required

	Date string `bun:"date,notnull"` // canonical YYYY-MM-DD
	Time string `bun:"time,notnull"` // canonical HH:MM, 24-hour

	Agenda []string `bun:"agenda,notnull"` // required, stored as JSON
	Tags   []string `bun:"tags,notnull"`   // required, stored as JSON

	// derived from the title, never set by callers
	Slug string `bun:"slug,unique"`

	CreatedAt int64 `bun:"created_at,notnull"`
	UpdatedAt int64 `bun:"updated_at"`

	Bookings []*Booking `bun:"rel:has-many,join:id=event_id"`
}

// Upsert validates and normalizes the event, then inserts or updates it.
// changed marks the fields modified since the record was loaded; pass nil when
// persisting a freshly constructed record. Date and time are re-normalized on
// every persist. The slug is recomputed only on first persist or when the
// title changed, and its uniqueness is enforced by the column's unique index.
func (e *Event) Upsert(ctx context.Context, db bun.IDB, changed FieldSet) error {
	if e.ID == "" {
		return fmt.Errorf("(*Event).Upsert: event id is blank")
	}

	e.Title = strings.TrimSpace(e.Title)
	e.Description = strings.TrimSpace(e.Description)
	e.Overview = strings.TrimSpace(e.Overview)
	e.Image = strings.TrimSpace(e.Image)
	e.Venue = strings.TrimSpace(e.Venue)
	e.Location = strings.TrimSpace(e.Location)
	e.Mode = strings.TrimSpace(e.Mode)
	e.Audience = strings.TrimSpace(e.Audience)
	e.Organizer = strings.TrimSpace(e.Organizer)

	if err := e.validate(); err != nil {
		return err
	}

	date, ok := utils.NormalizeDate(e.Date)
	if !ok {
		return &ValidationError{Field: FieldDate, Reason: "Invalid date format"}
	}
	e.Date = date

	timeOfDay, ok := utils.NormalizeTime(e.Time)
	if !ok {
		return &ValidationError{Field: FieldTime, Reason: "Invalid time format"}
	}
	e.Time = timeOfDay

	exists, err := db.NewSelect().
		Model((*Event)(nil)).
		Where("id = ?", e.ID).
		Exists(ctx)
	if err != nil {
		return fmt.Errorf("(*Event).Upsert: %w", err)
	}

	if !exists || changed.Has(FieldTitle) {
		e.Slug = utils.Slugify(e.Title)
	}

	now := time.Now().UTC().Unix()
	switch exists {
	case true:
		e.UpdatedAt = now
		if _, err := db.NewUpdate().
			Model(e).
			WherePK().
			Exec(ctx); err != nil {
			return fmt.Errorf("(*Event).Upsert: %w", err)
		}
	case false:
		if e.CreatedAt == 0 {
			e.CreatedAt = now
		}
		e.UpdatedAt = now
		if _, err := db.NewInsert().
			Model(e).
			Exec(ctx); err != nil {
			return fmt.Errorf("(*Event).Upsert: %w", err)
		}
	}

	return nil
}

func (e *Event) validate() error {
	switch {
	case e.Title == "":
		return &ValidationError{Field: FieldTitle, Reason: "Title is required"}
	case utf8.RuneCountInString(e.Title) > 100:
		return &ValidationError{Field: FieldTitle, Reason: "Title cannot exceed 100 characters"}
	case e.Description == "":
		return &ValidationError{Field: FieldDescription, Reason: "Description is required"}
	case utf8.RuneCountInString(e.Description) > 1000:
		return &ValidationError{Field: FieldDescription, Reason: "Description cannot exceed 1000 characters"}
	case e.Overview == "":
		return &ValidationError{Field: FieldOverview, Reason: "Overview is required"}
	case utf8.RuneCountInString(e.Overview) > 500:
		return &ValidationError{Field: FieldOverview, Reason: "Overview cannot exceed 500 characters"}
	case e.Image == "":
		return &ValidationError{Field: FieldImage, Reason: "Image is required"}
	case e.Venue == "":
		return &ValidationError{Field: FieldVenue, Reason: "Venue is required"}
	case e.Location == "":
		return &ValidationError{Field: FieldLocation, Reason: "Location is required"}
	case e.Mode == "":
		return &ValidationError{Field: FieldMode, Reason: "Mode is required"}
	case e.Audience == "":
		return &ValidationError{Field: FieldAudience, Reason: "Audience is required"}
	case e.Organizer == "":
		return &ValidationError{Field: FieldOrganizer, Reason: "Organizer is required"}
	case len(e.Agenda) == 0:
		return &ValidationError{Field: FieldAgenda, Reason: "Agenda must contain at least one item"}
	case len(e.Tags) == 0:
		return &ValidationError{Field: FieldTags, Reason: "Tags must contain at least one item"}
	}
	return nil
}

func (e *Event) ToDiscordEmbed() *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       e.Title,
		Description: e.Overview,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "Date",
				Value:  e.Date,
				Inline: true,
			},
			{
				Name:   "Time",
				Value:  e.Time,
				Inline: true,
			},
			{
				Name:  "Venue",
				Value: fmt.Sprintf("%s, %s", e.Venue, e.Location),
			},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: e.Slug,
		},
		Author: &discordgo.MessageEmbedAuthor{
			Name: e.Organizer,
		},
	}
	if len(e.Tags) > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Tags",
			Value: strings.Join(e.Tags, ", "),
		})
	}
	return embed
}
