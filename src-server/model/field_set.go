package model

// Field names accepted in a FieldSet. They match the JSON names the API uses.
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldOverview    = "overview"
	FieldImage       = "image"
	FieldVenue       = "venue"
	FieldLocation    = "location"
	FieldMode        = "mode"
	FieldAudience    = "audience"
	FieldOrganizer   = "organizer"
	FieldDate        = "date"
	FieldTime        = "time"
	FieldAgenda      = "agenda"
	FieldTags        = "tags"
	FieldEventID     = "eventId"
	FieldEmail       = "email"
)

// FieldSet marks which fields of a record were modified since it was loaded.
// Upsert uses it to gate conditional recomputation (slug derivation, booking
// referential checks). A nil FieldSet on a record persisting for the first
// time means every field is new.
type FieldSet map[string]struct{}

func Changed(fields ...string) FieldSet {
	fs := make(FieldSet, len(fields))
	for _, f := range fields {
		fs[f] = struct{}{}
	}
	return fs
}

func (fs FieldSet) Has(field string) bool {
	_, ok := fs[field]
	return ok
}

func (fs FieldSet) Add(field string) FieldSet {
	if fs == nil {
		fs = make(FieldSet)
	}
	fs[field] = struct{}{}
	return fs
}
