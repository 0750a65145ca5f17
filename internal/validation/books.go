// Package validation checks and normalizes client input before it reaches
// a datastore. Validators never panic: they return nil or an *Error that
// describes every offending field.
package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/mrlokans/bookshelf/internal/entities"
)

type Reason string

const (
	ReasonMissingFields Reason = "missing_fields"
	ReasonInvalidEnum   Reason = "invalid_enum"
	ReasonUnknownFields Reason = "unknown_fields"
	ReasonInvalidValue  Reason = "invalid_value"
	ReasonEmptyUpdate   Reason = "empty_update"
)

// Error is a failed validation. Fields names the offending fields; for
// ReasonInvalidEnum, Values holds the rejected values and Allowed the
// accepted set.
type Error struct {
	Reason  Reason
	Fields  []string
	Values  []string
	Allowed []string
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	switch e.Reason {
	case ReasonMissingFields:
		return fmt.Sprintf("Missing required fields: %s.", strings.Join(e.Fields, ", "))
	case ReasonUnknownFields:
		return fmt.Sprintf("Unknown fields: %s.", strings.Join(e.Fields, ", "))
	case ReasonInvalidEnum:
		return fmt.Sprintf("Invalid %s: %s. Allowed values: %s.",
			strings.Join(e.Fields, ", "), strings.Join(e.Values, ", "), strings.Join(e.Allowed, ", "))
	case ReasonEmptyUpdate:
		return "Request body must contain at least one field to update."
	default:
		return fmt.Sprintf("Invalid value for fields: %s.", strings.Join(e.Fields, ", "))
	}
}

// Book fields accepted from clients.
const (
	FieldTitle       = "title"
	FieldAuthor      = "author"
	FieldDescription = "description"
	FieldGenre       = "genre"
	FieldStatus      = "status"
)

var bookFields = map[string]bool{
	FieldTitle:       true,
	FieldAuthor:      true,
	FieldDescription: true,
	FieldGenre:       true,
	FieldStatus:      true,
}

var errGenreType = errors.New("genre must be a string or an array of strings")

// GenreList decodes from either a JSON string or an array of strings.
type GenreList []string

func (g *GenreList) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*g = nil
		return nil
	}

	if len(trimmed) > 0 && trimmed[0] == '"' {
		var single string
		if err := json.Unmarshal(trimmed, &single); err != nil {
			return errGenreType
		}
		*g = GenreList{single}
		return nil
	}

	var list []string
	if err := json.Unmarshal(trimmed, &list); err != nil {
		return errGenreType
	}
	*g = list
	return nil
}

// BookInput is the body of a create or full-replace request. Any owner
// supplied by the client is ignored.
type BookInput struct {
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	Description string    `json:"description"`
	Genre       GenreList `json:"genre"`
	Status      string    `json:"status"`
}

// ValidateRequiredFields reports every missing or blank required field at
// once, in the order title, author, genre.
func ValidateRequiredFields(in BookInput) *Error {
	var missing []string
	if strings.TrimSpace(in.Title) == "" {
		missing = append(missing, FieldTitle)
	}
	if strings.TrimSpace(in.Author) == "" {
		missing = append(missing, FieldAuthor)
	}
	if len(NormalizeGenres(in.Genre)) == 0 {
		missing = append(missing, FieldGenre)
	}
	if len(missing) > 0 {
		return &Error{Reason: ReasonMissingFields, Fields: missing}
	}
	return nil
}

// NormalizeGenres trims every entry and drops the ones left empty.
func NormalizeGenres(genres []string) []string {
	out := make([]string, 0, len(genres))
	for _, g := range genres {
		if g = strings.TrimSpace(g); g != "" {
			out = append(out, g)
		}
	}
	return out
}

// ValidateEnum checks every value against allowed, ignoring case, and
// returns the canonical spellings.
func ValidateEnum(values, allowed []string, field string) ([]string, *Error) {
	canonical := make([]string, 0, len(values))
	var invalid []string
	for _, v := range values {
		match, ok := lookup(v, allowed)
		if !ok {
			invalid = append(invalid, v)
			continue
		}
		canonical = append(canonical, match)
	}
	if len(invalid) > 0 {
		return nil, &Error{
			Reason:  ReasonInvalidEnum,
			Fields:  []string{field},
			Values:  invalid,
			Allowed: allowed,
		}
	}
	return canonical, nil
}

func lookup(value string, allowed []string) (string, bool) {
	value = strings.TrimSpace(value)
	for _, a := range allowed {
		if strings.EqualFold(a, value) {
			return a, true
		}
	}
	return "", false
}

// ValidateBook applies the create/replace rules and returns the
// normalized book fields: description falls back to the title and status
// to the default.
func ValidateBook(in BookInput) (*entities.Book, *Error) {
	if verr := ValidateRequiredFields(in); verr != nil {
		return nil, verr
	}

	genres, verr := ValidateEnum(NormalizeGenres(in.Genre), entities.Genres, FieldGenre)
	if verr != nil {
		return nil, verr
	}

	status := entities.DefaultBookStatus
	if s := strings.TrimSpace(in.Status); s != "" {
		values, verr := ValidateEnum([]string{s}, entities.BookStatuses, FieldStatus)
		if verr != nil {
			return nil, verr
		}
		status = entities.BookStatus(values[0])
	}

	book := &entities.Book{
		Title:       strings.TrimSpace(in.Title),
		Author:      strings.TrimSpace(in.Author),
		Description: strings.TrimSpace(in.Description),
		Genre:       genres,
		Status:      status,
	}
	if book.Description == "" {
		book.Description = book.Title
	}
	return book, nil
}

// ValidatePartialUpdate checks a PATCH body. The body must carry at least
// one known field; only the fields present are checked.
func ValidatePartialUpdate(raw map[string]json.RawMessage) (entities.BookFields, *Error) {
	var fields entities.BookFields
	if len(raw) == 0 {
		return fields, &Error{Reason: ReasonEmptyUpdate}
	}

	var unknown []string
	for name := range raw {
		if !bookFields[name] {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return fields, &Error{Reason: ReasonUnknownFields, Fields: unknown}
	}

	var invalid []string
	text := func(name string) *string {
		msg, ok := raw[name]
		if !ok {
			return nil
		}
		var s string
		if err := json.Unmarshal(msg, &s); err != nil || strings.TrimSpace(s) == "" {
			invalid = append(invalid, name)
			return nil
		}
		s = strings.TrimSpace(s)
		return &s
	}

	fields.Title = text(FieldTitle)
	fields.Author = text(FieldAuthor)
	fields.Description = text(FieldDescription)

	var genres []string
	if msg, ok := raw[FieldGenre]; ok {
		var list GenreList
		if err := json.Unmarshal(msg, &list); err != nil {
			invalid = append(invalid, FieldGenre)
		} else if genres = NormalizeGenres(list); len(genres) == 0 {
			invalid = append(invalid, FieldGenre)
		}
	}

	status := text(FieldStatus)

	if len(invalid) > 0 {
		return entities.BookFields{}, &Error{Reason: ReasonInvalidValue, Fields: invalid}
	}

	if len(genres) > 0 {
		canonical, verr := ValidateEnum(genres, entities.Genres, FieldGenre)
		if verr != nil {
			return entities.BookFields{}, verr
		}
		fields.Genre = canonical
	}

	if status != nil {
		values, verr := ValidateEnum([]string{*status}, entities.BookStatuses, FieldStatus)
		if verr != nil {
			return entities.BookFields{}, verr
		}
		s := entities.BookStatus(values[0])
		fields.Status = &s
	}

	return fields, nil
}
