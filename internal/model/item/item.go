// Package item holds the Item entity and the request/response payloads of
// the /items endpoints.
package item

import (
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/deppfellow/item-service/internal/errs"
)

// Item is a row of the items table.
type Item struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

var validate = newValidator()

// newValidator reports field names using their json tags.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ---------------------------------------------------------------------------

// CreateItemPayload is the body of POST /items.
type CreateItemPayload struct {
	Name string `json:"name" validate:"required"`
}

// Validate trims the name before checking it is present.
func (p *CreateItemPayload) Validate() error {
	p.Name = strings.TrimSpace(p.Name)
	return validate.Struct(p)
}

// BindFailed treats an undecodable body as an empty object.
func (p *CreateItemPayload) BindFailed(error) {
	*p = CreateItemPayload{}
}

// ---------------------------------------------------------------------------

// ListItemsPayload is the (empty) input of GET /items.
type ListItemsPayload struct{}

func (p *ListItemsPayload) Validate() error {
	return nil
}

func (p *ListItemsPayload) PathParamsOnly() {}

// ListItemsResponse wraps the item list.
type ListItemsResponse struct {
	Items []Item `json:"items"`
}

// ---------------------------------------------------------------------------

var itemIDPattern = regexp.MustCompile(`^[0-9]+$`)

// ItemIDPayload carries the {id} path segment of /items/{id}.
type ItemIDPayload struct {
	RawID string `param:"id" json:"-"`

	id int64
}

// Validate accepts only unsigned base-10 integers. Anything else is answered
// as an unknown route.
func (p *ItemIDPayload) Validate() error {
	if !itemIDPattern.MatchString(p.RawID) {
		return errs.NewNotFoundError(errs.MessageNotFound)
	}

	id, err := strconv.ParseInt(p.RawID, 10, 64)
	if err != nil {
		return errs.NewNotFoundError(errs.MessageNotFound)
	}

	p.id = id
	return nil
}

// PathParamsOnly keeps a GET or DELETE body from being decoded.
func (p *ItemIDPayload) PathParamsOnly() {}

// ID returns the parsed id. Only meaningful after Validate succeeded.
func (p *ItemIDPayload) ID() int64 {
	return p.id
}

// DeleteItemResponse reports how many rows a delete removed.
type DeleteItemResponse struct {
	Deleted int64 `json:"deleted"`
}
