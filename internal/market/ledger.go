package market

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ValidationError describes the first invalid field of a listing.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ListingInput is the sell form.
type ListingInput struct {
	Crop         string          `validate:"required,crop"`
	Quantity     decimal.Decimal `validate:"gt=0"`
	PricePerUnit decimal.Decimal `validate:"gt=0"`
}

// ParseListingInput builds a ListingInput from form strings. Non-numeric
// quantity or price is a *ValidationError.
func ParseListingInput(crop, quantity, price string) (ListingInput, error) {
	in := ListingInput{Crop: strings.TrimSpace(crop)}
	var err error
	if in.Quantity, err = decimal.NewFromString(strings.TrimSpace(quantity)); err != nil {
		return in, &ValidationError{Field: "Quantity", Message: "must be a number"}
	}
	if in.PricePerUnit, err = decimal.NewFromString(strings.TrimSpace(price)); err != nil {
		return in, &ValidationError{Field: "PricePerUnit", Message: "must be a number"}
	}
	return in, nil
}

// Listing is a seller's offer.
type Listing struct {
	ID           string
	Crop         string
	Quantity     decimal.Decimal
	PricePerUnit decimal.Decimal
	CreatedAt    time.Time
	Image        string
}

// AboveMarket reports whether the asking price exceeds the reference price.
// It is evaluated against the table on every call.
func (l Listing) AboveMarket() bool {
	r, ok := Reference(l.Crop)
	return ok && l.PricePerUnit.GreaterThan(r.Price)
}

// Total is quantity times price.
func (l Listing) Total() decimal.Decimal {
	return l.Quantity.Mul(l.PricePerUnit)
}

// Ledger is the in-memory set of listings, newest first.
type Ledger struct {
	mu       sync.RWMutex
	listings []Listing
	validate *validator.Validate

	now   func() time.Time
	newID func() string
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	v := validator.New()
	v.RegisterCustomTypeFunc(func(f reflect.Value) interface{} {
		d, ok := f.Interface().(decimal.Decimal)
		if !ok {
			return nil
		}
		x, _ := d.Float64()
		return x
	}, decimal.Decimal{})
	_ = v.RegisterValidation("crop", func(fl validator.FieldLevel) bool {
		_, ok := Reference(fl.Field().String())
		return ok
	})
	return &Ledger{validate: v, now: time.Now, newID: uuid.NewString}
}

// Post validates in and prepends a listing. The crop name is stored in its
// canonical spelling.
func (l *Ledger) Post(in ListingInput) (string, error) {
	if err := l.validate.Struct(in); err != nil {
		return "", toValidationError(err)
	}
	ref, _ := Reference(in.Crop)

	item := Listing{
		ID:           l.newID(),
		Crop:         ref.Crop,
		Quantity:     in.Quantity,
		PricePerUnit: in.PricePerUnit,
		CreatedAt:    l.now(),
		Image:        ref.Image,
	}

	l.mu.Lock()
	l.listings = append([]Listing{item}, l.listings...)
	l.mu.Unlock()
	return item.ID, nil
}

// Remove deletes listing id; unknown ids are ignored.
func (l *Ledger) Remove(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.listings {
		if l.listings[i].ID == id {
			l.listings = append(l.listings[:i], l.listings[i+1:]...)
			return
		}
	}
}

// Listings returns a copy, newest first.
func (l *Ledger) Listings() []Listing {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Listing, len(l.listings))
	copy(out, l.listings)
	return out
}

// Get returns listing id.
func (l *Ledger) Get(id string) (Listing, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, it := range l.listings {
		if it.ID == id {
			return it, true
		}
	}
	return Listing{}, false
}

func toValidationError(err error) error {
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) || len(ves) == 0 {
		return err
	}
	fe := ves[0]
	msg := "is invalid"
	switch fe.Tag() {
	case "required":
		msg = "is required"
	case "crop":
		msg = fmt.Sprintf("must be one of %s", strings.Join(Crops(), ", "))
	case "gt":
		msg = "must be a positive number"
	}
	return &ValidationError{Field: fe.Field(), Message: msg}
}
