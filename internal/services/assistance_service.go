// Package services – AssistanceService
//
// AssistanceService records a farmer's request to be called back by a human
// agricultural officer. Input is validated with go-playground/validator, the
// row is persisted through an AssistanceRepo, and an optional Idempotency-Key
// makes retries return the originally created request instead of filing a
// duplicate.
package services

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/tbourn/krishi-mitra/internal/domain"
	"github.com/tbourn/krishi-mitra/internal/i18n"
)

// IdempotencyScopeAssistance namespaces idempotency keys of assistance requests.
const IdempotencyScopeAssistance = "assistance"

// AssistanceRepo defines the persistence contract required by AssistanceService.
type AssistanceRepo interface {
	CreateAssistanceRequest(ctx context.Context, db *gorm.DB, phone, issue, lang string) (*domain.AssistanceRequest, error)
	GetAssistanceRequest(ctx context.Context, db *gorm.DB, id string) (*domain.AssistanceRequest, error)

	GetIdempotency(ctx context.Context, db *gorm.DB, scope, key string, now time.Time) (*domain.Idempotency, error)
	CreateIdempotency(ctx context.Context, db *gorm.DB, scope, key, resourceID string, status int, ttl time.Duration) (*domain.Idempotency, error)
}

// AssistanceInput is a request for a call back.
type AssistanceInput struct {
	Phone    string `validate:"required,phone"`
	Issue    string `validate:"required,max=2000"`
	Language string
}

// AssistanceService validates and stores assistance requests.
type AssistanceService struct {
	DB   *gorm.DB
	Repo AssistanceRepo

	// IdempotencyTTL is how long an Idempotency-Key replays the original result.
	IdempotencyTTL time.Duration

	validate *validator.Validate
	now      func() time.Time
}

var phoneRE = regexp.MustCompile(`^\+?[0-9]{6,15}$`)

// phoneSeparators strips the separators farmers commonly type into phone numbers.
var phoneSeparators = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "", ".", "")

// NewAssistanceService constructs an AssistanceService with a 24h idempotency window.
func NewAssistanceService(db *gorm.DB, r AssistanceRepo) *AssistanceService {
	v := validator.New()
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phoneRE.MatchString(fl.Field().String())
	})
	return &AssistanceService{
		DB:             db,
		Repo:           r,
		IdempotencyTTL: 24 * time.Hour,
		validate:       v,
		now:            time.Now,
	}
}

// NormalizePhone removes whitespace and common separators from a phone number.
func NormalizePhone(s string) string {
	return phoneSeparators.Replace(strings.TrimSpace(s))
}

// Submit validates in and stores a new request. When idemKey is non-empty and
// a live record exists for it, the original request is returned with
// replayed=true and nothing new is written.
func (s *AssistanceService) Submit(ctx context.Context, in AssistanceInput, idemKey string) (req *domain.AssistanceRequest, replayed bool, err error) {
	tr := otel.Tracer("services/AssistanceService")
	ctx, span := tr.Start(ctx, "Submit",
		trace.WithAttributes(attribute.Bool("idempotency.key_present", idemKey != "")),
	)
	defer span.End()

	in.Phone = NormalizePhone(in.Phone)
	in.Issue = strings.TrimSpace(in.Issue)
	if err := s.validate.Struct(in); err != nil {
		return nil, false, mapAssistanceValidation(err)
	}
	lang := string(i18n.Parse(in.Language))

	if idemKey != "" {
		if rec, gerr := s.Repo.GetIdempotency(ctx, s.DB, IdempotencyScopeAssistance, idemKey, s.now().UTC()); gerr == nil && rec != nil {
			prev, perr := s.Repo.GetAssistanceRequest(ctx, s.DB, rec.ResourceID)
			if perr == nil {
				span.SetAttributes(attribute.Bool("idempotency.replay", true))
				return prev, true, nil
			}
		}
	}

	req, err = s.Repo.CreateAssistanceRequest(ctx, s.DB, in.Phone, in.Issue, lang)
	if err != nil {
		span.RecordError(err)
		return nil, false, err
	}

	if idemKey != "" {
		// Losing the race to a concurrent retry leaves the first record in place.
		_, _ = s.Repo.CreateIdempotency(ctx, s.DB, IdempotencyScopeAssistance, idemKey, req.ID, http.StatusCreated, s.IdempotencyTTL)
	}
	span.SetAttributes(attribute.String("assistance.id", req.ID))
	return req, false, nil
}

// Get returns a stored request by ID.
func (s *AssistanceService) Get(ctx context.Context, id string) (*domain.AssistanceRequest, error) {
	req, err := s.Repo.GetAssistanceRequest(ctx, s.DB, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAssistanceNotFound
	}
	return req, err
}

func mapAssistanceValidation(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	switch fe.Field() {
	case "Phone":
		return ErrInvalidPhone
	case "Issue":
		if fe.Tag() == "max" {
			return ErrIssueTooLong
		}
		return ErrEmptyIssue
	}
	return err
}
