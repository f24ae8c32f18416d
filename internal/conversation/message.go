package conversation

import (
	"time"

	"github.com/tbourn/krishi-mitra/internal/advisory"
	"github.com/tbourn/krishi-mitra/internal/domain"
)

// Feedback is a farmer's rating of an assistant reply.
type Feedback string

const (
	FeedbackNone     Feedback = ""
	FeedbackPositive Feedback = "positive"
	FeedbackNegative Feedback = "negative"
)

// Valid reports whether f is positive or negative.
func (f Feedback) Valid() bool { return f == FeedbackPositive || f == FeedbackNegative }

// WelcomeID is the id of the greeting every session starts with.
const WelcomeID = "welcome"

// Message is one chat turn.
type Message struct {
	ID          string
	Role        domain.Role
	Content     string
	Image       *advisory.Image
	CreatedAt   time.Time
	Feedback    Feedback
	IsBeingRead bool
}

func (m Message) archived() domain.ArchivedMessage {
	return domain.ArchivedMessage{ID: m.ID, Role: m.Role, Content: m.Content, CreatedAt: m.CreatedAt}
}
