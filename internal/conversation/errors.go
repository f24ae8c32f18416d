package conversation

import "errors"

var (
	// ErrAwaitingReply is returned when a submission is attempted while a
	// reply is still outstanding. Nothing is appended.
	ErrAwaitingReply = errors.New("a reply is still pending")

	// ErrStaleReply is returned when the session was cleared while the reply
	// was in flight. The reply is discarded.
	ErrStaleReply = errors.New("reply arrived after the conversation was cleared")

	// ErrEmptyImage is returned when an uploaded image has no bytes.
	ErrEmptyImage = errors.New("image is empty")

	// ErrImageTooLarge is returned when an uploaded image exceeds MaxImageBytes.
	ErrImageTooLarge = errors.New("image is too large")
)
