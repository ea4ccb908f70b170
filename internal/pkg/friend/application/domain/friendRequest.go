package friend

import (
	"errors"
	"time"
)

// Status is a friend-request state. The stored states are pending, accepted
// and declined; not-sent and waiting-for-current-user-response only exist
// as viewer-relative answers and are never persisted.
type Status string

const (
	StatusNotSent  Status = "not-sent"
	StatusPending  Status = "pending"
	StatusWaiting  Status = "waiting-for-current-user-response"
	StatusAccepted Status = "accepted"
	StatusDeclined Status = "declined"
)

// Domain-level errors for the friend context.
var (
	ErrSelfRequest      = errors.New("friend: it is not possible to add yourself")
	ErrDuplicateRequest = errors.New("friend: a request already exists between these users")
	ErrRequestNotFound  = errors.New("friend: request not found")
	ErrInvalidResponse  = errors.New("friend: response status must be accepted or declined")
	ErrMissingUser      = errors.New("friend: creator and receiver ids are required")
)

// Request is the single relationship record between an unordered pair of
// users. Direction (creator vs receiver) matters for presentation; pair
// uniqueness does not depend on it.
type Request struct {
	ID         string    `db:"id"`
	CreatorID  string    `db:"creator_id"`
	ReceiverID string    `db:"receiver_id"`
	Status     Status    `db:"status"`
	CreatedAt  time.Time `db:"created_at"`
}

// NewRequest validates and builds a pending request.
func NewRequest(creatorID, receiverID string) (*Request, error) {
	if creatorID == "" || receiverID == "" {
		return nil, ErrMissingUser
	}
	if creatorID == receiverID {
		return nil, ErrSelfRequest
	}
	return &Request{
		CreatorID:  creatorID,
		ReceiverID: receiverID,
		Status:     StatusPending,
		CreatedAt:  time.Now().UTC(),
	}, nil
}

// PairKey returns the deterministic lookup key for the unordered pair.
func PairKey(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + ":" + b
}

// ViewerStatus maps the stored status to the viewer's perspective: the
// receiver of a pending request sees waiting-for-current-user-response.
func (r Request) ViewerStatus(viewerID string) Status {
	if r.Status == StatusPending && r.ReceiverID == viewerID {
		return StatusWaiting
	}
	return r.Status
}

// OtherParty returns the id of the participant that is not viewerID, or ""
// when the viewer is not part of the request.
func (r Request) OtherParty(viewerID string) string {
	switch viewerID {
	case r.CreatorID:
		return r.ReceiverID
	case r.ReceiverID:
		return r.CreatorID
	default:
		return ""
	}
}

// ValidResponse reports whether s is an acceptable respond() status.
func ValidResponse(s Status) bool {
	return s == StatusAccepted || s == StatusDeclined
}
