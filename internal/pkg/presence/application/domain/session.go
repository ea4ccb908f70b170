package presence

import "errors"

// ErrIncompleteSession rejects registry joins missing an id.
var ErrIncompleteSession = errors.New("presence: connection, user and conversation ids are required")

// ActiveSession designates the connection currently holding a user's
// conversation focus. A user may be connected from several devices, but at
// most one session row exists per user: whichever connection joined last
// owns the focus.
type ActiveSession struct {
	ConnectionID   string `db:"connection_id"`
	UserID         string `db:"user_id"`
	ConversationID string `db:"conversation_id"`
}

// Validate checks that the session is fully populated.
func (s ActiveSession) Validate() error {
	if s.ConnectionID == "" || s.UserID == "" || s.ConversationID == "" {
		return ErrIncompleteSession
	}
	return nil
}
