package common

// Event is the payload fanned out to every live connection joined to a
// chat room. Data carries a snapshot of the affected entity.
type Event struct {
	Type   string      `json:"type"`
	ChatID string      `json:"chat_id"`
	Data   interface{} `json:"data"`
}

// Event types delivered over the websocket hub.
const (
	EventMessageCreated = "message.created"
	EventMessageUpdated = "message.updated"
	EventMessageDeleted = "message.deleted"
	EventMemberAdded    = "member.added"
	EventMemberRemoved  = "member.removed"
	EventMemberPromoted = "member.promoted"
)

// MemberEvent is the snapshot carried by member.* events.
type MemberEvent struct {
	ChatID  string `json:"chat_id"`
	UserID  string `json:"user_id"`
	IsAdmin bool   `json:"is_admin"`
}
