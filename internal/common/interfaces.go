package common

// Broadcaster fans an event out to every connection currently joined to
// the chat room. Delivery is best-effort and must never block the caller;
// the durable state change is committed before Broadcast is invoked.
type Broadcaster interface {
	Broadcast(chatID string, event Event)
}

// NopBroadcaster discards events. Used while wiring and in tests.
type NopBroadcaster struct{}

func (NopBroadcaster) Broadcast(string, Event) {}
