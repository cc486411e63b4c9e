package constant

// Domain event types. NATS subjects are "events.<type>".
const (
	EventWorkspaceCreated = "WORKSPACE_CREATED"
	EventWorkspaceDeleted = "WORKSPACE_DELETED"
	EventMemberAdded      = "MEMBER_ADDED"
	EventMemberRemoved    = "MEMBER_REMOVED"
	EventMemberRoleChange = "MEMBER_ROLE_CHANGED"
	EventNoteCreated      = "NOTE_CREATED"
	EventNoteDeleted      = "NOTE_DELETED"
	EventDocumentCreated  = "DOCUMENT_CREATED"
	EventDocumentDeleted  = "DOCUMENT_DELETED"
	EventCardDeleted      = "CARD_DELETED"
	EventChatMessage      = "CHAT_MESSAGE"
	EventUserSignedUp     = "USER_SIGNED_UP"
)

// Payload keys shared by publishers and the activity consumer.
const (
	EventKeyWorkspaceID = "workspaceId"
	EventKeyActorID     = "actorId"
	EventKeySubject     = "subject"
)

var activityEvents = map[string]bool{
	EventWorkspaceCreated: true,
	EventMemberAdded:      true,
	EventMemberRemoved:    true,
	EventMemberRoleChange: true,
	EventNoteCreated:      true,
	EventNoteDeleted:      true,
	EventDocumentCreated:  true,
	EventDocumentDeleted:  true,
}

// IsActivityEvent reports whether the event type is recorded in the
// workspace activity feed.
func IsActivityEvent(eventType string) bool {
	return activityEvents[eventType]
}

// WorkspaceEvent builds the payload shared by workspace scoped events.
func WorkspaceEvent(workspaceId, actorId, subject string) map[string]interface{} {
	return map[string]interface{}{
		EventKeyWorkspaceID: workspaceId,
		EventKeyActorID:     actorId,
		EventKeySubject:     subject,
	}
}
