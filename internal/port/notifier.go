package port

// NotificationLevel classifies a transient notification.
type NotificationLevel string

const (
	NotificationWorking NotificationLevel = "working"
	NotificationSuccess NotificationLevel = "success"
	NotificationError   NotificationLevel = "error"
)

// Notification is one transient UI notification. Working entries stay until
// resolved by a terminal entry with the same key; others auto-dismiss.
type Notification struct {
	ID      string            `json:"id"`
	Key     string            `json:"key"`
	Level   NotificationLevel `json:"level"`
	Message string            `json:"message"`
}

// Notifier emits transient notifications.
type Notifier interface {
	Working(key, message string)
	Success(key, message string)
	Error(key, message string)
}
