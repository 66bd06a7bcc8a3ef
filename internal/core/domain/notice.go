package domain

// NoticeLevel classifies a user notification.
type NoticeLevel string

const (
	NoticeInfo  NoticeLevel = "info"
	NoticeError NoticeLevel = "error"
)

// Notice is a blocking user notification (an alert in the browser).
type Notice struct {
	Level   NoticeLevel `json:"level"`
	Message string      `json:"message"`
}

// InfoNotice builds an informational notice.
func InfoNotice(msg string) Notice {
	return Notice{Level: NoticeInfo, Message: msg}
}

// ErrorNotice builds an error notice from an error's message.
func ErrorNotice(err error) Notice {
	return Notice{Level: NoticeError, Message: err.Error()}
}
