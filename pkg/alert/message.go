package alert

// Supported delivery channel names, as recipients declare them in their
// preferences.
const (
	ChannelEmail = "email"
	ChannelSMS   = "sms"
	ChannelInApp = "app"
)

// Message is notification content bound to one recipient and one channel
// after translation and rendering. It lives only for the duration of a
// single delivery attempt and is never persisted by the core.
type Message struct {
	Subject   string
	Body      string
	Priority  Priority
	Recipient Recipient
	Channel   string
	Tag       string
}
