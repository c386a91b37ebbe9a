package core

// SMSMessage is a single text message addressed to one mobile number.
type SMSMessage struct {
	To   string
	Body string
}

// SMSService is any service that can deliver text messages.
type SMSService interface {
	// SendMessages sends messages concurrently.
	SendMessages(messages ...*SMSMessage)
}
