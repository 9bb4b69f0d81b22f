package notify

import "context"

// Message is one rotation notification: a colored attachment with the
// composed image embedded.
type Message struct {
	Title     string
	Body      string
	Footer    string
	Color     string
	ImagePath string
	Filename  string
}

// Notifier delivers a rendered rotation notification to the destination
// channel.
type Notifier interface {
	Post(ctx context.Context, msg Message) error
}
