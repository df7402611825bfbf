package mail

import "gopkg.in/gomail.v2"

type LeadWonEmailData struct {
	LeadID    string
	LeadName  string
	FromTitle string
	ToTitle   string
	ChangedAt string
}

// Dialer é o pedaço do gomail.Dialer que o sender usa.
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	To       string
	Dialer   Dialer
}
