package models

import "time"

// Message is a direct message between two users. Sender and Receiver
// reference existing users at send time only; messages are immutable once
// created and deleted only by their sender.
type Message struct {
	MID      string    `gorm:"primaryKey" json:"mid"`
	Sender   string    `gorm:"index" json:"from"`
	Receiver string    `gorm:"index" json:"to"`
	Text     string    `json:"text"`
	SentAt   time.Time `json:"sent_at"`
}
