package models

import "time"

// NewsletterSubscriber is a newsletter recipient. Email is stored trimmed and
// lower-cased; the unique index is the authority on duplicates under
// concurrent signups.
type NewsletterSubscriber struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"size:120;uniqueIndex;not null" json:"email"`
	SubscribedAt time.Time `gorm:"autoCreateTime" json:"subscribed_at"`
}
