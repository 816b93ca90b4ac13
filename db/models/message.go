package models

import (
	"time"
)

// Message : Message Model
//
// Messages belong to exactly one user and are tagged with the owning event.
// They are only ever written through single INSERT statements and removed
// through filtered DELETEs, so concurrent senders can never clobber each
// other's rows.
type Message struct {
	ID        int64     `json:"id" bun:",pk,autoincrement"`
	Content   string    `json:"content" bun:",notnull" validate:"required"`
	UserID    int64     `json:"user_id" bun:",notnull"`
	User      *User     `json:"-" bun:"rel:belongs-to,join:user_id=id"`
	EventID   int64     `json:"event_id" bun:",notnull"`
	Event     *Event    `json:"-" bun:"rel:belongs-to,join:event_id=id"`
	CreatedAt time.Time `json:"created_at" bun:",nullzero,notnull,default:current_timestamp"`
}
