package models

import (
	"time"
)

// Event : Event Model
//
// An event is a named inbox scope owned by a single user. The (owner, name)
// pair is unique, which is enforced with a composite index in the migrations.
type Event struct {
	ID        int64     `json:"id" bun:",pk,autoincrement"`
	Name      string    `json:"name" bun:",notnull" validate:"required,min=3,max=50"`
	UserID    int64     `json:"user_id" bun:",notnull"`
	User      *User     `json:"-" bun:"rel:belongs-to,join:user_id=id"`
	CreatedAt time.Time `json:"created_at" bun:",nullzero,notnull,default:current_timestamp"`
}
