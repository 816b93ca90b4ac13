package models

import (
	"context"
	"time"

	"github.com/uptrace/bun"
)

// User : User Model
type User struct {
	ID                  int64        `json:"id" bun:",pk,autoincrement"`
	Username            string       `json:"username" bun:",notnull,unique" validate:"required"`
	Email               string       `json:"email" bun:",notnull,unique" validate:"required,email"`
	Password            string       `json:"-" bun:",notnull"`
	VerifyCode          string       `json:"-" bun:",nullzero"`
	VerifyCodeExpiresAt bun.NullTime `json:"-" bun:",nullzero"`
	Verified            bool         `json:"verified" bun:",nullzero"`
	AcceptingMessages   bool         `json:"accepting_messages" bun:",notnull,default:true"`
	CreatedAt           time.Time    `json:"created_at" bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt           bun.NullTime `json:"updated_at"`
}

func (u *User) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	switch query.(type) {
	case *bun.UpdateQuery:
		u.UpdatedAt = bun.NullTime{Time: time.Now()}
	}
	return nil
}

var _ bun.BeforeAppendModelHook = (*User)(nil)
