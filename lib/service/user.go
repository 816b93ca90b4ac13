package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/labstack/gommon/random"
	"github.com/shivxnshxrma/mysterymessages/db/models"
	"github.com/shivxnshxrma/mysterymessages/lib/security"
	"github.com/uptrace/bun"
	passwordvalidator "github.com/wagslane/go-password-validator"
)

func (svc *MessagesService) CreateUser(ctx context.Context, username, email, password string) (user *models.User, err error) {
	if svc.Config.MinPasswordEntropy > 0 {
		entropy := passwordvalidator.GetEntropy(password)
		if entropy < float64(svc.Config.MinPasswordEntropy) {
			return nil, ErrWeakPassword
		}
	}

	user = &models.User{
		Username:          username,
		Email:             email,
		Password:          security.HashPassword(password),
		AcceptingMessages: true,
		VerifyCode:        random.String(6, random.Numeric),
		VerifyCodeExpiresAt: bun.NullTime{
			Time: time.Now().Add(time.Duration(svc.Config.VerifyCodeExpiry) * time.Second),
		},
	}
	if _, err := svc.DB.NewInsert().Model(user).Exec(ctx); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrAccountTaken
		}
		return nil, err
	}

	// code delivery is out of band, make it visible for operators
	svc.Logger.Infof("Verification code for %s: %s", user.Username, user.VerifyCode)
	return user, nil
}

func (svc *MessagesService) VerifyUser(ctx context.Context, username, code string) error {
	user, err := svc.FindUserByUsername(ctx, username)
	if err != nil {
		return err
	}
	if user.VerifyCode != code {
		return ErrIncorrectCode
	}
	if user.VerifyCodeExpiresAt.Time.Before(time.Now()) {
		return ErrExpiredCode
	}

	_, err = svc.DB.NewUpdate().Model((*models.User)(nil)).
		Set("verified = ?", true).
		Where("id = ?", user.ID).
		Exec(ctx)
	return err
}

func (svc *MessagesService) FindUser(ctx context.Context, userId int64) (*models.User, error) {
	var user models.User

	err := svc.DB.NewSelect().Model(&user).Where("id = ?", userId).Limit(1).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (svc *MessagesService) FindUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User

	err := svc.DB.NewSelect().Model(&user).Where("username = ?", username).Limit(1).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// UpdateAcceptingMessages flips the gate that ingestion checks. Only the
// owning user can change it.
func (svc *MessagesService) UpdateAcceptingMessages(ctx context.Context, userId int64, accepting bool) (*models.User, error) {
	user, err := svc.FindUser(ctx, userId)
	if err != nil {
		return nil, err
	}

	user.AcceptingMessages = accepting
	_, err = svc.DB.NewUpdate().Model(user).
		Column("accepting_messages", "updated_at").
		Where("id = ?", user.ID).
		Exec(ctx)
	if err != nil {
		return nil, err
	}
	return user, nil
}
