package service

import (
	"context"

	"github.com/shivxnshxrma/mysterymessages/db/models"
	"github.com/shivxnshxrma/mysterymessages/lib/limiter"
	"github.com/shivxnshxrma/mysterymessages/lib/security"
	"github.com/shivxnshxrma/mysterymessages/lib/tokens"
	"github.com/uptrace/bun"
	"github.com/ziflex/lecho/v3"
)

type MessagesService struct {
	Config        *Config
	DB            *bun.DB
	Logger        *lecho.Logger
	Limiter       limiter.Limiter
	MessagePubSub *Pubsub
}

func (svc *MessagesService) GenerateToken(ctx context.Context, login, password, inRefreshToken string) (accessToken, refreshToken string, err error) {
	var user models.User

	switch {
	case login != "" || password != "":
		{
			// login can be a username or an email address
			if err := svc.DB.NewSelect().Model(&user).
				Where("username = ? OR email = ?", login, login).
				Limit(1).Scan(ctx); err != nil {
				return "", "", ErrBadAuth
			}
			if !security.VerifyPassword(user.Password, password) {
				return "", "", ErrBadAuth
			}
		}
	case inRefreshToken != "":
		{
			userId, err := tokens.ParseRefreshToken(svc.Config.JWTSecret, inRefreshToken)
			if err != nil {
				return "", "", ErrBadAuth
			}
			if err := svc.DB.NewSelect().Model(&user).Where("id = ?", userId).Limit(1).Scan(ctx); err != nil {
				return "", "", ErrBadAuth
			}
		}
	default:
		{
			return "", "", ErrBadAuth
		}
	}

	if !user.Verified {
		return "", "", ErrNotVerified
	}

	accessToken, err = tokens.GenerateAccessToken(svc.Config.JWTSecret, svc.Config.JWTAccessTokenExpiry, &user)
	if err != nil {
		return "", "", err
	}

	refreshToken, err = tokens.GenerateRefreshToken(svc.Config.JWTSecret, svc.Config.JWTRefreshTokenExpiry, &user)
	if err != nil {
		return "", "", err
	}
	return accessToken, refreshToken, nil
}
