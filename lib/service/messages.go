package service

import (
	"context"

	"github.com/shivxnshxrma/mysterymessages/db/models"
)

// IngestMessage accepts an anonymous message for the user behind
// targetUsername. senderKey identifies the sender's network origin and is
// only used for rate limiting.
//
// The rate limit check always runs before any store access. A failure of the
// limiter itself is deliberately not surfaced: losing rate enforcement for a
// while is preferable to refusing messages while the limiter backend is down.
func (svc *MessagesService) IngestMessage(ctx context.Context, targetUsername, content string, eventId int64, senderKey string) (*models.Message, error) {
	allowed, err := svc.Limiter.Allow(ctx, senderKey)
	if err != nil {
		svc.Logger.Errorf("Rate limiter unavailable, failing open: %v", err)
		allowed = true
	}
	if !allowed {
		return nil, ErrRateLimited
	}

	user, err := svc.FindUserByUsername(ctx, targetUsername)
	if err != nil {
		return nil, err
	}
	if !user.AcceptingMessages {
		return nil, ErrNotAcceptingMessages
	}

	// the event must exist and belong to the target user, otherwise a sender
	// could inject messages into another user's event scope
	owned, err := svc.DB.NewSelect().Model((*models.Event)(nil)).
		Where("id = ? AND user_id = ?", eventId, user.ID).
		Exists(ctx)
	if err != nil {
		return nil, err
	}
	if !owned {
		return nil, ErrEventNotFound
	}

	message := &models.Message{
		Content: content,
		UserID:  user.ID,
		EventID: eventId,
	}
	// a single INSERT is the atomic append, concurrent senders cannot lose
	// each other's messages
	if _, err := svc.DB.NewInsert().Model(message).Exec(ctx); err != nil {
		return nil, err
	}

	svc.MessagePubSub.Publish(TopicMessageReceived, *message)
	return message, nil
}

// MessagesFor returns one page of the owner's messages for an event, newest
// first. Ties on created_at fall back to descending id, which follows
// insertion order. hasNextPage is computed from a count over the full
// filtered set, so pages past the end come back empty with hasNextPage false.
func (svc *MessagesService) MessagesFor(ctx context.Context, userId, eventId int64, page, pageSize int) (messages []models.Message, hasNextPage bool, err error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = svc.Config.DefaultPageSize
	}
	if pageSize > svc.Config.MaxPageSize {
		pageSize = svc.Config.MaxPageSize
	}

	total, err := svc.DB.NewSelect().Model((*models.Message)(nil)).
		Where("user_id = ? AND event_id = ?", userId, eventId).
		Count(ctx)
	if err != nil {
		return nil, false, err
	}

	messages = []models.Message{}
	err = svc.DB.NewSelect().Model(&messages).
		Where("user_id = ? AND event_id = ?", userId, eventId).
		OrderExpr("created_at DESC, id DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Scan(ctx)
	if err != nil {
		return nil, false, err
	}

	return messages, HasNextPage(page, pageSize, total), nil
}

func HasNextPage(page, pageSize, total int) bool {
	return page*pageSize < total
}
