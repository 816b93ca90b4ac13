package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/shivxnshxrma/mysterymessages/db/models"
	"github.com/uptrace/bun"
)

func (svc *MessagesService) CreateEvent(ctx context.Context, userId int64, name string) (*models.Event, error) {
	event := &models.Event{
		Name:   name,
		UserID: userId,
	}
	// the unique (user_id, name) index decides duplicates, so two concurrent
	// creates with the same name cannot both succeed
	if _, err := svc.DB.NewInsert().Model(event).Exec(ctx); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEventNameTaken
		}
		return nil, err
	}
	return event, nil
}

func (svc *MessagesService) EventsFor(ctx context.Context, userId int64) ([]models.Event, error) {
	events := []models.Event{}
	err := svc.DB.NewSelect().Model(&events).
		Where("user_id = ?", userId).
		OrderExpr("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return events, nil
}

// FindEvent loads an event together with its owner, for the public
// event details lookup.
func (svc *MessagesService) FindEvent(ctx context.Context, eventId int64) (*models.Event, error) {
	var event models.Event

	err := svc.DB.NewSelect().Model(&event).
		Relation("User").
		Where("event.id = ?", eventId).
		Limit(1).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return &event, nil
}

// DeleteEvent removes the owner's messages tagged with the event and then the
// event itself, in one transaction. A missing event and an event owned by
// somebody else both come back as ErrEventNotFound so callers cannot
// enumerate other users' event ids. Retrying a half-applied delete is harmless:
// both statements are no-ops once their rows are gone.
func (svc *MessagesService) DeleteEvent(ctx context.Context, userId, eventId int64) error {
	return svc.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().Model((*models.Message)(nil)).
			Where("user_id = ? AND event_id = ?", userId, eventId).
			Exec(ctx); err != nil {
			return err
		}

		res, err := tx.NewDelete().Model((*models.Event)(nil)).
			Where("id = ? AND user_id = ?", eventId, userId).
			Exec(ctx)
		if err != nil {
			return err
		}
		deleted, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if deleted == 0 {
			return ErrEventNotFound
		}
		return nil
	})
}
