package migrations

import (
	"context"

	"github.com/shivxnshxrma/mysterymessages/db/models"
	"github.com/uptrace/bun"
)

/* Since this init will reflect the latest model fields when run on fresh db
make sure that when you add/remove columns in subsequent migrations IfNotExists/IfExists is used
otherwise it's going to result in errors.
*/
func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {

		if _, err := db.NewCreateTable().Model((*models.User)(nil)).Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewCreateTable().Model((*models.Event)(nil)).
			ForeignKey(`("user_id") REFERENCES "users" ("id") ON DELETE CASCADE`).
			Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewCreateTable().Model((*models.Message)(nil)).
			ForeignKey(`("user_id") REFERENCES "users" ("id") ON DELETE CASCADE`).
			Exec(ctx); err != nil {
			return err
		}

		// one event name per owner
		if _, err := db.NewCreateIndex().Model((*models.Event)(nil)).
			Index("events_user_id_name_idx").
			Unique().
			Column("user_id", "name").
			Exec(ctx); err != nil {
			return err
		}
		// retrieval filters on (user_id, event_id) and sorts on created_at
		if _, err := db.NewCreateIndex().Model((*models.Message)(nil)).
			Index("messages_user_id_event_id_created_at_idx").
			Column("user_id", "event_id", "created_at").
			Exec(ctx); err != nil {
			return err
		}

		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		return nil
	})
}
