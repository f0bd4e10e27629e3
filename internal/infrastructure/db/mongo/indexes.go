package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
)

// EnsureIndexes creates every collection's indexes. Called once at startup;
// CreateIndexes is idempotent so restarts are safe.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	roles := NewRoleRepository(db)

	for _, ensure := range []func(context.Context) error{
		NewUserRepository(db, roles).EnsureIndexes,
		roles.EnsureIndexes,
		NewPermissionRepository(db).EnsureIndexes,
		NewTaskRepository(db).EnsureIndexes,
		NewCommentRepository(db).EnsureIndexes,
		NewAttachmentRepository(db).EnsureIndexes,
		NewNotificationRepository(db).EnsureIndexes,
		NewDepartmentRepository(db).EnsureIndexes,
	} {
		if err := ensure(ctx); err != nil {
			return err
		}
	}
	return nil
}
