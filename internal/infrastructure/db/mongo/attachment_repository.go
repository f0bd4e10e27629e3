package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/teamhub/portal-api/internal/core/domain"
)

const collectionAttachments = "task_attachments"

// AttachmentRepository implements ports.AttachmentRepository using MongoDB.
type AttachmentRepository struct {
	col *mongo.Collection
}

func NewAttachmentRepository(db *mongo.Database) *AttachmentRepository {
	return &AttachmentRepository{col: db.Collection(collectionAttachments)}
}

type attachmentDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	TaskID      string             `bson:"task_id"`
	UploaderID  string             `bson:"uploader_id"`
	FileName    string             `bson:"file_name"`
	Description string             `bson:"description,omitempty"`
	SizeBytes   int64              `bson:"size_bytes"`
	UploadedAt  time.Time          `bson:"uploaded_at"`
}

func (r *AttachmentRepository) Create(ctx context.Context, attachment *domain.TaskAttachment) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := attachmentDoc{
		TaskID:      attachment.TaskID,
		UploaderID:  attachment.UploaderID,
		FileName:    attachment.FileName,
		Description: attachment.Description,
		SizeBytes:   attachment.SizeBytes,
		UploadedAt:  attachment.UploadedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("insert attachment: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		attachment.ID = oid.Hex()
	}
	return nil
}

// ListByTask returns the task's attachments, oldest upload first.
func (r *AttachmentRepository) ListByTask(ctx context.Context, taskID string) ([]*domain.TaskAttachment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "uploaded_at", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{"task_id": taskID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list attachments: %w", err)
	}
	defer cur.Close(ctx)

	var docs []attachmentDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode attachments: %w", err)
	}

	attachments := make([]*domain.TaskAttachment, 0, len(docs))
	for i := range docs {
		d := docs[i]
		attachments = append(attachments, &domain.TaskAttachment{
			ID:          d.ID.Hex(),
			TaskID:      d.TaskID,
			UploaderID:  d.UploaderID,
			FileName:    d.FileName,
			Description: d.Description,
			SizeBytes:   d.SizeBytes,
			UploadedAt:  d.UploadedAt.UTC(),
		})
	}
	return attachments, nil
}

// EnsureIndexes creates the task reference index.
func (r *AttachmentRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "task_id", Value: 1}, {Key: "uploaded_at", Value: 1}},
	})
	return err
}
