package mongo

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/teamhub/portal-api/internal/core/access"
	"github.com/teamhub/portal-api/internal/core/domain"
	"github.com/teamhub/portal-api/internal/core/ports"
)

const collectionTasks = "tasks"

// TaskRepository implements ports.TaskRepository using MongoDB.
type TaskRepository struct {
	col *mongo.Collection
}

func NewTaskRepository(db *mongo.Database) *TaskRepository {
	return &TaskRepository{col: db.Collection(collectionTasks)}
}

type taskDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Title        string             `bson:"title"`
	Description  string             `bson:"description,omitempty"`
	Status       string             `bson:"status"`
	Priority     string             `bson:"priority"`
	Progress     int                `bson:"progress"`
	CreatorID    string             `bson:"creator_id"`
	AssigneeID   string             `bson:"assignee_id,omitempty"`
	DepartmentID string             `bson:"department_id,omitempty"`
	DueDate      *time.Time         `bson:"due_date,omitempty"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

func toTaskDoc(t *domain.Task) taskDoc {
	return taskDoc{
		Title:        t.Title,
		Description:  t.Description,
		Status:       string(t.Status),
		Priority:     string(t.Priority),
		Progress:     t.Progress,
		CreatorID:    t.CreatorID,
		AssigneeID:   t.AssigneeID,
		DepartmentID: t.DepartmentID,
		DueDate:      t.DueDate,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

func (d *taskDoc) toDomain() *domain.Task {
	return &domain.Task{
		ID:           d.ID.Hex(),
		Title:        d.Title,
		Description:  d.Description,
		Status:       domain.TaskStatus(d.Status),
		Priority:     domain.TaskPriority(d.Priority),
		Progress:     d.Progress,
		CreatorID:    d.CreatorID,
		AssigneeID:   d.AssigneeID,
		DepartmentID: d.DepartmentID,
		DueDate:      d.DueDate,
		CreatedAt:    d.CreatedAt.UTC(),
		UpdatedAt:    d.UpdatedAt.UTC(),
	}
}

// visibilityToBson translates the access predicate into a Mongo filter.
// The match-none case must be handled by the caller before building a query.
func visibilityToBson(v access.TaskFilter) bson.M {
	if v.All {
		return bson.M{}
	}
	return bson.M{"$or": bson.A{
		bson.M{"creator_id": v.UserID},
		bson.M{"assignee_id": v.UserID},
	}}
}

// Create inserts a new task document and fills in the generated ID.
func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, toTaskDoc(task))
	if err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		task.ID = oid.Hex()
	}
	return nil
}

func (r *TaskRepository) FindByID(ctx context.Context, id string) (*domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrTaskNotFound
	}

	var doc taskDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("find task: %w", err)
	}
	return doc.toDomain(), nil
}

// Update replaces the mutable fields of an existing task. The creator
// reference is immutable and deliberately excluded from the update.
func (r *TaskRepository) Update(ctx context.Context, task *domain.Task) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(task.ID)
	if err != nil {
		return domain.ErrTaskNotFound
	}

	update := bson.M{"$set": bson.M{
		"title":         task.Title,
		"description":   task.Description,
		"status":        string(task.Status),
		"priority":      string(task.Priority),
		"progress":      task.Progress,
		"assignee_id":   task.AssigneeID,
		"department_id": task.DepartmentID,
		"due_date":      task.DueDate,
		"updated_at":    task.UpdatedAt,
	}}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

// List returns a page of tasks matching filter and the total count.
func (r *TaskRepository) List(ctx context.Context, f ports.ListTasksFilter) ([]*domain.Task, int64, error) {
	if f.Visibility.None {
		return []*domain.Task{}, 0, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := visibilityToBson(f.Visibility)
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.DepartmentID != "" {
		filter["department_id"] = f.DepartmentID
	}
	if f.Search != "" {
		filter["title"] = bson.M{"$regex": regexp.QuoteMeta(f.Search), "$options": "i"}
	}

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count tasks: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((f.Page - 1) * f.Limit)).
		SetLimit(int64(f.Limit))

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list tasks: %w", err)
	}
	defer cur.Close(ctx)

	var docs []taskDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("decode tasks: %w", err)
	}

	tasks := make([]*domain.Task, 0, len(docs))
	for i := range docs {
		tasks = append(tasks, docs[i].toDomain())
	}
	return tasks, total, nil
}

// CountByStatus groups the visible tasks by status.
func (r *TaskRepository) CountByStatus(ctx context.Context, visibility access.TaskFilter) ([]ports.StatusCount, error) {
	if visibility.None {
		return []ports.StatusCount{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: visibilityToBson(visibility)}},
		{{Key: "$group", Value: bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("count by status: %w", err)
	}
	defer cur.Close(ctx)

	var rows []struct {
		Status string `bson:"_id"`
		Count  int64  `bson:"count"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode status counts: %w", err)
	}

	counts := make([]ports.StatusCount, 0, len(rows))
	for _, row := range rows {
		counts = append(counts, ports.StatusCount{Status: row.Status, Count: row.Count})
	}
	return counts, nil
}

// CountOpenByDepartment counts open (NEW/ASSIGNED/IN_PROGRESS) tasks per
// department within the visible set. Tasks without a department are skipped.
func (r *TaskRepository) CountOpenByDepartment(ctx context.Context, visibility access.TaskFilter) ([]ports.DepartmentCount, error) {
	if visibility.None {
		return []ports.DepartmentCount{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	match := visibilityToBson(visibility)
	match["status"] = bson.M{"$in": bson.A{
		string(domain.StatusNew), string(domain.StatusAssigned), string(domain.StatusInProgress),
	}}
	match["department_id"] = bson.M{"$nin": bson.A{nil, ""}}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{"_id": "$department_id", "count": bson.M{"$sum": 1}}}},
		{{Key: "$sort", Value: bson.M{"count": -1}}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("count by department: %w", err)
	}
	defer cur.Close(ctx)

	var rows []struct {
		DepartmentID string `bson:"_id"`
		Count        int64  `bson:"count"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode department counts: %w", err)
	}

	counts := make([]ports.DepartmentCount, 0, len(rows))
	for _, row := range rows {
		counts = append(counts, ports.DepartmentCount{DepartmentID: row.DepartmentID, Count: row.Count})
	}
	return counts, nil
}

// EnsureIndexes creates the task query indexes.
func (r *TaskRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "creator_id", Value: 1}}},
		{Keys: bson.D{{Key: "assignee_id", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "department_id", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
