package mongodb

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"time"

	"github.com/emporia-hr/emporia-backend-go/internal/domain/audit"
	"github.com/emporia-hr/emporia-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const auditCollection = "audit_logs"

type auditDocument struct {
	ID          string    `bson:"_id"`
	Action      string    `bson:"action"`
	PerformedBy *string   `bson:"performed_by,omitempty"`
	Description string    `bson:"description"`
	TargetModel string    `bson:"target_model,omitempty"`
	TargetID    string    `bson:"target_id,omitempty"`
	Metadata    bson.Raw  `bson:"metadata,omitempty"`
	IPAddress   string    `bson:"ip_address,omitempty"`
	CreatedAt   time.Time `bson:"created_at"`
}

type auditRepositoryImpl struct {
	logs *mongo.Collection
}

// NewAuditRepository prepares the audit_logs collection and its indexes.
func NewAuditRepository(ctx context.Context, db *database.MongoDB) (audit.Repository, error) {
	logs := db.Collection(auditCollection)

	if _, err := logs.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "performed_by", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "action", Value: 1}}},
	}); err != nil {
		return nil, fmt.Errorf("create audit_logs indexes: %w", err)
	}

	return &auditRepositoryImpl{logs: logs}, nil
}

func toDocument(log audit.AuditLog) (auditDocument, error) {
	doc := auditDocument{
		ID:          log.ID,
		Action:      log.Action,
		PerformedBy: log.PerformedBy,
		Description: log.Description,
		TargetModel: log.TargetModel,
		TargetID:    log.TargetID,
		IPAddress:   log.IPAddress,
		CreatedAt:   log.CreatedAt,
	}
	if doc.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return auditDocument{}, fmt.Errorf("generate audit id: %w", err)
		}
		doc.ID = id.String()
	}
	if len(log.Metadata) > 0 {
		var metadata bson.Raw
		if err := bson.UnmarshalExtJSON(log.Metadata, false, &metadata); err != nil {
			// Non-object metadata is kept verbatim under a single key.
			wrapped, mErr := bson.Marshal(bson.M{"value": string(log.Metadata)})
			if mErr != nil {
				return auditDocument{}, fmt.Errorf("encode audit metadata: %w", mErr)
			}
			metadata = wrapped
		}
		doc.Metadata = metadata
	}
	return doc, nil
}

func (d auditDocument) toAuditLog() audit.AuditLog {
	log := audit.AuditLog{
		ID:          d.ID,
		Action:      d.Action,
		PerformedBy: d.PerformedBy,
		Description: d.Description,
		TargetModel: d.TargetModel,
		TargetID:    d.TargetID,
		IPAddress:   d.IPAddress,
		CreatedAt:   d.CreatedAt,
	}
	if len(d.Metadata) > 0 {
		if raw, err := bson.MarshalExtJSON(d.Metadata, false, false); err == nil {
			log.Metadata = json.RawMessage(raw)
		}
	}
	return log
}

func (r *auditRepositoryImpl) Create(ctx context.Context, log audit.AuditLog) error {
	doc, err := toDocument(log)
	if err != nil {
		return err
	}
	if _, err := r.logs.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}
	return nil
}

func (r *auditRepositoryImpl) List(ctx context.Context, filter audit.ListFilter) ([]audit.AuditLog, int64, error) {
	query := bson.M{}
	if filter.Action != "" {
		query["action"] = bson.M{"$regex": regexp.QuoteMeta(filter.Action), "$options": "i"}
	}
	if filter.PerformedBy != "" {
		query["performed_by"] = filter.PerformedBy
	}
	if filter.StartDate != nil || filter.EndDate != nil {
		createdAt := bson.M{}
		if filter.StartDate != nil {
			createdAt["$gte"] = *filter.StartDate
		}
		if filter.EndDate != nil {
			createdAt["$lte"] = *filter.EndDate
		}
		query["created_at"] = createdAt
	}

	total, err := r.logs.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count audit logs: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64(filter.Offset)).
		SetLimit(int64(filter.Limit))

	logs, err := r.find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}

func (r *auditRepositoryImpl) Count(ctx context.Context) (int64, error) {
	total, err := r.logs.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count audit logs: %w", err)
	}
	return total, nil
}

func (r *auditRepositoryImpl) TopActions(ctx context.Context, limit int) ([]audit.ActionCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$action"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}, {Key: "_id", Value: 1}}}},
		{{Key: "$limit", Value: limit}},
	}

	cursor, err := r.logs.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate audit actions: %w", err)
	}

	var rows []struct {
		Action string `bson:"_id"`
		Count  int64  `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode audit actions: %w", err)
	}

	counts := make([]audit.ActionCount, 0, len(rows))
	for _, row := range rows {
		counts = append(counts, audit.ActionCount{Action: row.Action, Count: row.Count})
	}
	return counts, nil
}

func (r *auditRepositoryImpl) Recent(ctx context.Context, limit int) ([]audit.AuditLog, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))
	return r.find(ctx, bson.M{}, opts)
}

func (r *auditRepositoryImpl) find(ctx context.Context, query bson.M, opts *options.FindOptionsBuilder) ([]audit.AuditLog, error) {
	cursor, err := r.logs.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("find audit logs: %w", err)
	}

	var docs []auditDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode audit logs: %w", err)
	}

	logs := make([]audit.AuditLog, 0, len(docs))
	for _, d := range docs {
		logs = append(logs, d.toAuditLog())
	}
	return logs, nil
}
