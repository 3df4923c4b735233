package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	adminapp "github.com/sngm3741/telecom-hire-backend/api/internal/admin/application"
	admindomain "github.com/sngm3741/telecom-hire-backend/api/internal/admin/domain"
)

// AdminSubmissionRepository は管理者向け応募集約を MongoDB 経由で扱うリポジトリ。
type AdminSubmissionRepository struct {
	submissions *mongo.Collection
}

// NewAdminSubmissionRepository は応募コレクションを束縛したリポジトリを生成する。
func NewAdminSubmissionRepository(db *mongo.Database, collection string) *AdminSubmissionRepository {
	return &AdminSubmissionRepository{submissions: db.Collection(collection)}
}

// buildFilter は Circle/State/キーワード条件を Mongo クエリへ変換する。
func buildFilter(filter adminapp.SubmissionFilter) bson.M {
	mongoFilter := bson.M{}
	if circle := strings.TrimSpace(filter.Circle); circle != "" {
		mongoFilter["circle"] = primitive.Regex{Pattern: "^" + regexp.QuoteMeta(circle) + "$", Options: "i"}
	}
	if state := strings.TrimSpace(filter.State); state != "" {
		mongoFilter["state"] = primitive.Regex{Pattern: "^" + regexp.QuoteMeta(state) + "$", Options: "i"}
	}
	if keyword := strings.TrimSpace(filter.Keyword); keyword != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(keyword), Options: "i"}
		mongoFilter["$or"] = bson.A{
			bson.M{"name": pattern},
			bson.M{"email_primary": pattern},
			bson.M{"district": pattern},
			bson.M{"designation": pattern},
		}
	}
	return mongoFilter
}

// Find は検索条件とページングを適用し、新しい応募から順に返す。
func (r *AdminSubmissionRepository) Find(ctx context.Context, filter adminapp.SubmissionFilter, paging adminapp.Paging) ([]admindomain.Submission, error) {
	findOpts := options.Find().SetSort(bson.D{{Key: "submitted_at", Value: -1}})
	if paging.Limit > 0 {
		findOpts.SetLimit(int64(paging.Limit))
		if paging.Page > 1 {
			findOpts.SetSkip(int64((paging.Page - 1) * paging.Limit))
		}
	}

	cursor, err := r.submissions.Find(ctx, buildFilter(filter), findOpts)
	if err != nil {
		return nil, adminStoreErr("find submissions", err)
	}
	defer cursor.Close(ctx)

	submissions := make([]admindomain.Submission, 0)
	for cursor.Next(ctx) {
		var doc SubmissionDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode submission: %w", err)
		}
		submissions = append(submissions, mapAdminSubmissionDocument(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, adminStoreErr("iterate submissions", err)
	}
	return submissions, nil
}

// Count は検索条件に一致する応募の総数を返す。
func (r *AdminSubmissionRepository) Count(ctx context.Context, filter adminapp.SubmissionFilter) (int64, error) {
	count, err := r.submissions.CountDocuments(ctx, buildFilter(filter))
	if err != nil {
		return 0, adminStoreErr("count submissions", err)
	}
	return count, nil
}

// FindByID は ObjectID hex または公開 Reference (UUID) のどちらでも単一応募を引ける。
func (r *AdminSubmissionRepository) FindByID(ctx context.Context, id string) (*admindomain.Submission, error) {
	id = strings.TrimSpace(id)

	query := bson.M{"reference": id}
	if objectID, err := primitive.ObjectIDFromHex(id); err == nil {
		query = bson.M{"_id": objectID}
	}

	var doc SubmissionDocument
	if err := r.submissions.FindOne(ctx, query).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, adminapp.ErrNotFound
		}
		return nil, adminStoreErr("find submission", err)
	}

	submission := mapAdminSubmissionDocument(doc)
	return &submission, nil
}

// Metrics は総数とサークル別件数を集計する。
func (r *AdminSubmissionRepository) Metrics(ctx context.Context) (*admindomain.Metrics, error) {
	total, err := r.submissions.CountDocuments(ctx, bson.D{})
	if err != nil {
		return nil, adminStoreErr("count submissions", err)
	}

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$circle", "count": bson.M{"$sum": 1}}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}, {Key: "_id", Value: 1}}}},
	}
	cursor, err := r.submissions.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, adminStoreErr("aggregate circles", err)
	}
	defer cursor.Close(ctx)

	metrics := &admindomain.Metrics{Total: total}
	for cursor.Next(ctx) {
		var row struct {
			Circle string `bson:"_id"`
			Count  int64  `bson:"count"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("decode circle count: %w", err)
		}
		metrics.Circles = append(metrics.Circles, admindomain.CircleCount{Circle: row.Circle, Count: row.Count})
	}
	if err := cursor.Err(); err != nil {
		return nil, adminStoreErr("iterate circle counts", err)
	}
	return metrics, nil
}

// adminStoreErr は接続障害を Admin コンテキストのセンチネルへ写像する。
func adminStoreErr(op string, err error) error {
	if isUnavailable(err) {
		return fmt.Errorf("%w: %v", adminapp.ErrStoreUnavailable, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
