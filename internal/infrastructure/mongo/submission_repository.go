package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sngm3741/telecom-hire-backend/api/internal/public/application"
	"github.com/sngm3741/telecom-hire-backend/api/internal/public/domain"
)

// SubmissionRepository はパブリック向け応募集約を MongoDB で扱う実装リポジトリ。
type SubmissionRepository struct {
	submissions *mongo.Collection
}

// NewSubmissionRepository は応募コレクションを束縛したリポジトリを構築する。
func NewSubmissionRepository(db *mongo.Database, collection string) *SubmissionRepository {
	return &SubmissionRepository{submissions: db.Collection(collection)}
}

// EnsureIndexes creates the unique index on email_primary.
// インデックスが既に存在する場合、ドライバは同一定義なら成功として扱う。
func (r *SubmissionRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.submissions.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email_primary", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create email_primary index: %w", err)
	}
	return nil
}

// Insert は応募を 1 件永続化し、採番された ObjectID をドメインモデルへ反映する。
// 重複メールと接続障害はアプリケーション層のセンチネルエラーへ写像する。
func (r *SubmissionRepository) Insert(ctx context.Context, submission *domain.Submission) error {
	doc := newSubmissionDocument(*submission)

	if _, err := r.submissions.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return application.ErrDuplicateEmail
		}
		if isUnavailable(err) {
			return fmt.Errorf("%w: %v", application.ErrStoreUnavailable, err)
		}
		return fmt.Errorf("insert submission: %w", err)
	}

	submission.ID = doc.ID.Hex()
	return nil
}

// Sample returns up to limit submissions in the store's natural order.
func (r *SubmissionRepository) Sample(ctx context.Context, limit int) ([]domain.Submission, error) {
	findOpts := options.Find().SetLimit(int64(limit))

	cursor, err := r.submissions.Find(ctx, bson.D{}, findOpts)
	if err != nil {
		if isUnavailable(err) {
			return nil, fmt.Errorf("%w: %v", application.ErrStoreUnavailable, err)
		}
		return nil, fmt.Errorf("sample submissions: %w", err)
	}
	defer cursor.Close(ctx)

	submissions := make([]domain.Submission, 0, limit)
	for cursor.Next(ctx) {
		var doc SubmissionDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode submission: %w", err)
		}
		submissions = append(submissions, mapSubmissionDocument(doc))
	}
	if err := cursor.Err(); err != nil {
		if isUnavailable(err) {
			return nil, fmt.Errorf("%w: %v", application.ErrStoreUnavailable, err)
		}
		return nil, err
	}
	return submissions, nil
}

// isUnavailable はドライバのエラーを StoreUnavailable とみなすか判定する。
// サーバー選択タイムアウトは mongo.IsTimeout が拾う。
func isUnavailable(err error) bool {
	if err == nil {
		return false
	}
	return mongo.IsTimeout(err) ||
		mongo.IsNetworkError(err) ||
		errors.Is(err, mongo.ErrClientDisconnected) ||
		errors.Is(err, context.DeadlineExceeded)
}
