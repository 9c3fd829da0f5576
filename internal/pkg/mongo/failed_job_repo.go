package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type FailedJobRepo interface {
	Insert(ctx context.Context, job *FailedJob) error
	GetList(ctx context.Context, limit, offset int64) ([]*FailedJob, error)
	TrimToNewest(ctx context.Context, keep int64) (int64, error)
}

type failedJobRepoImpl struct {
	col *mongo.Collection
}

func NewFailedJobRepo(db *mongo.Database) FailedJobRepo {
	return &failedJobRepoImpl{
		col: db.Collection("notification_failed_jobs"),
	}
}

// Insert 记录一条死信
func (s *failedJobRepoImpl) Insert(ctx context.Context, job *FailedJob) error {
	_, err := s.col.InsertOne(ctx, job)
	return err
}

// GetList 按失败时间倒序分页，供运维侧接口查询
func (s *failedJobRepoImpl) GetList(ctx context.Context, limit, offset int64) ([]*FailedJob, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "failed_at", Value: -1}}).
		SetLimit(limit).
		SetSkip(offset)

	cursor, err := s.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var list []*FailedJob
	if err = cursor.All(ctx, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// TrimToNewest 只保留最近 keep 条死信，返回删除数量
func (s *failedJobRepoImpl) TrimToNewest(ctx context.Context, keep int64) (int64, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "failed_at", Value: -1}}).
		SetSkip(keep).
		SetProjection(bson.M{"_id": 1})

	cursor, err := s.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var stale []struct {
		ID interface{} `bson:"_id"`
	}
	if err = cursor.All(ctx, &stale); err != nil {
		return 0, err
	}
	if len(stale) == 0 {
		return 0, nil
	}

	ids := make([]interface{}, 0, len(stale))
	for _, doc := range stale {
		ids = append(ids, doc.ID)
	}

	res, err := s.col.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
