package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type NotificationRepo interface {
	InsertBatch(ctx context.Context, docs []*Notification) error
	GetListByRecipient(ctx context.Context, userID uint64, limit, offset int64) ([]*Notification, error)
	GetUnreadCount(ctx context.Context, userID uint64) (int64, error)
	MarkAsRead(ctx context.Context, userID uint64, id primitive.ObjectID) error
	MarkAllAsRead(ctx context.Context, userID uint64) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*Notification, error)
}

type notificationRepoImpl struct {
	col *mongo.Collection
}

func NewNotificationRepo(db *mongo.Database) NotificationRepo {
	return &notificationRepoImpl{
		col: db.Collection("notifications"),
	}
}

// ensureNotificationIndexes (job_id, recipient_id) 唯一索引是任务重投时避免重复落库的幂等键
func ensureNotificationIndexes(ctx context.Context, db *mongo.Database) error {
	col := db.Collection("notifications")
	_, err := col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "job_id", Value: 1},
				{Key: "recipient_id", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{
				{Key: "recipient_id", Value: 1},
				{Key: "created_at", Value: -1},
			},
		},
	})
	return err
}

// InsertBatch 一次事件扇出的批量写入
// 乱序写入，重复键错误视为该收件人已在上一次投递中落库，直接吞掉
func (s *notificationRepoImpl) InsertBatch(ctx context.Context, docs []*Notification) error {
	if len(docs) == 0 {
		return nil
	}

	items := make([]interface{}, 0, len(docs))
	for _, d := range docs {
		items = append(items, d)
	}

	_, err := s.col.InsertMany(ctx, items, options.InsertMany().SetOrdered(false))
	if err == nil {
		return nil
	}

	var bwe mongo.BulkWriteException
	if errors.As(err, &bwe) {
		for _, we := range bwe.WriteErrors {
			if we.Code != 11000 {
				return err
			}
		}
		return nil
	}
	return err
}

// GetListByRecipient 分页获取用户的通知列表 (按时间倒序)
func (s *notificationRepoImpl) GetListByRecipient(ctx context.Context, userID uint64, limit, offset int64) ([]*Notification, error) {
	filter := bson.M{"recipient_id": userID}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit).
		SetSkip(offset)

	cursor, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var list []*Notification
	if err = cursor.All(ctx, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// GetUnreadCount 获取用户的未读通知总数
func (s *notificationRepoImpl) GetUnreadCount(ctx context.Context, userID uint64) (int64, error) {
	filter := bson.M{"recipient_id": userID, "is_read": false}
	return s.col.CountDocuments(ctx, filter)
}

// MarkAsRead 标记单条通知为已读
// 过滤条件带 recipient_id，非本人调用不会改到任何记录
func (s *notificationRepoImpl) MarkAsRead(ctx context.Context, userID uint64, id primitive.ObjectID) error {
	filter := bson.M{"_id": id, "recipient_id": userID}
	update := bson.M{"$set": bson.M{"is_read": true}}
	_, err := s.col.UpdateOne(ctx, filter, update)
	return err
}

// MarkAllAsRead 一键清除未读
func (s *notificationRepoImpl) MarkAllAsRead(ctx context.Context, userID uint64) error {
	filter := bson.M{"recipient_id": userID, "is_read": false}
	update := bson.M{"$set": bson.M{"is_read": true}}
	_, err := s.col.UpdateMany(ctx, filter, update)
	return err
}

// GetByID 根据 ID 获取通知
func (s *notificationRepoImpl) GetByID(ctx context.Context, id primitive.ObjectID) (*Notification, error) {
	var msg Notification
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&msg)
	if err != nil {
		return nil, err
	}
	return &msg, nil
}
