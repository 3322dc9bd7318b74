package dao

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mindcare-social/apps/mood-service/model"
)

type mongoDAO struct {
	db *mongo.Database
}

// NewMongoDAO 创建MongoDB DAO实例
func NewMongoDAO(db *mongo.Database) MoodDAO {
	return &mongoDAO{
		db: db,
	}
}

// UpsertEntry 按 (userID, date) 插入或覆盖当日记录
func (d *mongoDAO) UpsertEntry(ctx context.Context, entry *model.MoodEntry) error {
	collection := d.db.Collection(model.CollectionMoodEntries)

	filter := bson.M{
		"user_id": entry.UserID,
		"date":    entry.Date,
	}
	update := bson.M{
		"$set": bson.M{
			"mood_value":        entry.MoodValue,
			"notes":             entry.Notes,
			"emotions":          entry.Emotions,
			"triggers":          entry.Triggers,
			"coping_strategies": entry.CopingStrategies,
			"energy":            entry.Energy,
			"sleep":             entry.Sleep,
			"stress":            entry.Stress,
			"updated_at":        time.Now(),
		},
		"$setOnInsert": bson.M{
			"_id":        entry.ID,
			"user_id":    entry.UserID,
			"date":       entry.Date,
			"created_at": entry.CreatedAt,
		},
	}

	_, err := collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

// GetRecentEntries 按日期倒序返回最近的记录
func (d *mongoDAO) GetRecentEntries(ctx context.Context, userID string, limit int) ([]*model.MoodEntry, error) {
	collection := d.db.Collection(model.CollectionMoodEntries)

	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []*model.MoodEntry
	for cursor.Next(ctx) {
		var entry model.MoodEntry
		if err := cursor.Decode(&entry); err != nil {
			continue
		}
		entries = append(entries, &entry)
	}

	return entries, nil
}
