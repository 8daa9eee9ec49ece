package models

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MediaRepo interface {
	ListMediaForEvent(ctx context.Context, hostID, eventID string) ([]*Media, error)
	GetMediaByID(ctx context.Context, hostID, eventID, mediaID string) (*Media, error)
	CreateMedia(ctx context.Context, media *Media) error
	UpsertMedia(ctx context.Context, media *Media) error
}

func (mdb *MongodbRepo) ListMediaForEvent(ctx context.Context, hostID, eventID string) ([]*Media, error) {
	col, err := mdb.GetCollection(ctx, mdb.mediaCol)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	filter := bson.M{
		"hostId":  hostID,
		"eventId": eventID,
		"status":  bson.M{"$ne": string(StatusDeleted)},
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error finding media: %v", err)
	}
	defer cursor.Close(ctx)

	items := []*Media{}
	for cursor.Next(ctx) {
		var m Media
		if err := cursor.Decode(&m); err != nil {
			return nil, fmt.Errorf("error decoding media: %v", err)
		}
		items = append(items, &m)
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %v", err)
	}

	return items, nil
}

func (mdb *MongodbRepo) GetMediaByID(ctx context.Context, hostID, eventID, mediaID string) (*Media, error) {
	col, err := mdb.GetCollection(ctx, mdb.mediaCol)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	filter := bson.M{"hostId": hostID, "eventId": eventID, "mediaId": mediaID}

	var m Media
	err = col.FindOne(ctx, filter).Decode(&m)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error finding media: %v", err)
	}

	return &m, nil
}

func (mdb *MongodbRepo) CreateMedia(ctx context.Context, media *Media) error {
	col, err := mdb.GetCollection(ctx, mdb.mediaCol)
	if err != nil {
		return fmt.Errorf("error getting collection: %v", err)
	}

	if _, err := col.InsertOne(ctx, media); err != nil {
		return fmt.Errorf("error inserting media: %v", err)
	}
	return nil
}

func (mdb *MongodbRepo) UpsertMedia(ctx context.Context, media *Media) error {
	col, err := mdb.GetCollection(ctx, mdb.mediaCol)
	if err != nil {
		return fmt.Errorf("error getting collection: %v", err)
	}

	opts := options.Replace().SetUpsert(true)
	if _, err := col.ReplaceOne(ctx, bson.M{"_id": media.ID}, media, opts); err != nil {
		return fmt.Errorf("error upserting media: %v", err)
	}
	return nil
}
