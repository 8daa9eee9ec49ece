package models

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type EventRepo interface {
	ListEventsForHost(ctx context.Context, hostID string) ([]*Event, error)
	ListEventsForMember(ctx context.Context, hostID, userID string) ([]*Event, error)
	GetEventByHostAndID(ctx context.Context, hostID, eventID string) (*Event, error)
	CreateEvent(ctx context.Context, event *Event) error
	UpsertEvent(ctx context.Context, event *Event) error
}

func notDeletedFilter(hostID string) bson.M {
	return bson.M{
		"hostId": hostID,
		"status": bson.M{"$ne": string(StatusDeleted)},
	}
}

func (mdb *MongodbRepo) ListEventsForHost(ctx context.Context, hostID string) ([]*Event, error) {
	return mdb.findEvents(ctx, notDeletedFilter(hostID))
}

func (mdb *MongodbRepo) ListEventsForMember(ctx context.Context, hostID, userID string) ([]*Event, error) {
	filter := notDeletedFilter(hostID)
	filter["memberIds"] = userID
	return mdb.findEvents(ctx, filter)
}

func (mdb *MongodbRepo) findEvents(ctx context.Context, filter bson.M) ([]*Event, error) {
	col, err := mdb.GetCollection(ctx, mdb.eventsCol)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error finding events: %v", err)
	}
	defer cursor.Close(ctx)

	events := []*Event{}
	for cursor.Next(ctx) {
		var ev Event
		if err := cursor.Decode(&ev); err != nil {
			return nil, fmt.Errorf("error decoding event: %v", err)
		}
		events = append(events, &ev)
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %v", err)
	}

	return events, nil
}

// GetEventByHostAndID queries by host and event id rather than a point read,
// tolerating documents written with a missing or mismatched partition field.
func (mdb *MongodbRepo) GetEventByHostAndID(ctx context.Context, hostID, eventID string) (*Event, error) {
	col, err := mdb.GetCollection(ctx, mdb.eventsCol)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	var ev Event
	err = col.FindOne(ctx, bson.M{"hostId": hostID, "eventId": eventID}).Decode(&ev)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error finding event: %v", err)
	}

	return &ev, nil
}

func (mdb *MongodbRepo) CreateEvent(ctx context.Context, event *Event) error {
	col, err := mdb.GetCollection(ctx, mdb.eventsCol)
	if err != nil {
		return fmt.Errorf("error getting collection: %v", err)
	}

	if _, err := col.InsertOne(ctx, event); err != nil {
		return fmt.Errorf("error inserting event: %v", err)
	}
	return nil
}

func (mdb *MongodbRepo) UpsertEvent(ctx context.Context, event *Event) error {
	col, err := mdb.GetCollection(ctx, mdb.eventsCol)
	if err != nil {
		return fmt.Errorf("error getting collection: %v", err)
	}

	opts := options.Replace().SetUpsert(true)
	if _, err := col.ReplaceOne(ctx, bson.M{"_id": event.ID}, event, opts); err != nil {
		return fmt.Errorf("error upserting event: %v", err)
	}
	return nil
}
