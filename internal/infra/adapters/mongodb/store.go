package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/lojavirtual/api/internal/core/ports"
)

// Store is a ports.Store backed by a MongoDB database. The driver owns
// pooling, retries and timeouts; one Store wraps one database.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect dials the deployment and pings it, so a bad URI fails at startup
// instead of on the first request.
func Connect(ctx context.Context, uri, database string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongodb: connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("mongodb: ping: %w", err)
	}
	return &Store{client: client, db: client.Database(database)}, nil
}

func (s *Store) Collection(name string) ports.Collection {
	return &collection{col: s.db.Collection(name)}
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

type collection struct {
	col *mongo.Collection
}

func (c *collection) Add(ctx context.Context, doc ports.Document) (string, error) {
	res, err := c.col.InsertOne(ctx, bson.M(doc))
	if err != nil {
		return "", err
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("mongodb: unexpected inserted id type %T", res.InsertedID)
	}
	return oid.Hex(), nil
}

func (c *collection) All(ctx context.Context) ([]ports.Document, error) {
	return c.find(ctx)
}

func (c *collection) AllByDescending(ctx context.Context, field string) ([]ports.Document, error) {
	return c.find(ctx, options.Find().SetSort(bson.D{{Key: field, Value: -1}}))
}

func (c *collection) find(ctx context.Context, opts ...*options.FindOptions) ([]ports.Document, error) {
	cur, err := c.col.Find(ctx, bson.D{}, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	docs := make([]ports.Document, 0)
	for cur.Next(ctx) {
		var raw bson.M
		if err := cur.Decode(&raw); err != nil {
			return nil, err
		}
		docs = append(docs, fromBSON(raw))
	}
	return docs, cur.Err()
}

func (c *collection) Get(ctx context.Context, id string) (ports.Document, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ports.ErrNotFound
	}

	var raw bson.M
	err = c.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&raw)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ports.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return fromBSON(raw), nil
}

func (c *collection) Set(ctx context.Context, id string, fields ports.Document) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ports.ErrNotFound
	}

	res, err := c.col.UpdateByID(ctx, oid, bson.M{"$set": bson.M(fields)})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func (c *collection) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ports.ErrNotFound
	}

	res, err := c.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ports.ErrNotFound
	}
	return nil
}

// fromBSON flattens driver types into plain Go values so documents encode to
// JSON the way they were written: the ObjectID becomes the "id" hex string
// and DateTimes become time.Time.
func fromBSON(raw bson.M) ports.Document {
	doc := make(ports.Document, len(raw))
	for k, v := range raw {
		if k == "_id" {
			if oid, ok := v.(primitive.ObjectID); ok {
				doc["id"] = oid.Hex()
				continue
			}
		}
		doc[k] = fromBSONValue(v)
	}
	return doc
}

func fromBSONValue(v any) any {
	switch tv := v.(type) {
	case primitive.DateTime:
		return tv.Time().UTC()
	case primitive.ObjectID:
		return tv.Hex()
	case primitive.Decimal128:
		return tv.String()
	case primitive.A:
		out := make([]any, len(tv))
		for i, e := range tv {
			out[i] = fromBSONValue(e)
		}
		return out
	case bson.M:
		out := make(map[string]any, len(tv))
		for k, e := range tv {
			out[k] = fromBSONValue(e)
		}
		return out
	default:
		return v
	}
}
