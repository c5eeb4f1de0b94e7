package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dmitrymomot/flagkit/pkg/feature"
)

// DefaultCollection is the collection flags are read from when Config.Collection is empty.
const DefaultCollection = "features"

// Collection is the subset of *mongo.Collection the flag source reads through.
type Collection interface {
	FindOne(ctx context.Context, filter any, opts ...options.Lister[options.FindOneOptions]) *mongo.SingleResult
	Find(ctx context.Context, filter any, opts ...options.Lister[options.FindOptions]) (*mongo.Cursor, error)
}

// document is the stored shape of a flag: {key, value, description}.
type document struct {
	Key         string        `bson:"key"`
	Value       bson.RawValue `bson:"value"`
	Description string        `bson:"description,omitempty"`
}

// Source reads flags from a MongoDB collection. It implements feature.DataSource.
type Source struct {
	coll Collection
}

// NewSource creates a flag source over coll. A unique index on "key" is expected.
func NewSource(coll Collection) *Source {
	return &Source{coll: coll}
}

// Get loads the flag stored under key. A missing document is a miss.
func (s *Source) Get(ctx context.Context, key string) (feature.Record, bool, error) {
	var doc document
	err := s.coll.FindOne(ctx, bson.D{{Key: "key", Value: key}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return feature.Record{}, false, nil
	}
	if err != nil {
		return feature.Record{}, false, err
	}

	rec, err := doc.record()
	if err != nil {
		return feature.Record{}, false, err
	}
	return rec, true, nil
}

// GetAll loads every flag ordered by key.
func (s *Source) GetAll(ctx context.Context) ([]feature.Record, error) {
	cur, err := s.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "key", Value: 1}}))
	if err != nil {
		return nil, err
	}

	var docs []document
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	records := make([]feature.Record, 0, len(docs))
	for _, doc := range docs {
		rec, err := doc.record()
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func (d document) record() (feature.Record, error) {
	if d.Key == "" {
		return feature.Record{}, errors.Join(feature.ErrInvalidRecord, errors.New("flag document has no key"))
	}
	v, err := decodeValue(d.Value)
	if err != nil {
		return feature.Record{}, fmt.Errorf("flag %q: %w", d.Key, err)
	}
	return feature.Record{Key: d.Key, Value: v, Description: d.Description}, nil
}

// decodeValue maps a BSON scalar onto a flag value. A missing field reads as null.
func decodeValue(rv bson.RawValue) (feature.Value, error) {
	switch rv.Type {
	case 0, bson.TypeNull, bson.TypeUndefined:
		return feature.NullValue(), nil
	case bson.TypeBoolean:
		return feature.BoolValue(rv.Boolean()), nil
	case bson.TypeDouble:
		return feature.NumberValue(rv.Double()), nil
	case bson.TypeInt32:
		return feature.NumberValue(float64(rv.Int32())), nil
	case bson.TypeInt64:
		return feature.NumberValue(float64(rv.Int64())), nil
	case bson.TypeString:
		return feature.StringValue(rv.StringValue()), nil
	default:
		return feature.Value{}, errors.Join(ErrUnsupportedValue, feature.ErrInvalidValue,
			fmt.Errorf("bson type %s", rv.Type))
	}
}
