// Package mongo reads graph loads from MongoDB collections.
//
// Node documents look like {_id: 1, labels: ["Person"], properties: {...}};
// relationship documents like {_id: 7, type: "KNOWS", start: 1, end: 2,
// properties: {...}}. Params are not applied: MongoDB filters carry no
// named parameters.
package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/graphload/pkg/errors"
	"github.com/matzehuels/graphload/pkg/graph"
	"github.com/matzehuels/graphload/pkg/source"
)

// Config holds connection settings.
type Config struct {
	URI                    string
	Database               string
	NodeCollection         string // default "nodes"
	RelationshipCollection string // default "relationships"
}

// Source is a [source.Source] backed by a MongoDB client.
type Source struct {
	client *mongo.Client
	nodes  *mongo.Collection
	rels   *mongo.Collection
	id     string
}

type nodeDoc struct {
	ID         int64          `bson:"_id"`
	Labels     []string       `bson:"labels"`
	Properties map[string]any `bson:"properties"`
}

type relationshipDoc struct {
	ID         int64          `bson:"_id"`
	Type       string         `bson:"type"`
	Start      int64          `bson:"start"`
	End        int64          `bson:"end"`
	Properties map[string]any `bson:"properties"`
}

// Open connects to MongoDB and verifies the connection.
func Open(ctx context.Context, cfg Config) (*Source, error) {
	if cfg.Database == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "mongo database is required")
	}
	if cfg.NodeCollection == "" {
		cfg.NodeCollection = "nodes"
	}
	if cfg.RelationshipCollection == "" {
		cfg.RelationshipCollection = "relationships"
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSource, err, "connect to mongo")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeSource, err, "ping mongo")
	}
	db := client.Database(cfg.Database)
	return &Source{
		client: client,
		nodes:  db.Collection(cfg.NodeCollection),
		rels:   db.Collection(cfg.RelationshipCollection),
		id:     "mongo:" + cfg.Database + "/" + cfg.NodeCollection,
	}, nil
}

// Close disconnects the client.
func (s *Source) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// SourceID implements [source.Identifier].
func (s *Source) SourceID() string { return s.id }

// Nodes implements [source.Source].
func (s *Source) Nodes(ctx context.Context, q source.NodeQuery) ([]source.NodeRecord, error) {
	cur, err := s.nodes.Find(ctx, NodeFilter(q), findOptions(q.Properties))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSource, err, "scan nodes")
	}
	var docs []nodeDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(errors.ErrCodeSource, err, "decode nodes")
	}

	out := make([]source.NodeRecord, len(docs))
	for i, d := range docs {
		out[i] = source.NodeRecord{ID: d.ID, Labels: d.Labels, Properties: d.Properties}
	}
	return out, nil
}

// Relationships implements [source.Source].
func (s *Source) Relationships(ctx context.Context, q source.RelationshipQuery) ([]source.RelationshipRecord, error) {
	filter, err := RelationshipFilter(q)
	if err != nil {
		return nil, err
	}
	cur, err := s.rels.Find(ctx, filter, findOptions(q.Properties))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSource, err, "read relationships")
	}
	var docs []relationshipDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(errors.ErrCodeSource, err, "decode relationships")
	}

	out := make([]source.RelationshipRecord, len(docs))
	for i, d := range docs {
		out[i] = source.RelationshipRecord{
			ID:         d.ID,
			Type:       d.Type,
			StartID:    d.Start,
			EndID:      d.End,
			Properties: d.Properties,
		}
	}
	return out, nil
}

// NodeFilter builds the node filter for q.
func NodeFilter(q source.NodeQuery) bson.D {
	if q.Label == "" {
		return bson.D{}
	}
	return bson.D{{Key: "labels", Value: q.Label}}
}

// RelationshipFilter builds the relationship filter for q.
func RelationshipFilter(q source.RelationshipQuery) (bson.D, error) {
	var field string
	switch q.Direction {
	case graph.Outgoing:
		field = "start"
	case graph.Incoming:
		field = "end"
	default:
		return nil, errors.New(errors.ErrCodeInvalidDirection, "unsupported direction %s", q.Direction)
	}
	ids := q.NodeIDs
	if ids == nil {
		ids = []int64{}
	}
	filter := bson.D{{Key: field, Value: bson.D{{Key: "$in", Value: ids}}}}
	if q.Type != "" {
		filter = append(filter, bson.E{Key: "type", Value: q.Type})
	}
	return filter, nil
}

// Projection limits returned properties to keys. It is nil when keys is empty.
func Projection(keys []string) bson.D {
	if len(keys) == 0 {
		return nil
	}
	proj := bson.D{
		{Key: "labels", Value: 1},
		{Key: "type", Value: 1},
		{Key: "start", Value: 1},
		{Key: "end", Value: 1},
	}
	for _, k := range keys {
		proj = append(proj, bson.E{Key: "properties." + k, Value: 1})
	}
	return proj
}

func findOptions(keys []string) *options.FindOptions {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	if proj := Projection(keys); proj != nil {
		opts.SetProjection(proj)
	}
	return opts
}
