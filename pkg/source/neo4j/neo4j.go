// Package neo4j reads graph loads from a Neo4j database over Bolt.
package neo4j

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/matzehuels/graphload/pkg/errors"
	"github.com/matzehuels/graphload/pkg/source"
)

// Config holds connection settings.
type Config struct {
	URI      string
	Username string
	Password string
	Database string // "" uses the server default
}

// Source is a [source.Source] backed by a Neo4j driver.
type Source struct {
	driver   neo4j.DriverWithContext
	database string
	uri      string
}

// Open connects to Neo4j and verifies connectivity.
func Open(ctx context.Context, cfg Config) (*Source, error) {
	driver, err := neo4j.NewDriverWithContext(cfg.URI, neo4j.BasicAuth(cfg.Username, cfg.Password, ""))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSource, err, "create neo4j driver")
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, errors.Wrap(errors.ErrCodeSource, err, "connect to %s", cfg.URI)
	}
	return &Source{driver: driver, database: cfg.Database, uri: cfg.URI}, nil
}

// Close releases the driver.
func (s *Source) Close(ctx context.Context) error {
	return s.driver.Close(ctx)
}

// SourceID implements [source.Identifier].
func (s *Source) SourceID() string {
	return fmt.Sprintf("neo4j:%s/%s", s.uri, s.database)
}

// Nodes implements [source.Source].
func (s *Source) Nodes(ctx context.Context, q source.NodeQuery) ([]source.NodeRecord, error) {
	query, params, err := NodeCypher(q)
	if err != nil {
		return nil, err
	}

	var out []source.NodeRecord
	err = s.read(ctx, query, params, func(rec *neo4j.Record) error {
		id, err := int64Field(rec, "id")
		if err != nil {
			return err
		}
		out = append(out, source.NodeRecord{
			ID:         id,
			Labels:     stringsField(rec, "labels"),
			Properties: mapField(rec, "properties"),
		})
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSource, err, "scan nodes")
	}
	return out, nil
}

// Relationships implements [source.Source].
func (s *Source) Relationships(ctx context.Context, q source.RelationshipQuery) ([]source.RelationshipRecord, error) {
	query, params, err := RelationshipCypher(q)
	if err != nil {
		return nil, err
	}

	var out []source.RelationshipRecord
	err = s.read(ctx, query, params, func(rec *neo4j.Record) error {
		var r source.RelationshipRecord
		var err error
		if r.ID, err = int64Field(rec, "id"); err != nil {
			return err
		}
		if r.StartID, err = int64Field(rec, "start"); err != nil {
			return err
		}
		if r.EndID, err = int64Field(rec, "end"); err != nil {
			return err
		}
		if v, ok := rec.Get("type"); ok {
			r.Type, _ = v.(string)
		}
		r.Properties = mapField(rec, "properties")
		out = append(out, r)
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSource, err, "read relationships")
	}
	return out, nil
}

// PropertyKeys implements [source.PropertyKeyLister].
// Neo4j keeps one key set for nodes and relationships.
func (s *Source) PropertyKeys(ctx context.Context) (source.PropertyKeys, error) {
	var keys []string
	err := s.read(ctx, "CALL db.propertyKeys() YIELD propertyKey RETURN propertyKey", nil, func(rec *neo4j.Record) error {
		if v, ok := rec.Get("propertyKey"); ok {
			if k, ok := v.(string); ok {
				keys = append(keys, k)
			}
		}
		return nil
	})
	if err != nil {
		return source.PropertyKeys{}, errors.Wrap(errors.ErrCodeSource, err, "list property keys")
	}
	return source.PropertyKeys{Node: keys, Relationship: keys}, nil
}

func (s *Source) read(ctx context.Context, query string, params map[string]any, fn func(*neo4j.Record) error) error {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeRead,
		DatabaseName: s.database,
	})
	defer session.Close(ctx)

	result, err := session.Run(ctx, query, params)
	if err != nil {
		return err
	}
	for result.Next(ctx) {
		if err := fn(result.Record()); err != nil {
			return err
		}
	}
	return result.Err()
}

func int64Field(rec *neo4j.Record, key string) (int64, error) {
	v, ok := rec.Get(key)
	if !ok {
		return 0, fmt.Errorf("missing field %q", key)
	}
	id, ok := v.(int64)
	if !ok {
		return 0, fmt.Errorf("field %q: unexpected type %T", key, v)
	}
	return id, nil
}

func stringsField(rec *neo4j.Record, key string) []string {
	v, _ := rec.Get(key)
	items, _ := v.([]any)
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func mapField(rec *neo4j.Record, key string) map[string]any {
	v, _ := rec.Get(key)
	m, _ := v.(map[string]any)
	return m
}
