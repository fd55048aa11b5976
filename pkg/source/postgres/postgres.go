// Package postgres reads graph loads from PostgreSQL tables.
//
// Nodes and relationships live in two tables (see [Tables]); properties are
// stored as jsonb and decoded into maps.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/matzehuels/graphload/pkg/errors"
	"github.com/matzehuels/graphload/pkg/source"
)

// Source is a [source.Source] backed by a pgx connection pool.
type Source struct {
	pool   *pgxpool.Pool
	tables Tables
	id     string
}

// Open connects to the database at connString.
func Open(ctx context.Context, connString string, tables Tables) (*Source, error) {
	if err := tables.validate(); err != nil {
		return nil, err
	}
	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse connection string")
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSource, err, "connect")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, errors.Wrap(errors.ErrCodeSource, err, "ping")
	}
	id := fmt.Sprintf("postgres:%s@%s:%d/%s", tables.Nodes, cfg.ConnConfig.Host, cfg.ConnConfig.Port, cfg.ConnConfig.Database)
	return &Source{pool: pool, tables: tables, id: id}, nil
}

// Close closes the pool.
func (s *Source) Close() { s.pool.Close() }

// SourceID implements [source.Identifier].
func (s *Source) SourceID() string { return s.id }

// Nodes implements [source.Source].
func (s *Source) Nodes(ctx context.Context, q source.NodeQuery) ([]source.NodeRecord, error) {
	query, args, err := NodeSQL(s.tables, q)
	if err != nil {
		return nil, err
	}
	rows, err := s.pool.Query(ctx, query, args)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSource, err, "scan nodes")
	}
	defer rows.Close()

	var out []source.NodeRecord
	for rows.Next() {
		var n source.NodeRecord
		if err := rows.Scan(&n.ID, &n.Labels, &n.Properties); err != nil {
			return nil, errors.Wrap(errors.ErrCodeSource, err, "scan node row")
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeSource, err, "scan nodes")
	}
	return out, nil
}

// Relationships implements [source.Source].
func (s *Source) Relationships(ctx context.Context, q source.RelationshipQuery) ([]source.RelationshipRecord, error) {
	query, args, err := RelationshipSQL(s.tables, q)
	if err != nil {
		return nil, err
	}
	rows, err := s.pool.Query(ctx, query, args)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSource, err, "read relationships")
	}
	defer rows.Close()

	var out []source.RelationshipRecord
	for rows.Next() {
		var r source.RelationshipRecord
		if err := rows.Scan(&r.ID, &r.Type, &r.StartID, &r.EndID, &r.Properties); err != nil {
			return nil, errors.Wrap(errors.ErrCodeSource, err, "scan relationship row")
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeSource, err, "read relationships")
	}
	return out, nil
}

// PropertyKeys implements [source.PropertyKeyLister].
func (s *Source) PropertyKeys(ctx context.Context) (source.PropertyKeys, error) {
	var keys source.PropertyKeys
	var err error
	if keys.Node, err = s.keys(ctx, s.tables.Nodes); err != nil {
		return keys, err
	}
	if keys.Relationship, err = s.keys(ctx, s.tables.Relationships); err != nil {
		return keys, err
	}
	return keys, nil
}

func (s *Source) keys(ctx context.Context, table string) ([]string, error) {
	rows, err := s.pool.Query(ctx, "SELECT DISTINCT jsonb_object_keys(properties) FROM "+table+" WHERE jsonb_typeof(properties) = 'object'")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSource, err, "list property keys of %s", table)
	}
	keys, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSource, err, "list property keys of %s", table)
	}
	return keys, nil
}
