package postgres

import (
	"maps"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/matzehuels/graphload/pkg/errors"
	"github.com/matzehuels/graphload/pkg/graph"
	"github.com/matzehuels/graphload/pkg/source"
)

// Reserved named arguments. User params cannot override them.
const (
	argLabel = "graphload_label"
	argType  = "graphload_type"
	argIDs   = "graphload_ids"
)

// Tables names the node and relationship tables.
//
//	CREATE TABLE nodes (id bigint PRIMARY KEY, labels text[], properties jsonb);
//	CREATE TABLE relationships (
//	    id bigint PRIMARY KEY, type text,
//	    start_id bigint, end_id bigint, properties jsonb);
type Tables struct {
	Nodes         string
	Relationships string
}

// DefaultTables returns the standard table names.
func DefaultTables() Tables {
	return Tables{Nodes: "nodes", Relationships: "relationships"}
}

func (t Tables) validate() error {
	for _, name := range []string{t.Nodes, t.Relationships} {
		if !errors.IsPlainIdentifier(name) {
			return errors.New(errors.ErrCodeInvalidInput, "invalid table name %q", name)
		}
	}
	return nil
}

// NodeSQL builds the node scan for q.
func NodeSQL(t Tables, q source.NodeQuery) (string, pgx.NamedArgs, error) {
	if err := t.validate(); err != nil {
		return "", nil, err
	}
	args := namedArgs(q.Params)

	var b strings.Builder
	b.WriteString("SELECT id, labels, properties FROM ")
	b.WriteString(t.Nodes)
	if q.Label != "" {
		if err := errors.ValidateLabel(q.Label); err != nil {
			return "", nil, err
		}
		b.WriteString(" WHERE @" + argLabel + " = ANY(labels)")
		args[argLabel] = q.Label
	}
	b.WriteString(" ORDER BY id")
	return b.String(), args, nil
}

// RelationshipSQL builds the relationship lookup for q.
func RelationshipSQL(t Tables, q source.RelationshipQuery) (string, pgx.NamedArgs, error) {
	if err := t.validate(); err != nil {
		return "", nil, err
	}

	var column string
	switch q.Direction {
	case graph.Outgoing:
		column = "start_id"
	case graph.Incoming:
		column = "end_id"
	default:
		return "", nil, errors.New(errors.ErrCodeInvalidDirection, "unsupported direction %s", q.Direction)
	}

	args := namedArgs(q.Params)
	ids := q.NodeIDs
	if ids == nil {
		ids = []int64{}
	}
	args[argIDs] = ids

	var b strings.Builder
	b.WriteString("SELECT id, type, start_id, end_id, properties FROM ")
	b.WriteString(t.Relationships)
	b.WriteString(" WHERE " + column + " = ANY(@" + argIDs + ")")
	if q.Type != "" {
		if err := errors.ValidateLabel(q.Type); err != nil {
			return "", nil, err
		}
		b.WriteString(" AND type = @" + argType)
		args[argType] = q.Type
	}
	b.WriteString(" ORDER BY " + column + ", id")
	return b.String(), args, nil
}

func namedArgs(params map[string]any) pgx.NamedArgs {
	args := pgx.NamedArgs{}
	maps.Copy(args, params)
	return args
}
