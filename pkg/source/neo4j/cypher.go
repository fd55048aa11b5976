package neo4j

import (
	"fmt"
	"maps"
	"strings"

	"github.com/matzehuels/graphload/pkg/errors"
	"github.com/matzehuels/graphload/pkg/graph"
	"github.com/matzehuels/graphload/pkg/source"
)

// idsParam carries the batch node IDs. User params cannot override it.
const idsParam = "graphload_ids"

// NodeCypher builds the node scan for q.
func NodeCypher(q source.NodeQuery) (string, map[string]any, error) {
	pattern := "(n)"
	if q.Label != "" {
		label, err := quote(q.Label, errors.ErrCodeInvalidLabel)
		if err != nil {
			return "", nil, err
		}
		pattern = "(n:" + label + ")"
	}
	projection, err := project("n", q.Properties)
	if err != nil {
		return "", nil, err
	}

	query := fmt.Sprintf("MATCH %s RETURN id(n) AS id, labels(n) AS labels, %s AS properties ORDER BY id", pattern, projection)
	return query, params(q.Params), nil
}

// RelationshipCypher builds the relationship lookup for q. Outgoing queries
// match q.NodeIDs against start nodes, incoming ones against end nodes. Rows
// come back grouped by batch node and ordered by relationship ID.
func RelationshipCypher(q source.RelationshipQuery) (string, map[string]any, error) {
	rel := "[r]"
	if q.Type != "" {
		typ, err := quote(q.Type, errors.ErrCodeInvalidLabel)
		if err != nil {
			return "", nil, err
		}
		rel = "[r:" + typ + "]"
	}
	projection, err := project("r", q.Properties)
	if err != nil {
		return "", nil, err
	}

	var match string
	switch q.Direction {
	case graph.Outgoing:
		match = "MATCH (n)-" + rel + "->(m) WHERE id(n) = nid RETURN id(r) AS id, type(r) AS type, id(n) AS start, id(m) AS end"
	case graph.Incoming:
		match = "MATCH (m)-" + rel + "->(n) WHERE id(n) = nid RETURN id(r) AS id, type(r) AS type, id(m) AS start, id(n) AS end"
	default:
		return "", nil, errors.New(errors.ErrCodeInvalidDirection, "unsupported direction %s", q.Direction)
	}

	query := fmt.Sprintf("UNWIND $%s AS nid %s, %s AS properties ORDER BY nid, id", idsParam, match, projection)
	p := params(q.Params)
	ids := q.NodeIDs
	if ids == nil {
		ids = []int64{}
	}
	p[idsParam] = ids
	return query, p, nil
}

func params(in map[string]any) map[string]any {
	if in == nil {
		return map[string]any{}
	}
	return maps.Clone(in)
}

// project renders a map projection of the requested keys.
func project(variable string, keys []string) (string, error) {
	if len(keys) == 0 {
		return "{}", nil
	}
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		q, err := quote(k, errors.ErrCodeInvalidProperty)
		if err != nil {
			return "", err
		}
		parts = append(parts, "."+q)
	}
	return variable + " {" + strings.Join(parts, ", ") + "}", nil
}

// quote validates name and returns it in backticks unless it is plain.
func quote(name string, code errors.Code) (string, error) {
	if err := errors.ValidateIdentifier("identifier", name, code); err != nil {
		return "", err
	}
	if errors.IsPlainIdentifier(name) {
		return name, nil
	}
	return "`" + name + "`", nil
}
