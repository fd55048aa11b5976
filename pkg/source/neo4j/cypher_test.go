package neo4j

import (
	"slices"
	"testing"

	"github.com/matzehuels/graphload/pkg/errors"
	"github.com/matzehuels/graphload/pkg/graph"
	"github.com/matzehuels/graphload/pkg/source"
)

func TestNodeCypher(t *testing.T) {
	tests := []struct {
		name string
		q    source.NodeQuery
		want string
	}{
		{
			name: "any label",
			q:    source.NodeQuery{},
			want: "MATCH (n) RETURN id(n) AS id, labels(n) AS labels, {} AS properties ORDER BY id",
		},
		{
			name: "label and properties",
			q:    source.NodeQuery{Label: "Person", Properties: []string{"score", "page rank"}},
			want: "MATCH (n:Person) RETURN id(n) AS id, labels(n) AS labels, n {.score, .`page rank`} AS properties ORDER BY id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, params, err := NodeCypher(tt.q)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("NodeCypher() =\n%s\nwant\n%s", got, tt.want)
			}
			if params == nil {
				t.Error("params should never be nil")
			}
		})
	}
}

func TestRelationshipCypher(t *testing.T) {
	tests := []struct {
		name string
		q    source.RelationshipQuery
		want string
	}{
		{
			name: "outgoing",
			q:    source.RelationshipQuery{Direction: graph.Outgoing, NodeIDs: []int64{1, 2}},
			want: "UNWIND $graphload_ids AS nid MATCH (n)-[r]->(m) WHERE id(n) = nid RETURN id(r) AS id, type(r) AS type, id(n) AS start, id(m) AS end, {} AS properties ORDER BY nid, id",
		},
		{
			name: "incoming typed",
			q:    source.RelationshipQuery{Direction: graph.Incoming, Type: "KNOWS", Properties: []string{"weight"}},
			want: "UNWIND $graphload_ids AS nid MATCH (m)-[r:KNOWS]->(n) WHERE id(n) = nid RETURN id(r) AS id, type(r) AS type, id(m) AS start, id(n) AS end, r {.weight} AS properties ORDER BY nid, id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, params, err := RelationshipCypher(tt.q)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("RelationshipCypher() =\n%s\nwant\n%s", got, tt.want)
			}
			ids, ok := params[idsParam].([]int64)
			if !ok {
				t.Fatalf("params[%s] = %T, want []int64", idsParam, params[idsParam])
			}
			if tt.q.NodeIDs != nil && !slices.Equal(ids, tt.q.NodeIDs) {
				t.Errorf("ids = %v, want %v", ids, tt.q.NodeIDs)
			}
		})
	}
}

func TestParamsPassThrough(t *testing.T) {
	user := map[string]any{"since": 2020, idsParam: "ignored"}
	_, params, err := RelationshipCypher(source.RelationshipQuery{NodeIDs: []int64{5}, Params: user})
	if err != nil {
		t.Fatal(err)
	}
	if params["since"] != 2020 {
		t.Errorf("since = %v, want 2020", params["since"])
	}
	if _, ok := params[idsParam].([]int64); !ok {
		t.Error("batch ids must not be overridden by user params")
	}
	if user[idsParam] != "ignored" {
		t.Error("caller params must not be modified")
	}
}

func TestCypherRejectsInjection(t *testing.T) {
	if _, _, err := NodeCypher(source.NodeQuery{Label: "Person`) DETACH DELETE n //"}); !errors.Is(err, errors.ErrCodeInvalidLabel) {
		t.Errorf("label error = %v, want INVALID_LABEL", err)
	}
	if _, _, err := RelationshipCypher(source.RelationshipQuery{Properties: []string{"w;"}}); !errors.Is(err, errors.ErrCodeInvalidProperty) {
		t.Errorf("property error = %v, want INVALID_PROPERTY", err)
	}
	if _, _, err := RelationshipCypher(source.RelationshipQuery{Direction: graph.Direction(5)}); !errors.Is(err, errors.ErrCodeInvalidDirection) {
		t.Errorf("direction error = %v, want INVALID_DIRECTION", err)
	}
}
