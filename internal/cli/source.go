package cli

import (
	"context"
	"strings"

	"github.com/matzehuels/graphload/pkg/errors"
	"github.com/matzehuels/graphload/pkg/source"
	"github.com/matzehuels/graphload/pkg/source/memory"
	"github.com/matzehuels/graphload/pkg/source/mongo"
	"github.com/matzehuels/graphload/pkg/source/neo4j"
	"github.com/matzehuels/graphload/pkg/source/postgres"
)

// Source kinds accepted by --source.
const (
	sourceJSON     = "json"
	sourceNeo4j    = "neo4j"
	sourcePostgres = "postgres"
	sourceMongo    = "mongo"
)

var sourceKinds = []string{sourceJSON, sourceNeo4j, sourcePostgres, sourceMongo}

// openSource connects to the source named by kind. input is the dump path for
// json sources; database sources read their settings from the environment.
// The returned close function is never nil.
func openSource(ctx context.Context, kind, input string) (source.Source, func(), error) {
	noop := func() {}
	switch kind {
	case sourceJSON:
		if input == "" {
			return nil, noop, errors.New(errors.ErrCodeInvalidInput, "--input is required for json sources")
		}
		src, err := memory.ReadFile(input)
		if err != nil {
			return nil, noop, errors.Wrap(errors.ErrCodeSource, err, "read dump")
		}
		return src, noop, nil

	case sourceNeo4j:
		src, err := neo4j.Open(ctx, neo4j.Config{
			URI:      getEnvString("NEO4J_URI", "neo4j://localhost:7687"),
			Username: getEnvString("NEO4J_USER", "neo4j"),
			Password: getEnv("NEO4J_PASSWORD"),
			Database: getEnv("NEO4J_DATABASE"),
		})
		if err != nil {
			return nil, noop, err
		}
		return src, func() { _ = src.Close(context.Background()) }, nil

	case sourcePostgres:
		url := getEnv("POSTGRES_URL")
		if url == "" {
			return nil, noop, errors.New(errors.ErrCodeInvalidInput, "%sPOSTGRES_URL is not set", envPrefix)
		}
		tables := postgres.DefaultTables()
		tables.Nodes = getEnvString("POSTGRES_NODES", tables.Nodes)
		tables.Relationships = getEnvString("POSTGRES_RELATIONSHIPS", tables.Relationships)
		src, err := postgres.Open(ctx, url, tables)
		if err != nil {
			return nil, noop, err
		}
		return src, src.Close, nil

	case sourceMongo:
		src, err := mongo.Open(ctx, mongo.Config{
			URI:                    getEnvString("MONGO_URI", "mongodb://localhost:27017"),
			Database:               getEnv("MONGO_DATABASE"),
			NodeCollection:         getEnv("MONGO_NODES"),
			RelationshipCollection: getEnv("MONGO_RELATIONSHIPS"),
		})
		if err != nil {
			return nil, noop, err
		}
		return src, func() { _ = src.Close(context.Background()) }, nil
	}
	return nil, noop, errors.New(errors.ErrCodeUnsupported, "unknown source %q (must be one of: %s)", kind, strings.Join(sourceKinds, ", "))
}
