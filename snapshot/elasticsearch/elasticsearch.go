// Package elasticsearch saves result set snapshots as documents in Elasticsearch indices.
package elasticsearch

import (
	"github.com/elastic/go-elasticsearch/v8"
	"hermannm.dev/querybuilder/config"
	"hermannm.dev/wrap"
)

// Implements snapshot.Sink for Elasticsearch.
type ElasticsearchSink struct {
	client *elasticsearch.TypedClient
}

func New(config config.Elasticsearch) (ElasticsearchSink, error) {
	client, err := elasticsearch.NewTypedClient(elasticsearch.Config{
		Addresses:         []string{config.Address},
		EnableDebugLogger: config.Debug,
	})
	if err != nil {
		return ElasticsearchSink{}, wrap.Error(err, "failed to connect to Elasticsearch")
	}

	return ElasticsearchSink{client: client}, nil
}

// Fields written for every document, next to the snapshot's own columns.
const (
	SnapshotIDField = "snapshot_id"
	TakenAtField    = "taken_at"
	QuerySQLField   = "query_sql"
	RowNumberField  = "row_number"
)

var metadataFields = []string{SnapshotIDField, TakenAtField, QuerySQLField, RowNumberField}
