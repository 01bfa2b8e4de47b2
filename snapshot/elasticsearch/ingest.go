package elasticsearch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/operationtype"
	"hermannm.dev/devlog/log"
	"hermannm.dev/querybuilder/snapshot"
	"hermannm.dev/wrap"
)

const elasticIndexAlreadyExistsException = "resource_already_exists_exception"

// Creates the index if it does not exist, then indexes one document per snapshot row.
func (elastic ElasticsearchSink) SaveSnapshot(
	ctx context.Context,
	index string,
	snap snapshot.Snapshot,
) error {
	if err := validateIndex(index, snap); err != nil {
		return err
	}

	if err := elastic.createIndex(ctx, index, snap.Columns); err != nil {
		return wrap.Errorf(err, "failed to create index '%s'", index)
	}

	if err := elastic.indexRows(ctx, index, snap); err != nil {
		return wrap.Errorf(err, "failed to index snapshot rows into '%s'", index)
	}

	log.Infof("Saved snapshot %s to Elasticsearch index '%s'", snap.ID, index)
	return nil
}

// See https://www.elastic.co/guide/en/elasticsearch/reference/8.10/indices-create-index.html#indices-create-api-path-params
func validateIndex(index string, snap snapshot.Snapshot) error {
	if index == "" {
		return errors.New("index name is blank")
	}
	if strings.ToLower(index) != index {
		return fmt.Errorf("index name '%s' must be lowercase", index)
	}
	if strings.ContainsAny(index, `\/*?"<>|, #:`) {
		return fmt.Errorf("index name '%s' contains characters not allowed by Elasticsearch", index)
	}
	if strings.IndexAny(index, "-_+") == 0 {
		return fmt.Errorf("index name '%s' cannot start with '-', '_' or '+'", index)
	}

	var errs []error
	for _, column := range snap.Columns {
		if slices.Contains(metadataFields, column.Name) {
			errs = append(errs, fmt.Errorf("column name '%s' is reserved", column.Name))
		}
	}
	if len(errs) != 0 {
		return wrap.Errors("invalid column names in snapshot", errs...)
	}

	return nil
}

func (elastic ElasticsearchSink) createIndex(
	ctx context.Context,
	index string,
	columns []snapshot.Column,
) error {
	mappings, err := columnsToElasticMappings(columns)
	if err != nil {
		return wrap.Error(err, "failed to translate snapshot columns to elastic mappings")
	}

	if _, err := elastic.client.Indices.Create(index).Mappings(mappings).Do(ctx); err != nil {
		if isElasticErrorType(err, elasticIndexAlreadyExistsException) {
			return nil
		}
		return wrapElasticError(err, "index creation request failed")
	}

	return nil
}

func (elastic ElasticsearchSink) indexRows(
	ctx context.Context,
	index string,
	snap snapshot.Snapshot,
) error {
	if len(snap.Rows) == 0 {
		return nil
	}

	bulk := elastic.client.Bulk()
	data := snap.Reader()

	for {
		row, rowNumber, done, err := data.ReadRow()
		if done {
			break
		}
		if err != nil {
			return wrap.Error(err, "failed to read row")
		}

		id := documentID(snap, rowNumber)
		operation := types.CreateOperation{
			Id_:    &id,
			Index_: &index,
		}

		rowJSON, err := json.Marshal(rowToDocument(snap, row, rowNumber))
		if err != nil {
			return wrap.Errorf(
				err,
				"failed to encode row %d to JSON for sending to Elasticsearch",
				rowNumber,
			)
		}

		if err := bulk.CreateOp(operation, rowJSON); err != nil {
			return wrap.Errorf(
				err,
				"failed to add create operation for row %d to bulk insert",
				rowNumber,
			)
		}
	}

	response, err := bulk.Do(ctx)
	if err != nil {
		return wrapElasticError(err, "bulk insert request failed")
	}

	if response.Errors {
		errs := bulkItemErrors(response.Items)
		return wrap.Errors(
			fmt.Sprintf("bulk insert failed for %d of %d rows", len(errs), len(snap.Rows)),
			errs...,
		)
	}

	return nil
}

func bulkItemErrors(items []map[operationtype.OperationType]types.ResponseItem) []error {
	var errs []error
	for _, item := range items {
		for operation, result := range item {
			if result.Error == nil {
				continue
			}

			errs = append(errs, fmt.Errorf(
				"%s of document '%s' failed: %s",
				operation,
				result.Id_,
				describeErrorCause(result.Error.Reason, result.Error.Type),
			))
		}
	}
	return errs
}

func documentID(snap snapshot.Snapshot, rowNumber int) string {
	return fmt.Sprintf("%s-%d", snap.ID, rowNumber)
}

// Timestamps are stored as epoch milliseconds, which Elasticsearch's default date format accepts.
func rowToDocument(snap snapshot.Snapshot, row []any, rowNumber int) map[string]any {
	document := make(map[string]any, len(metadataFields)+len(row))
	document[SnapshotIDField] = snap.ID.String()
	document[TakenAtField] = snap.TakenAt.UnixMilli()
	document[QuerySQLField] = snap.QuerySQL
	document[RowNumberField] = rowNumber

	for i, value := range row {
		if i >= len(snap.Columns) {
			break
		}
		if timestamp, ok := value.(time.Time); ok {
			value = timestamp.UnixMilli()
		}
		document[snap.Columns[i].Name] = value
	}

	return document
}
