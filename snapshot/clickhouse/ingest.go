package clickhouse

import (
	"context"
	"fmt"
	"slices"

	"hermannm.dev/devlog/log"
	"hermannm.dev/querybuilder/snapshot"
	"hermannm.dev/wrap"
)

// Creates the table if it does not exist, then inserts the snapshot's rows. Snapshots of the same
// query shape can share a table, told apart by their snapshot ID.
func (sink ClickHouseSink) SaveSnapshot(
	ctx context.Context,
	table string,
	snap snapshot.Snapshot,
) error {
	if err := validateTable(table, snap); err != nil {
		return err
	}

	createQuery, err := createTableQuery(table, snap.Columns)
	if err != nil {
		return wrap.Errorf(err, "failed to build create query for table '%s'", table)
	}
	if err := sink.conn.Exec(ctx, createQuery); err != nil {
		return wrap.Errorf(err, "create table query failed for table '%s'", table)
	}

	if err := sink.insertRows(ctx, table, snap); err != nil {
		return wrap.Errorf(err, "failed to insert snapshot rows into table '%s'", table)
	}

	log.Infof("Saved snapshot %s to ClickHouse table '%s'", snap.ID, table)
	return nil
}

func validateTable(table string, snap snapshot.Snapshot) error {
	if err := ValidateIdentifier(table); err != nil {
		return wrap.Error(err, "invalid table name")
	}

	var errs []error
	for _, column := range snap.Columns {
		if err := ValidateIdentifier(column.Name); err != nil {
			errs = append(errs, err)
		} else if slices.Contains(metadataColumns, column.Name) {
			errs = append(errs, fmt.Errorf("column name '%s' is reserved", column.Name))
		}
	}
	if len(errs) != 0 {
		return wrap.Errors("invalid column names in snapshot", errs...)
	}

	return nil
}

// Must only be called after validateTable.
func createTableQuery(table string, columns []snapshot.Column) (string, error) {
	var query QueryBuilder
	query.WriteString("CREATE TABLE IF NOT EXISTS ")
	query.WriteIdentifier(table)
	query.WriteString(" (")

	query.WriteIdentifier(SnapshotIDColumn)
	query.WriteString(" UUID, ")
	query.WriteIdentifier(TakenAtColumn)
	query.WriteString(" DateTime64(3), ")
	query.WriteIdentifier(QuerySQLColumn)
	query.WriteString(" String, ")
	query.WriteIdentifier(RowNumberColumn)
	query.WriteString(" Int64")

	for _, column := range columns {
		dataType, err := clickhouseDataType(column)
		if err != nil {
			return "", err
		}

		query.WriteString(", ")
		query.WriteIdentifier(column.Name)
		query.WriteRune(' ')
		query.WriteString(dataType)
	}

	query.WriteRune(')')
	query.WriteString(" ENGINE = MergeTree()")
	query.WriteString(" PRIMARY KEY (")
	query.WriteIdentifierList([]string{SnapshotIDColumn, RowNumberColumn})
	query.WriteRune(')')

	return query.String(), nil
}

// ClickHouse recommends keeping batch inserts between 10,000 and 100,000 rows:
// https://clickhouse.com/docs/en/cloud/bestpractices/bulk-inserts
const BatchInsertSize = 10000

// Must only be called after validateTable.
func (sink ClickHouseSink) insertRows(
	ctx context.Context,
	table string,
	snap snapshot.Snapshot,
) error {
	queryString := insertQuery(table, snap.ColumnNames())

	fieldsPerRow := len(metadataColumns) + len(snap.Columns)
	data := snap.Reader()

	allRowsSent := false
	for !allRowsSent {
		batch, err := sink.conn.PrepareBatch(ctx, queryString)
		if err != nil {
			return wrap.Error(err, "failed to prepare batch data insert")
		}

		rowsInBatch := 0
		for rowsInBatch < BatchInsertSize {
			row, rowNumber, done, err := data.ReadRow()
			if done {
				allRowsSent = true
				break
			}
			if err != nil {
				return wrap.Error(err, "failed to read row")
			}

			insertRow := make([]any, 0, fieldsPerRow)
			insertRow = append(
				insertRow,
				snap.ID.String(),
				snap.TakenAt,
				snap.QuerySQL,
				int64(rowNumber),
			)
			insertRow = append(insertRow, row...)

			if err := batch.Append(insertRow...); err != nil {
				return wrap.Errorf(err, "failed to add row %d to batch insert", rowNumber)
			}
			rowsInBatch++
		}

		if rowsInBatch == 0 {
			if err := batch.Abort(); err != nil {
				return wrap.Error(err, "failed to abort empty batch insert")
			}
			break
		}

		if err := batch.Send(); err != nil {
			return wrap.Error(err, "failed to send batch insert")
		}
	}

	return nil
}

// Must only be called after validateTable.
func insertQuery(table string, columnNames []string) string {
	var query QueryBuilder
	query.WriteString("INSERT INTO ")
	query.WriteIdentifier(table)
	query.WriteString(" (")
	query.WriteIdentifierList(append(slices.Clone(metadataColumns), columnNames...))
	query.WriteRune(')')
	return query.String()
}
