// Package snapshot turns a fetched result set into a typed table, which can be saved to an
// analysis database for later inspection.
package snapshot

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"hermannm.dev/querybuilder/api"
	"hermannm.dev/querybuilder/definitions"
	"hermannm.dev/querybuilder/format"
	"hermannm.dev/wrap"
)

var ErrNoData = errors.New("response has no rows to save")

type Snapshot struct {
	ID       uuid.UUID `json:"id"`
	TakenAt  time.Time `json:"takenAt"`
	QuerySQL string    `json:"querySql"`
	Columns  []Column  `json:"columns"`
	// Values are float64, time.Time, string or nil, matching the data type of their column.
	Rows [][]any `json:"rows"`
}

type Column struct {
	Name     string   `json:"name"`
	DataType DataType `json:"dataType"`
	Optional bool     `json:"optional"`
}

// Saves snapshots to an analysis database.
type Sink interface {
	SaveSnapshot(ctx context.Context, table string, snapshot Snapshot) error
}

// Builds a snapshot of the given response. Dimension columns come first, then metric columns, in
// the order of the first row.
//
// Metrics are stored as floats, and dimensions by their declared semantic type. A column with a
// value that does not convert to its type is stored as text instead.
func FromResponse(
	response *api.Response,
	defs definitions.Definitions,
	takenAt time.Time,
) (Snapshot, error) {
	if response.IsEmpty() {
		return Snapshot{}, ErrNoData
	}

	id, err := uuid.NewRandom()
	if err != nil {
		return Snapshot{}, wrap.Error(err, "failed to generate snapshot ID")
	}

	dimensionKeys, metricKeys := response.Keys()
	rowKeys := definitions.RowKeys{Metrics: metricKeys, Dimensions: dimensionKeys}

	columns := make([]Column, 0, len(dimensionKeys)+len(metricKeys))
	for _, key := range dimensionKeys {
		columns = append(columns, Column{Name: key, DataType: columnType(key, defs, rowKeys)})
	}
	for _, key := range metricKeys {
		columns = append(columns, Column{Name: key, DataType: DataTypeFloat})
	}

	rawRows := make([][]any, 0, len(response.Data))
	for _, row := range response.Data {
		rawRow := make([]any, len(columns))
		for i, column := range columns {
			var value any
			var ok bool
			if i < len(dimensionKeys) {
				value, ok = row.Dimensions.Get(column.Name)
			} else {
				value, ok = row.Metrics.Get(column.Name)
			}
			if !ok || value == nil {
				columns[i].Optional = true
				continue
			}
			rawRow[i] = value
		}
		rawRows = append(rawRows, rawRow)
	}

	for i := range columns {
		columns[i].DataType = settleDataType(columns[i].DataType, rawRows, i)
	}

	rows := make([][]any, 0, len(rawRows))
	for _, rawRow := range rawRows {
		row := make([]any, len(columns))
		for i, column := range columns {
			row[i] = convertValue(rawRow[i], column.DataType)
		}
		rows = append(rows, row)
	}

	return Snapshot{
		ID:       id,
		TakenAt:  takenAt.UTC(),
		QuerySQL: response.QuerySQL,
		Columns:  columns,
		Rows:     rows,
	}, nil
}

func columnType(key string, defs definitions.Definitions, rowKeys definitions.RowKeys) DataType {
	switch definitions.Classify(key, defs, rowKeys).SemanticType {
	case definitions.SemanticTypeDate,
		definitions.SemanticTypeDateTime,
		definitions.SemanticTypeTimestamp:
		return DataTypeTimestamp
	case definitions.SemanticTypeNumber,
		definitions.SemanticTypeCurrency,
		definitions.SemanticTypePercentage:
		return DataTypeFloat
	default:
		return DataTypeText
	}
}

// Falls back to text if any value in the column does not convert to the wanted type.
func settleDataType(wanted DataType, rows [][]any, columnIndex int) DataType {
	for _, row := range rows {
		value := row[columnIndex]
		if value == nil {
			continue
		}

		var ok bool
		switch wanted {
		case DataTypeFloat:
			_, ok = format.ParseNumber(value)
		case DataTypeTimestamp:
			_, ok = format.ParseTime(value)
		default:
			ok = true
		}
		if !ok {
			return DataTypeText
		}
	}
	return wanted
}

// Must only be called with a data type from settleDataType.
func convertValue(value any, dataType DataType) any {
	if value == nil {
		return nil
	}

	switch dataType {
	case DataTypeFloat:
		number, _ := format.ParseNumber(value)
		return number
	case DataTypeTimestamp:
		timestamp, _ := format.ParseTime(value)
		return timestamp
	default:
		return format.Text(value)
	}
}

func (snapshot Snapshot) ColumnNames() []string {
	names := make([]string, 0, len(snapshot.Columns))
	for _, column := range snapshot.Columns {
		names = append(names, column.Name)
	}
	return names
}

// A source of converted rows, read one at a time. Row numbers start at 1.
type DataSource interface {
	ReadRow() (row []any, rowNumber int, done bool, err error)
}

// Reads the snapshot's rows in order.
func (snapshot Snapshot) Reader() DataSource {
	return &rowReader{rows: snapshot.Rows}
}

type rowReader struct {
	rows [][]any
	next int
}

func (reader *rowReader) ReadRow() (row []any, rowNumber int, done bool, err error) {
	if reader.next >= len(reader.rows) {
		return nil, reader.next, true, nil
	}

	row = reader.rows[reader.next]
	reader.next++
	return row, reader.next, false, nil
}
