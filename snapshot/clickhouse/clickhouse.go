// Package clickhouse saves result set snapshots to ClickHouse tables.
package clickhouse

import (
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"hermannm.dev/devlog/log"
	"hermannm.dev/enumnames"
	"hermannm.dev/querybuilder/config"
	"hermannm.dev/querybuilder/snapshot"
	"hermannm.dev/wrap"
)

// Implements snapshot.Sink for ClickHouse.
type ClickHouseSink struct {
	conn driver.Conn
}

func New(config config.ClickHouse) (ClickHouseSink, error) {
	// Options docs: https://clickhouse.com/docs/en/integrations/go#connection-settings
	conn, err := clickhouse.Open(&clickhouse.Options{
		Addr: []string{config.Address},
		Auth: clickhouse.Auth{
			Database: config.DatabaseName,
			Username: config.Username,
			Password: config.Password,
		},
		Debug: config.Debug,
		Debugf: func(format string, v ...any) {
			log.Debugf(format, v...)
		},
		Compression: &clickhouse.Compression{Method: clickhouse.CompressionLZ4},
	})
	if err != nil {
		return ClickHouseSink{}, wrap.Error(err, "failed to connect to ClickHouse")
	}

	return ClickHouseSink{conn: conn}, nil
}

func (sink ClickHouseSink) Close() error {
	return sink.conn.Close()
}

// Columns written for every row, before the snapshot's own columns.
const (
	SnapshotIDColumn = "snapshot_id"
	TakenAtColumn    = "taken_at"
	QuerySQLColumn   = "query_sql"
	RowNumberColumn  = "row_number"
)

var metadataColumns = []string{SnapshotIDColumn, TakenAtColumn, QuerySQLColumn, RowNumberColumn}

var clickhouseDataTypes = enumnames.NewMap(map[snapshot.DataType]string{
	snapshot.DataTypeText:      "String",
	snapshot.DataTypeFloat:     "Float64",
	snapshot.DataTypeTimestamp: "DateTime64(3)",
})

func clickhouseDataType(column snapshot.Column) (string, error) {
	dataType, ok := clickhouseDataTypes.GetName(column.DataType)
	if !ok {
		return "", fmt.Errorf("invalid data type '%v' in column '%s'", column.DataType, column.Name)
	}
	if column.Optional {
		dataType += " NULL"
	}
	return dataType, nil
}
