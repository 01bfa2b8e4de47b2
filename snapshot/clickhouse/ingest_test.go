package clickhouse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"hermannm.dev/querybuilder/snapshot"
)

func TestCreateTableQuery(t *testing.T) {
	query, err := createTableQuery("vendas_por_canal", []snapshot.Column{
		{Name: "canal", DataType: snapshot.DataTypeText},
		{Name: "data_venda", DataType: snapshot.DataTypeTimestamp, Optional: true},
		{Name: "total_vendas", DataType: snapshot.DataTypeFloat},
	})
	require.NoError(t, err)

	assert.Equal(
		t,
		"CREATE TABLE IF NOT EXISTS `vendas_por_canal` ("+
			"`snapshot_id` UUID, `taken_at` DateTime64(3), `query_sql` String, `row_number` Int64, "+
			"`canal` String, `data_venda` DateTime64(3) NULL, `total_vendas` Float64)"+
			" ENGINE = MergeTree() PRIMARY KEY (`snapshot_id`, `row_number`)",
		query,
	)
}

func TestCreateTableQueryRejectsInvalidDataType(t *testing.T) {
	_, err := createTableQuery("vendas", []snapshot.Column{{Name: "canal"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "canal")
}

func TestInsertQuery(t *testing.T) {
	assert.Equal(
		t,
		"INSERT INTO `vendas` (`snapshot_id`, `taken_at`, `query_sql`, `row_number`, `canal`)",
		insertQuery("vendas", []string{"canal"}),
	)
}

func TestValidateTable(t *testing.T) {
	valid := snapshot.Snapshot{Columns: []snapshot.Column{{Name: "canal"}}}
	assert.NoError(t, validateTable("vendas", valid))

	assert.Error(t, validateTable("ven`das", valid))
	assert.Error(t, validateTable("", valid))

	invalid := snapshot.Snapshot{Columns: []snapshot.Column{
		{Name: "can`al"},
		{Name: RowNumberColumn},
	}}
	err := validateTable("vendas", invalid)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reserved")
}
