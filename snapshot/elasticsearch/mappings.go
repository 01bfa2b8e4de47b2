package elasticsearch

import (
	"fmt"

	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"hermannm.dev/querybuilder/snapshot"
	"hermannm.dev/wrap"
)

func columnsToElasticMappings(columns []snapshot.Column) (*types.TypeMapping, error) {
	mappings := new(types.TypeMapping)
	mappings.Properties = make(map[string]types.Property, len(metadataFields)+len(columns))

	mappings.Properties[SnapshotIDField] = types.NewKeywordProperty()
	mappings.Properties[TakenAtField] = types.NewDateProperty()
	mappings.Properties[QuerySQLField] = types.NewTextProperty()
	mappings.Properties[RowNumberField] = types.NewLongNumberProperty()

	for _, column := range columns {
		property, err := dataTypeToElasticProperty(column.DataType)
		if err != nil {
			return nil, wrap.Errorf(
				err,
				"failed to convert data type to Elasticsearch property for column '%s'",
				column.Name,
			)
		}

		mappings.Properties[column.Name] = property
	}

	return mappings, nil
}

func dataTypeToElasticProperty(dataType snapshot.DataType) (types.Property, error) {
	switch dataType {
	case snapshot.DataTypeText:
		return types.NewKeywordProperty(), nil
	case snapshot.DataTypeFloat:
		return types.NewDoubleNumberProperty(), nil
	case snapshot.DataTypeTimestamp:
		return types.NewDateProperty(), nil
	default:
		return nil, fmt.Errorf("unrecognized data type '%v'", dataType)
	}
}
