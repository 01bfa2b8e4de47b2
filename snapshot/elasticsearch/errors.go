package elasticsearch

import (
	"errors"
	"fmt"

	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"hermannm.dev/wrap"
)

func wrapElasticError(wrapped error, message string) error {
	return wrap.Error(describeElasticError(wrapped), message)
}

// Replaces the client's error text with the response status and error cause. Root causes are only
// listed when they say something the top-level cause does not.
func describeElasticError(err error) error {
	var elasticErr *types.ElasticsearchError
	if !errors.As(err, &elasticErr) {
		return err
	}

	cause := describeErrorCause(elasticErr.ErrorCause.Reason, elasticErr.ErrorCause.Type)
	message := fmt.Sprintf("Elasticsearch responded with status %d: %s", elasticErr.Status, cause)

	var rootCauses []error
	for _, rootCause := range elasticErr.ErrorCause.RootCause {
		if description := describeErrorCause(rootCause.Reason, rootCause.Type); description != cause {
			rootCauses = append(rootCauses, errors.New(description))
		}
	}

	if len(rootCauses) == 0 {
		return errors.New(message)
	}
	return wrap.Errors(message, rootCauses...)
}

func describeErrorCause(reason *string, errorType string) string {
	if reason == nil {
		return errorType
	}
	return fmt.Sprintf("%s (%s)", *reason, errorType)
}

func isElasticErrorType(err error, errorType string) bool {
	var elasticErr *types.ElasticsearchError
	return errors.As(err, &elasticErr) && elasticErr.ErrorCause.Type == errorType
}
