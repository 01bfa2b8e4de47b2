package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"hermannm.dev/devlog/log"
	"hermannm.dev/wrap"
)

func (client Client) sendRequest(
	ctx context.Context,
	method string,
	path string,
	body any,
	target any,
) error {
	var bodyReader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return wrap.Error(err, "failed to serialize request body")
		}
		bodyReader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, client.baseURL+path, bodyReader)
	if err != nil {
		return wrap.Errorf(err, "failed to create request for %s %s", method, path)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	res, err := client.httpClient.Do(req)
	if err != nil {
		return wrap.Errorf(err, "%s %s failed", method, path)
	}
	defer res.Body.Close()

	log.Debug(
		"query API responded",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", res.StatusCode),
		slog.Duration("duration", time.Since(start)),
	)

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return wrap.Errorf(err, "failed to read response body from %s %s", method, path)
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return newResponseError(res.StatusCode, resBody)
	}

	if err := json.Unmarshal(resBody, target); err != nil {
		return wrap.Errorf(err, "failed to parse response body from %s %s", method, path)
	}
	return nil
}
