// Soundtrail - Personal Listening History Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundtrail

package playimport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
)

// ErrTooLarge is returned when an export exceeds the configured byte limit.
var ErrTooLarge = errors.New("export exceeds size limit")

// readLimited reads all of r, failing with ErrTooLarge past limit bytes.
// A limit of zero or less means unlimited.
func readLimited(r io.Reader, limit int64) ([]byte, error) {
	if limit <= 0 {
		return io.ReadAll(r)
	}
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrTooLarge, limit)
	}
	return data, nil
}

func readFile(path string, limit int64) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	data, err := readLimited(f, limit)
	if err != nil {
		return nil, fmt.Errorf("read dataset %s: %w", path, err)
	}
	return data, nil
}

// fetchURL downloads the export and returns the body with its content type.
func fetchURL(ctx context.Context, client *http.Client, url string, limit int64) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "text/csv, application/json;q=0.9, */*;q=0.5")

	resp, err := client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("fetch dataset: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("fetch dataset: unexpected status %d", resp.StatusCode)
	}
	if limit > 0 && resp.ContentLength > limit {
		return nil, "", fmt.Errorf("%w: content length %d", ErrTooLarge, resp.ContentLength)
	}

	data, err := readLimited(resp.Body, limit)
	if err != nil {
		return nil, "", fmt.Errorf("read dataset body: %w", err)
	}
	return data, resp.Header.Get("Content-Type"), nil
}
