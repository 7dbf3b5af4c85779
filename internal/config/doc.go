// Soundtrail - Personal Listening History Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundtrail

/*
Package config loads Soundtrail configuration with Koanf v2.

Sources are layered, later layers winning:

 1. Built-in defaults (defaultConfig)
 2. Optional YAML file: $CONFIG_PATH, ./config.yaml, /etc/soundtrail/config.yaml
 3. Environment variables, mapped explicitly by envTransformFunc

Only mapped environment variables are read; anything else in the process
environment is ignored.

Common variables:

	DATASET_PATH        local CSV or JSON export
	DATASET_URL         http(s) URL of the export
	DATASET_FORMAT      auto, csv or json
	DATASET_TIMEZONE    IANA zone used for day bucketing (default Local)
	SNAPSHOT_PATH       Badger directory for the parsed-dataset snapshot
	STORE_BACKEND       memory or duckdb
	DUCKDB_PATH         DuckDB file for the duckdb backend (empty = in-memory)
	HTTP_HOST, HTTP_PORT, HTTP_TIMEOUT
	CORS_ORIGINS        comma-separated
	RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT
	CACHE_TTL, CACHE_MAX_ENTRIES
	LOG_LEVEL, LOG_FORMAT, LOG_CALLER

Example:

	cfg, err := config.LoadWithKoanf()
	if err != nil {
	    logging.Fatal().Err(err).Msg("Failed to load configuration")
	}
*/
package config
