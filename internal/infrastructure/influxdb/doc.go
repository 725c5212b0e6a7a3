// Package influxdb provides InfluxDB connectivity for the matcher service.
//
// It wraps the official influxdb-client-go v2 library with matcher-specific
// patterns for connection management, metric writing, and health monitoring.
//
// # Purpose
//
// This package handles time-series data storage for:
//   - Per-stage match pipeline metrics (pool counts in/out, elapsed time)
//   - Match outcomes (top score, result count, ambiguity rate)
//   - Catalog snapshot sizes
//
// # Usage
//
//	cfg := config.InfluxDBConfig{
//	    URL:    "http://localhost:8086",
//	    Token:  "your-token",
//	    Org:    "graymatch",
//	    Bucket: "metrics",
//	}
//
//	client, err := influxdb.Connect(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	// Record a stage execution
//	client.WriteStageMetric("req-abc123", "space_filter", 40, 6, elapsed)
//
// # Thread Safety
//
// All methods are safe for concurrent use from multiple goroutines.
// The underlying write API uses non-blocking batched writes.
//
// # Error Handling
//
// Write operations are non-blocking and batch errors are logged via a callback.
// Connection and health check errors are returned directly.
//
// # Performance
//
// Writes are batched according to config.yaml settings (batch_size, flush_interval).
// This keeps the metrics path off the match hot path entirely.
package influxdb
