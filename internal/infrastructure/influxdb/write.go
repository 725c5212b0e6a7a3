package influxdb

import (
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// WriteStageMetric records a single pipeline stage execution.
//
// This is the per-stage instrumentation feed: entity counts entering and
// leaving the stage plus elapsed time. The write is non-blocking; data is
// batched and sent asynchronously.
//
// Parameters:
//   - requestID: The match request this stage ran for
//   - stage: Stage name (e.g., "type_filter", "space_filter", "name_match")
//   - entitiesIn: Pool size entering the stage
//   - entitiesOut: Pool size after the stage
//   - elapsed: Stage wall-clock duration
//
// Example:
//
//	client.WriteStageMetric("req-abc123", "space_filter", 40, 6, 180*time.Microsecond)
func (c *Client) WriteStageMetric(requestID, stage string, entitiesIn, entitiesOut int, elapsed time.Duration) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"match_stage",
		map[string]string{
			"stage": stage,
		},
		map[string]interface{}{
			"request_id":   requestID,
			"entities_in":  entitiesIn,
			"entities_out": entitiesOut,
			"elapsed_us":   elapsed.Microseconds(),
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}

// WriteMatchOutcome records the final result of a match request.
//
// Used for tracking resolution quality over time: top scores trending
// down or the ambiguous rate trending up both indicate catalog or alias
// drift worth investigating.
//
// Parameters:
//   - requestID: The match request identifier
//   - catalogSize: Number of entities in the catalog snapshot
//   - resultCount: Number of ranked results returned
//   - topScore: Composite score of the best candidate (0 when no results)
//   - ambiguous: Whether the top two candidates were too close to call
//   - elapsed: Total match duration
func (c *Client) WriteMatchOutcome(requestID string, catalogSize, resultCount int, topScore float64, ambiguous bool, elapsed time.Duration) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"match_outcome",
		map[string]string{
			"ambiguous": boolTag(ambiguous),
		},
		map[string]interface{}{
			"request_id":   requestID,
			"catalog_size": catalogSize,
			"result_count": resultCount,
			"top_score":    topScore,
			"elapsed_us":   elapsed.Microseconds(),
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}

// WriteCatalogSize records the entity catalog size after a snapshot swap.
//
// Parameters:
//   - source: Where the snapshot came from (e.g., "mqtt", "startup")
//   - count: Number of entities in the new snapshot
func (c *Client) WriteCatalogSize(source string, count int) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"catalog",
		map[string]string{
			"source": source,
		},
		map[string]interface{}{
			"entity_count": count,
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}

// WritePoint writes a custom point with full control over tags and fields.
//
// Use this for custom measurements that don't fit the helper methods.
//
// Parameters:
//   - measurement: The measurement name (table)
//   - tags: Key-value pairs for indexing (low cardinality)
//   - fields: Key-value pairs for the actual data
//
// Example:
//
//	client.WritePoint("system_stats",
//	    map[string]string{"host": "matcher-01"},
//	    map[string]interface{}{"cpu_percent": 45.2, "memory_mb": 512})
func (c *Client) WritePoint(measurement string, tags map[string]string, fields map[string]interface{}) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(measurement, tags, fields, time.Now())
	c.writeAPI.WritePoint(point)
}

// WritePointWithTime writes a custom point with a specific timestamp.
//
// Use this when the timestamp is not "now" (e.g., delayed data).
//
// Parameters:
//   - measurement: The measurement name
//   - tags: Key-value pairs for indexing
//   - fields: Key-value pairs for the data
//   - timestamp: The exact time for this data point
func (c *Client) WritePointWithTime(measurement string, tags map[string]string, fields map[string]interface{}, timestamp time.Time) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(measurement, tags, fields, timestamp)
	c.writeAPI.WritePoint(point)
}

func boolTag(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
