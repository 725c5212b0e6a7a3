package mqtt

import "fmt"

// Topic prefixes for the matcher's MQTT surface.
//
// All topics live under the flat scheme: graymatch/{category}/{...}
// matching what the intent pipeline publishes and subscribes to.
const (
	// TopicPrefix is the base for all matcher topics.
	TopicPrefix = "graymatch"

	// TopicPrefixMatch is the base for match request/result topics.
	TopicPrefixMatch = "graymatch/match"

	// TopicPrefixCatalog is the base for catalog snapshot topics.
	TopicPrefixCatalog = "graymatch/catalog"

	// TopicPrefixSystem is the base for system topics.
	TopicPrefixSystem = "graymatch/system"
)

// Topics provides builders for matcher MQTT topics.
// Using these helpers ensures consistent topic naming across the codebase.
//
//	topics := mqtt.Topics{}
//	resultTopic := topics.MatchResult("req-abc123")
//	// Returns: "graymatch/match/result/req-abc123"
type Topics struct{}

// MatchRequest returns the topic the intent pipeline publishes match
// requests to. The resolver subscribes here.
//
// Example: graymatch/match/request
func (Topics) MatchRequest() string {
	return fmt.Sprintf("%s/request", TopicPrefixMatch)
}

// MatchResult returns the per-request topic ranked outcomes are
// published to. Requesters subscribe using their own request ID.
//
// Example: graymatch/match/result/req-abc123
func (Topics) MatchResult(requestID string) string {
	return fmt.Sprintf("%s/result/%s", TopicPrefixMatch, requestID)
}

// CatalogSnapshot returns the topic the enrichment pipeline publishes
// full entity catalog snapshots to.
//
// Example: graymatch/catalog/snapshot
func (Topics) CatalogSnapshot() string {
	return fmt.Sprintf("%s/snapshot", TopicPrefixCatalog)
}

// SystemStatus returns the matcher's status topic (online/offline/LWT).
//
// Example: graymatch/system/status
func (Topics) SystemStatus() string {
	return fmt.Sprintf("%s/status", TopicPrefixSystem)
}

// =============================================================================
// Wildcard Patterns for Subscriptions
// =============================================================================

// AllMatchResults returns a pattern matching every result topic.
//
// Pattern: graymatch/match/result/+
func (Topics) AllMatchResults() string {
	return fmt.Sprintf("%s/result/+", TopicPrefixMatch)
}

// AllTopics returns a pattern matching all matcher topics.
// Use with caution - this receives ALL traffic.
//
// Pattern: graymatch/#
func (Topics) AllTopics() string {
	return TopicPrefix + "/#"
}
