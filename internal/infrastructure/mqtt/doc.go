// Package mqtt provides MQTT client connectivity for the matcher service.
//
// This package manages:
//   - Connection to Mosquitto broker with auto-reconnect
//   - Message publishing with QoS guarantees
//   - Topic subscriptions with wildcard support
//   - Last Will and Testament (LWT) for offline detection
//   - Connection health monitoring
//
// # Architecture
//
// The matcher uses MQTT as its only transport: the voice/intent pipeline
// publishes match requests and catalog snapshots, and the matcher
// publishes ranked outcomes back on per-request result topics. The
// broker decouples the matcher from the upstream pipeline.
//
//	Intent Pipeline ↔ MQTT Broker ↔ Matcher
//
// # Security Considerations
//
//   - TLS is required for production deployments (cfg.Broker.TLS=true)
//   - Credentials are validated against broker ACL
//   - Anonymous access is only for local development
//   - Message payloads are not encrypted beyond TLS transport
//
// # Performance Characteristics
//
//   - Connection: <1 second to local broker
//   - Publish latency: <10ms for QoS 1 to local broker
//   - Reconnect: Exponential backoff 1s-60s with jitter
//   - Message throughput: Broker-limited (typically 10K+ msg/sec)
//
// # Usage
//
//	client, err := mqtt.Connect(cfg.MQTT)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	// Subscribe to match requests
//	err = client.Subscribe(mqtt.Topics{}.MatchRequest(), 1,
//	    func(topic string, payload []byte) error {
//	        log.Printf("Received: %s = %s", topic, payload)
//	        return nil
//	    })
//
//	// Publish a ranked outcome
//	topic := mqtt.Topics{}.MatchResult("req-abc123")
//	client.Publish(topic, payload, 1, false)
package mqtt
