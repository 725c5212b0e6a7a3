// Package resolver connects the match engine to the MQTT message bus.
//
// This package handles:
//   - Decoding match requests from the intent pipeline
//   - Running each device query through the match engine against a fresh
//     catalog snapshot
//   - Publishing ranked outcomes on per-request result topics
//   - Ingesting catalog snapshots from the enrichment pipeline
//
// # Message Flow
//
//	graymatch/match/request            → HandleMatchRequest
//	graymatch/match/result/{requestID} ← ranked Response
//	graymatch/catalog/snapshot         → HandleCatalogSnapshot
//
// A request carries one or more device queries (one per device description
// in the utterance); all of them are resolved against the same catalog
// snapshot so a single response is internally consistent.
//
// # Error Handling
//
// Once a request ID is known, failures are reported twice: a Response with
// the Error field set goes out on the result topic so the requester is not
// left waiting, and the error is returned to the MQTT client for handler
// logging. Payloads that cannot be decoded at all are only logged.
//
// # Usage
//
//	svc := resolver.NewService(engine, repo, mqttClient, byte(cfg.MQTT.QoS))
//	svc.SetLogger(logger.With("component", "resolver"))
//	svc.SetMetrics(influxClient)
//	if err := svc.Start(mqttClient); err != nil {
//	    return err
//	}
package resolver
