package resolver

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nerrad567/gray-logic-match/internal/infrastructure/mqtt"
	"github.com/nerrad567/gray-logic-match/internal/match"
)

// defaultHandleTimeout bounds catalog access for a single message.
const defaultHandleTimeout = 5 * time.Second

// Catalog is the slice of the inventory repository the resolver needs.
type Catalog interface {
	ListEntities(ctx context.Context) ([]match.Entity, error)
	ReplaceAll(ctx context.Context, entities []match.Entity) (int64, error)
}

// Publisher publishes resolver responses. Satisfied by *mqtt.Client.
type Publisher interface {
	Publish(topic string, payload []byte, qos byte, retained bool) error
}

// Subscriber registers the resolver's topic handlers. Satisfied by *mqtt.Client.
type Subscriber interface {
	Subscribe(topic string, qos byte, handler mqtt.MessageHandler) error
}

// Metrics records match instrumentation. Satisfied by *influxdb.Client.
type Metrics interface {
	WriteStageMetric(requestID, stage string, entitiesIn, entitiesOut int, elapsed time.Duration)
	WriteMatchOutcome(requestID string, catalogSize, resultCount int, topScore float64, ambiguous bool, elapsed time.Duration)
	WriteCatalogSize(source string, count int)
}

// Logger is the structured logging surface the resolver uses.
// Compatible with logging.Logger and slog.Logger.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Service ties the match engine to the MQTT surface: it decodes match
// requests, runs each device query against a fresh catalog snapshot, and
// publishes the ranked outcomes on the per-request result topic. It also
// ingests catalog snapshots from the enrichment pipeline.
//
// Thread Safety:
//   - Handlers are invoked concurrently by the MQTT client; the service
//     holds no mutable state of its own, so no synchronisation is needed
//     beyond what the engine and repository already provide.
type Service struct {
	engine  *match.Engine
	catalog Catalog
	pub     Publisher
	metrics Metrics
	logger  Logger
	qos     byte
	timeout time.Duration
}

// NewService creates a resolver over the given engine, catalog and publisher.
// Metrics and logging are optional; attach them with SetMetrics/SetLogger.
func NewService(engine *match.Engine, catalog Catalog, pub Publisher, qos byte) *Service {
	return &Service{
		engine:  engine,
		catalog: catalog,
		pub:     pub,
		logger:  noopLogger{},
		qos:     qos,
		timeout: defaultHandleTimeout,
	}
}

// SetLogger attaches a logger. Call before Start; a nil logger is ignored.
func (s *Service) SetLogger(l Logger) {
	if l != nil {
		s.logger = l
	}
}

// SetMetrics attaches a metrics recorder. Call before Start.
func (s *Service) SetMetrics(m Metrics) {
	s.metrics = m
}

// Start subscribes the resolver's handlers to their topics.
//
// Subscriptions are tracked by the MQTT client and restored automatically
// on reconnect.
func (s *Service) Start(sub Subscriber) error {
	topics := mqtt.Topics{}

	if err := sub.Subscribe(topics.MatchRequest(), s.qos, s.HandleMatchRequest); err != nil {
		return fmt.Errorf("subscribing to match requests: %w", err)
	}
	if err := sub.Subscribe(topics.CatalogSnapshot(), s.qos, s.HandleCatalogSnapshot); err != nil {
		return fmt.Errorf("subscribing to catalog snapshots: %w", err)
	}

	s.logger.Info("resolver started",
		"request_topic", topics.MatchRequest(),
		"snapshot_topic", topics.CatalogSnapshot(),
	)
	return nil
}

// HandleMatchRequest processes one match request message.
//
// The payload is a Request; a missing request_id is replaced with a fresh
// UUID so the response can still be routed. Each device query runs against
// the same catalog snapshot, loaded once per request. Failures after the
// request ID is known are reported both on the result topic (Response.Error)
// and as a returned error for the MQTT client's handler logging.
func (s *Service) HandleMatchRequest(topic string, payload []byte) error {
	started := time.Now()

	var req Request
	if err := json.Unmarshal(payload, &req); err != nil {
		return fmt.Errorf("%w: decoding payload: %w", ErrInvalidRequest, err)
	}

	if req.RequestID == "" {
		req.RequestID = uuid.NewString()
	}

	if len(req.Devices) == 0 {
		s.publishError(req.RequestID, "request contains no device queries")
		return fmt.Errorf("%w: no device queries", ErrInvalidRequest)
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	catalog, err := s.catalog.ListEntities(ctx)
	if err != nil {
		s.publishError(req.RequestID, "catalog unavailable")
		return fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
	}

	resp := Response{
		RequestID: req.RequestID,
		Outcomes:  make([]DeviceOutcome, 0, len(req.Devices)),
	}

	for _, query := range req.Devices {
		outcome, trace, err := s.engine.MatchWithTrace(query, catalog)
		if err != nil {
			s.publishError(req.RequestID, "catalog snapshot rejected by engine")
			return fmt.Errorf("matching query for request %s: %w", req.RequestID, err)
		}

		s.recordMatch(req.RequestID, outcome, trace)

		resp.Outcomes = append(resp.Outcomes, DeviceOutcome{
			Query:     query,
			Results:   outcome.Results,
			Ambiguous: outcome.Ambiguous,
			Stages:    summarizeTrace(trace),
		})
	}

	if err := s.publish(resp); err != nil {
		return err
	}

	s.logger.Info("match request resolved",
		"request_id", req.RequestID,
		"devices", len(req.Devices),
		"catalog_size", len(catalog),
		"elapsed", time.Since(started),
	)
	return nil
}

// HandleCatalogSnapshot processes one catalog snapshot message.
//
// The snapshot replaces the stored catalog transactionally; an invalid
// snapshot (duplicate or empty entity IDs) is rejected by the repository
// and leaves the stored catalog untouched.
func (s *Service) HandleCatalogSnapshot(topic string, payload []byte) error {
	var snap Snapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		return fmt.Errorf("%w: decoding payload: %w", ErrInvalidSnapshot, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	n, err := s.catalog.ReplaceAll(ctx, snap.Entities)
	if err != nil {
		return fmt.Errorf("replacing catalog: %w", err)
	}

	if s.metrics != nil {
		s.metrics.WriteCatalogSize("mqtt", int(n))
	}

	s.logger.Info("catalog snapshot installed", "entities", n)
	return nil
}

// recordMatch forwards one query's trace to the metrics recorder.
func (s *Service) recordMatch(requestID string, outcome match.RankedOutcome, trace *match.Trace) {
	if s.metrics == nil || trace == nil {
		return
	}

	for _, st := range trace.Stages {
		s.metrics.WriteStageMetric(requestID, st.Stage, st.In, st.Out, st.Elapsed)
	}

	topScore := 0.0
	if len(outcome.Results) > 0 {
		topScore = outcome.Results[0].Score
	}
	s.metrics.WriteMatchOutcome(requestID, trace.CatalogSize, len(outcome.Results),
		topScore, outcome.Ambiguous, trace.Elapsed)
}

// publish marshals and sends a response on its per-request result topic.
func (s *Service) publish(resp Response) error {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("encoding response for request %s: %w", resp.RequestID, err)
	}

	topic := mqtt.Topics{}.MatchResult(resp.RequestID)
	if err := s.pub.Publish(topic, data, s.qos, false); err != nil {
		return fmt.Errorf("publishing response for request %s: %w", resp.RequestID, err)
	}
	return nil
}

// publishError best-effort publishes an error response. The original
// failure is what the caller reports; a publish failure here is only logged.
func (s *Service) publishError(requestID, message string) {
	if err := s.publish(Response{RequestID: requestID, Error: message}); err != nil {
		s.logger.Warn("failed to publish error response",
			"request_id", requestID,
			"error", err,
		)
	}
}
