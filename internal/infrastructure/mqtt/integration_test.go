//go:build integration

package mqtt

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/nerrad567/gray-logic-match/internal/infrastructure/config"
)

// Integration tests for MQTT connection and delivery behaviour.
// These tests require a running MQTT broker at 127.0.0.1:1883.
//
// Run with:
//   go test -tags=integration -v ./internal/infrastructure/mqtt/...
//
// Note: Some tests may be flaky in CI due to timing dependencies.
// Consider running with: go test -tags=integration -count=1 -v ...

func integrationConfig() config.MQTTConfig {
	return config.MQTTConfig{
		Broker: config.MQTTBrokerConfig{
			Host:     "127.0.0.1",
			Port:     1883,
			ClientID: "graymatch-integration-test",
			TLS:      false,
		},
		Auth: config.MQTTAuthConfig{
			Username: "",
			Password: "",
		},
		QoS: 1,
		Reconnect: config.MQTTReconnectConfig{
			InitialDelay: 1,
			MaxDelay:     5,
		},
	}
}

func TestIntegration_ConnectClose(t *testing.T) {
	cfg := integrationConfig()

	client, err := Connect(cfg)
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}

	if !client.IsConnected() {
		t.Error("IsConnected() = false, want true")
	}

	if err := client.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}

	if client.IsConnected() {
		t.Error("IsConnected() = true after Close(), want false")
	}
}

func TestIntegration_ConnectRefused(t *testing.T) {
	cfg := integrationConfig()
	cfg.Broker.Port = 19999

	_, err := Connect(cfg)
	if err == nil {
		t.Fatal("Connect() expected error for refused connection")
	}

	if !errors.Is(err, ErrConnectionFailed) {
		t.Errorf("Connect() error = %v, want ErrConnectionFailed", err)
	}
}

func TestIntegration_HealthCheck(t *testing.T) {
	cfg := integrationConfig()
	cfg.Broker.ClientID = "graymatch-int-health"

	client, err := Connect(cfg)
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	defer client.Close()

	if err := client.HealthCheck(context.Background()); err != nil {
		t.Errorf("HealthCheck() error = %v, want nil", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := client.HealthCheck(ctx); err == nil {
		t.Error("HealthCheck() expected error for cancelled context")
	}
}

func TestIntegration_SubscriptionTracking(t *testing.T) {
	cfg := integrationConfig()
	cfg.Broker.ClientID = "graymatch-int-sub-track"

	client, err := Connect(cfg)
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	defer client.Close()

	topics := []string{
		"graymatch/int/test/topic1",
		"graymatch/int/test/topic2",
		"graymatch/int/test/topic3",
	}

	handler := func(string, []byte) error { return nil }

	for _, topic := range topics {
		if err := client.Subscribe(topic, 1, handler); err != nil {
			t.Fatalf("Subscribe(%s) error = %v", topic, err)
		}
	}

	if client.SubscriptionCount() != 3 {
		t.Errorf("SubscriptionCount() = %d, want 3", client.SubscriptionCount())
	}

	if err := client.Unsubscribe(topics[0]); err != nil {
		t.Fatalf("Unsubscribe() error = %v", err)
	}

	if client.HasSubscription(topics[0]) {
		t.Error("HasSubscription() = true after Unsubscribe(), want false")
	}
	if client.SubscriptionCount() != 2 {
		t.Errorf("SubscriptionCount() = %d, want 2", client.SubscriptionCount())
	}
}

func TestIntegration_RequestResultRoundtrip(t *testing.T) {
	cfg := integrationConfig()
	cfg.Broker.ClientID = "graymatch-int-pub"

	pubClient, err := Connect(cfg)
	if err != nil {
		t.Fatalf("Connect() publisher error = %v", err)
	}
	defer pubClient.Close()

	cfg.Broker.ClientID = "graymatch-int-sub"
	subClient, err := Connect(cfg)
	if err != nil {
		t.Fatalf("Connect() subscriber error = %v", err)
	}
	defer subClient.Close()

	topic := Topics{}.MatchResult("req-roundtrip")
	expectedPayload := `{"request_id":"req-roundtrip"}`
	received := make(chan string, 1)

	err = subClient.Subscribe(topic, 1, func(t string, payload []byte) error {
		received <- string(payload)
		return nil
	})
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}

	// Give subscription time to register
	time.Sleep(100 * time.Millisecond)

	if err := pubClient.PublishString(topic, expectedPayload, 1, false); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	select {
	case payload := <-received:
		if payload != expectedPayload {
			t.Errorf("Received payload = %q, want %q", payload, expectedPayload)
		}
	case <-time.After(5 * time.Second):
		t.Error("Timeout waiting for message")
	}
}

func TestIntegration_WildcardResultSubscription(t *testing.T) {
	cfg := integrationConfig()
	cfg.Broker.ClientID = "graymatch-int-wild-pub"

	pubClient, err := Connect(cfg)
	if err != nil {
		t.Fatalf("Connect() publisher error = %v", err)
	}
	defer pubClient.Close()

	cfg.Broker.ClientID = "graymatch-int-wild-sub"
	subClient, err := Connect(cfg)
	if err != nil {
		t.Fatalf("Connect() subscriber error = %v", err)
	}
	defer subClient.Close()

	var receivedMu sync.Mutex
	receivedTopics := make(map[string]bool)

	err = subClient.Subscribe(Topics{}.AllMatchResults(), 1, func(topic string, payload []byte) error {
		receivedMu.Lock()
		receivedTopics[topic] = true
		receivedMu.Unlock()
		return nil
	})
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}

	time.Sleep(100 * time.Millisecond)

	topics := []string{
		Topics{}.MatchResult("req-1"),
		Topics{}.MatchResult("req-2"),
		Topics{}.MatchResult("req-3"),
	}

	for _, topic := range topics {
		if err := pubClient.PublishString(topic, `{}`, 1, false); err != nil {
			t.Fatalf("Publish(%s) error = %v", topic, err)
		}
	}

	time.Sleep(500 * time.Millisecond)

	receivedMu.Lock()
	defer receivedMu.Unlock()

	for _, topic := range topics {
		if !receivedTopics[topic] {
			t.Errorf("Did not receive message for topic %s", topic)
		}
	}
}

func TestIntegration_HandlerError(t *testing.T) {
	cfg := integrationConfig()
	cfg.Broker.ClientID = "graymatch-int-handler-err"

	client, err := Connect(cfg)
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	defer client.Close()

	topic := "graymatch/int/test/handler-error"
	handlerCalled := make(chan struct{}, 1)

	err = client.Subscribe(topic, 1, func(t string, p []byte) error {
		handlerCalled <- struct{}{}
		return errors.New("handler error")
	})
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}

	time.Sleep(100 * time.Millisecond)

	if err := client.PublishString(topic, "test", 1, false); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	select {
	case <-handlerCalled:
	case <-time.After(2 * time.Second):
		t.Error("Handler was not called")
	}
}
