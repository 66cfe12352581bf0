package announce

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/oshokin/radar-turret/internal/config"
	"github.com/oshokin/radar-turret/internal/domain/turret"
	"github.com/oshokin/radar-turret/internal/logger"
)

const (
	// connectMaxElapsed bounds the total time spent retrying the initial
	// broker connection.
	connectMaxElapsed = 10 * time.Second

	// disconnectQuiesceMS is how long Disconnect waits for in-flight
	// messages before dropping the connection.
	disconnectQuiesceMS = 250
)

// Publisher announces detection events to an MQTT broker at QoS 0.
type Publisher struct {
	// client is the shared broker connection.
	client mqtt.Client
	// topic is where detection events are published.
	topic string
}

// detectionMessage is the published payload.
type detectionMessage struct {
	Angle      int    `json:"angle"`
	DistanceCM int    `json:"distance_cm"`
	Mode       string `json:"mode"`
	At         string `json:"at"`
}

// Dial connects to the configured broker, retrying with exponential backoff.
func Dial(ctx context.Context, cfg *config.MQTTConfig) (*Publisher, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(cfg.BrokerURL)
	opts.SetClientID(cfg.ClientID)
	opts.SetCleanSession(true)

	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}

	client := mqtt.NewClient(opts)

	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = connectMaxElapsed

	err := backoff.Retry(func() error {
		if token := client.Connect(); token.Wait() && token.Error() != nil {
			logger.WarnKV(ctx, "Failed to connect to MQTT broker, retrying",
				"broker", cfg.BrokerURL,
				"error", token.Error(),
			)

			return token.Error()
		}

		return nil
	}, backoff.WithContext(policy, ctx))
	if err != nil {
		return nil, fmt.Errorf("connect to mqtt broker: %w", err)
	}

	logger.InfoKV(ctx, "Connected to MQTT broker", "broker", cfg.BrokerURL, "topic", cfg.Topic)

	return &Publisher{
		client: client,
		topic:  cfg.Topic,
	}, nil
}

// Announce publishes the detection fire-and-forget. Failures are logged and
// swallowed so the control loop never couples to broker availability; the
// token wait happens off the caller's goroutine.
func (p *Publisher) Announce(ctx context.Context, det turret.Detection, mode turret.OperatingMode) {
	payload, err := json.Marshal(detectionMessage{
		Angle:      det.Angle,
		DistanceCM: det.DistanceCM,
		Mode:       mode.String(),
		At:         det.At.UTC().Format(time.RFC3339),
	})
	if err != nil {
		logger.WarnKV(ctx, "Failed to encode detection", "error", err)

		return
	}

	token := p.client.Publish(p.topic, 0, false, payload)

	go func() {
		if token.Wait() && token.Error() != nil {
			logger.WarnKV(ctx, "Failed to publish detection", "topic", p.topic, "error", token.Error())
		}
	}()
}

// Close disconnects from the broker.
func (p *Publisher) Close() {
	if p.client.IsConnected() {
		p.client.Disconnect(disconnectQuiesceMS)
	}
}
