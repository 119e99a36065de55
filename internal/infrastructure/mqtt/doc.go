// Package mqtt provides the MQTT publishing connection for the components
// node.
//
// This package manages:
//   - Connection to the broker with auto-reconnect
//   - Publishing with QoS and payload validation
//   - Last Will and Testament (LWT) so subscribers see the node go offline
//
// The node only publishes. Its inventory document is sent retained to
// graylogic/core/components so late subscribers get the current list.
//
// # Usage
//
//	client, err := mqtt.Connect(cfg.MQTT)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	client.PublishRetained(mqtt.Topics{}.Components(), body)
//
// Broker-backed tests live behind the integration build tag:
//
//	go test -tags=integration ./internal/infrastructure/mqtt/...
package mqtt
