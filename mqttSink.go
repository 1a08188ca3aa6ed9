package main

import (
	"encoding/json"
	"time"

	"github.com/denisbrodbeck/machineid"
	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/pkg/errors"
)

const (
	appID          = "bcdsegment"
	dMQTTConnect   = 5 * time.Second
	dMQTTPublish   = time.Second
	mqttDisconnect = 250 // ms
)

// mqttSink publishes every status, retained, so a late subscriber sees
// the current digit straight away. The broker is fed from its own
// goroutine; when it falls behind only the newest status is kept.
type mqttSink struct {
	client  paho.Client
	topic   string
	pending chan displayStatus
}

func newSink(client paho.Client, topic string) *mqttSink {
	return &mqttSink{client: client, topic: topic, pending: make(chan displayStatus, 1)}
}

// mqttClientID is stable per machine without giving the machine id away
func mqttClientID() string {
	id, err := machineid.ProtectedID(appID)
	if err != nil || len(id) < 12 {
		return appID
	}
	return appID + "-" + id[:12]
}

func newMQTTSink(settings configSettings) (*mqttSink, error) {
	opts := paho.NewClientOptions().
		AddBroker(settings.GetString(sMQTTBroker)).
		SetClientID(mqttClientID()).
		SetConnectTimeout(dMQTTConnect).
		SetAutoReconnect(true)

	client := paho.NewClient(opts)
	token := client.Connect()
	token.Wait()
	if err := token.Error(); err != nil {
		return nil, errors.Wrapf(err, "mqtt connect %s", settings.GetString(sMQTTBroker))
	}
	return newSink(client, settings.GetString(sMQTTTopic)), nil
}

func statusPayload(st displayStatus) ([]byte, error) {
	return json.Marshal(st)
}

// publish queues st for the broker and never blocks the display loop
func (ms *mqttSink) publish(st displayStatus) error {
	for true {
		select {
		case ms.pending <- st:
			return nil
		default:
		}
		// replace the stale one
		select {
		case <-ms.pending:
		default:
		}
	}
	return nil
}

func (ms *mqttSink) send(st displayStatus) error {
	payload, err := statusPayload(st)
	if err != nil {
		return err
	}
	token := ms.client.Publish(ms.topic, 0, true, payload)
	if !token.WaitTimeout(dMQTTPublish) {
		return errors.Errorf("mqtt publish to %s timed out", ms.topic)
	}
	return errors.Wrap(token.Error(), "mqtt publish")
}

func (ms *mqttSink) close() {
	ms.client.Disconnect(mqttDisconnect)
}

func startMQTTSink(rt runtimeConfig, ms *mqttSink) {
	rt.logger = &ThreadLogger{name: "MQTT"}
	rt.wg.Add(1)
	go runMQTTSink(rt, ms)
}

func runMQTTSink(rt runtimeConfig, ms *mqttSink) {
	defer rt.wg.Done()

	for true {
		select {
		case <-rt.comms.quit:
			rt.logger.Println("quit from runMQTTSink")
			return
		case st := <-ms.pending:
			if err := ms.send(st); err != nil {
				rt.logger.Printf("status publish: %v", err)
			}
		}
	}
}
