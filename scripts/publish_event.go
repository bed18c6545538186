// Publishes a test sensor event to the broker so rules can be exercised
// end to end without real hardware.
//
// Usage:
//
//	go run scripts/publish_event.go -broker tcp://localhost:1883 -type motion area=main_office
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

func main() {
	broker := flag.String("broker", "tcp://localhost:1883", "MQTT broker URL")
	eventType := flag.String("type", "motion", "event type (topic segment)")
	flag.Parse()

	condition := map[string]any{}
	for _, arg := range flag.Args() {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			fmt.Fprintf(os.Stderr, "expected key=value, got %q\n", arg)
			os.Exit(1)
		}
		condition[key] = coerce(value)
	}

	opts := mqtt.NewClientOptions().AddBroker(*broker).SetClientID("smartoffice-event-publisher")
	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		fmt.Fprintf(os.Stderr, "connect failed: %v\n", token.Error())
		os.Exit(1)
	}
	defer client.Disconnect(250)

	payload, err := json.Marshal(condition)
	if err != nil {
		fmt.Fprintf(os.Stderr, "marshal failed: %v\n", err)
		os.Exit(1)
	}

	topic := fmt.Sprintf("office/sensors/%s/event", *eventType)
	if token := client.Publish(topic, 1, false, payload); token.Wait() && token.Error() != nil {
		fmt.Fprintf(os.Stderr, "publish failed: %v\n", token.Error())
		os.Exit(1)
	}
	fmt.Printf("published %s to %s\n", payload, topic)
}

func coerce(value string) any {
	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}
	if f, err := strconv.ParseFloat(value, 64); err == nil {
		return f
	}
	return value
}
