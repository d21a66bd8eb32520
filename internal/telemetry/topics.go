package telemetry

import "fmt"

// StateTopic returns the topic carrying a device's periodic state
// snapshot, for example "observatory/dome/0/state".
func StateTopic(prefix, deviceType string, number int) string {
	return fmt.Sprintf("%s/%s/%d/state", prefix, deviceType, number)
}

// SafetyTopic returns the topic carrying safety verdict changes.
func SafetyTopic(prefix string) string {
	return fmt.Sprintf("%s/events/safety", prefix)
}
