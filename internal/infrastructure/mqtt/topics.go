package mqtt

import "strings"

// Topic prefixes.
const (
	// TopicPrefixCore is the base for topics the node publishes data on.
	TopicPrefixCore = "graylogic/core"

	// TopicPrefixSystem is the base for system topics.
	TopicPrefixSystem = "graylogic/system"
)

// Topics provides builders for the node's MQTT topics.
//
//	topic := mqtt.Topics{}.Components()
//	// Returns: "graylogic/core/components"
type Topics struct{}

// Components returns the retained topic carrying the inventory document.
func (Topics) Components() string {
	return TopicPrefixCore + "/components"
}

// ComponentsForSite scopes the inventory topic to one site.
func (Topics) ComponentsForSite(siteID string) string {
	return TopicPrefixCore + "/components/" + siteID
}

// SystemStatus returns the node status topic used for online/offline and LWT.
func (Topics) SystemStatus() string {
	return TopicPrefixSystem + "/status"
}

// validatePublishTopic rejects empty topics and MQTT wildcards, which are
// only valid in subscriptions.
func validatePublishTopic(topic string) error {
	if topic == "" || strings.ContainsAny(topic, "+#") {
		return ErrInvalidTopic
	}
	return nil
}
