// Package inventory serves the /components endpoint: a read-only JSON listing
// of every entity registered on the node.
//
// A request walks the entity registry kind by kind with an Iterator, projects
// each entity to a Record, appends it to a Builder and sends the finalized
// document:
//
//	{"components":[{"type":"sensor","object_id":"temp1","name":"Temp 1"}]}
//
// Kinds are visited in entity.SupportedKinds order and entities within a kind
// in registration order. Every request builds a fresh document; nothing is
// cached between requests.
//
// Component attaches the Router to a web server at startup. Publisher pushes
// the same document to MQTT and kind counts to InfluxDB on an interval.
package inventory
