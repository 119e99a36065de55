package influxdb

import (
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// Measurement names.
const (
	measurementInventory = "entity_inventory"
)

// WriteEntityInventory records how many entities of kind are registered.
//
// Example:
//
//	client.WriteEntityInventory("sensor", 4)
func (c *Client) WriteEntityInventory(kind string, count int) {
	c.WritePoint(measurementInventory,
		map[string]string{"kind": kind},
		map[string]any{"count": count},
	)
}

// WritePoint writes an arbitrary point stamped with the current time.
// Dropped silently when not connected.
func (c *Client) WritePoint(measurement string, tags map[string]string, fields map[string]any) {
	c.WritePointWithTime(measurement, tags, fields, time.Now())
}

// WritePointWithTime writes an arbitrary point with an explicit timestamp.
func (c *Client) WritePointWithTime(measurement string, tags map[string]string, fields map[string]any, ts time.Time) {
	if !c.IsConnected() {
		return
	}
	c.writeAPI.WritePoint(write.NewPoint(measurement, tags, fields, ts))
}
