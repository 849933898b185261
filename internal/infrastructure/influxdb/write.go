package influxdb

import (
	"strconv"
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// WriteCommandMetric records the outcome of a single robot command publish.
//
// The write is non-blocking; points are batched and sent asynchronously.
// Disconnected clients drop the point silently so dispatch never stalls
// on telemetry.
//
// Parameters:
//   - targetID: Numeric robot identifier the command was addressed to
//   - action: The action string that was published (e.g., "dance")
//   - ok: Whether the publish was acknowledged by the broker
//   - duration: Time from publish call to acknowledgment (or failure)
//
// Example:
//
//	client.WriteCommandMetric(2, "moonwalk_L", true, 8*time.Millisecond)
func (c *Client) WriteCommandMetric(targetID int, action string, ok bool, duration time.Duration) {
	if !c.IsConnected() {
		return
	}

	result := "failure"
	if ok {
		result = "success"
	}

	point := write.NewPoint(
		"robot_commands",
		map[string]string{
			"robot_id": strconv.Itoa(targetID),
			"action":   action,
			"result":   result,
		},
		map[string]interface{}{
			"duration_ms": float64(duration.Microseconds()) / millisecondsPerSecond,
			"success":     ok,
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}

// WritePoint writes a custom point with full control over tags and fields.
//
// Use this for measurements that don't fit the helper methods.
func (c *Client) WritePoint(measurement string, tags map[string]string, fields map[string]interface{}) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(measurement, tags, fields, time.Now())
	c.writeAPI.WritePoint(point)
}
