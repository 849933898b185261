package mqtt

import "fmt"

// TopicPrefixRobot is the base for all robot command topics.
// The ESP32 firmware subscribes to its own command topic at boot.
const TopicPrefixRobot = "esp32"

// Topics provides builders for robot MQTT topics.
// Using these helpers ensures consistent topic naming across the codebase.
//
//	topic := mqtt.Topics{}.RobotCommand(2)
//	// Returns: "esp32/robot2/sub"
type Topics struct{}

// RobotCommand returns the command topic for a specific robot.
// This is the wire contract with the robot firmware: the payload published
// here is the raw action symbol as a UTF-8 string.
//
// Example: esp32/robot1/sub
func (Topics) RobotCommand(id int) string {
	return fmt.Sprintf("%s/robot%d/sub", TopicPrefixRobot, id)
}
