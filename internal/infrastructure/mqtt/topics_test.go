package mqtt

import "testing"

func TestRobotCommandTopic(t *testing.T) {
	tests := []struct {
		id   int
		want string
	}{
		{1, "esp32/robot1/sub"},
		{2, "esp32/robot2/sub"},
		{42, "esp32/robot42/sub"},
	}

	for _, tt := range tests {
		if got := (Topics{}).RobotCommand(tt.id); got != tt.want {
			t.Errorf("RobotCommand(%d) = %q, want %q", tt.id, got, tt.want)
		}
	}
}
