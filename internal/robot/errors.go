package robot

import "errors"

// Sentinel errors for robot operations.
//
// These errors can be checked using errors.Is() for specific handling:
//
//	if errors.Is(err, robot.ErrUnknownAction) {
//	    // Reject the request as a bad action
//	}
var (
	// ErrConnectionUnavailable indicates no usable MQTT connection exists,
	// so no command was attempted for any target.
	ErrConnectionUnavailable = errors.New("robot: mqtt connection unavailable")

	// ErrUnknownAction indicates the action is not in the command vocabulary.
	ErrUnknownAction = errors.New("robot: unknown action")

	// ErrInvalidTarget indicates a target value could not be interpreted as
	// a positive robot identifier.
	ErrInvalidTarget = errors.New("robot: invalid target")

	// ErrRobotNotFound indicates the requested robot does not exist in the registry.
	ErrRobotNotFound = errors.New("robot: not found")

	// ErrRobotExists indicates a robot with the same ID already exists.
	ErrRobotExists = errors.New("robot: already exists")

	// ErrInvalidRobot indicates the robot record failed validation.
	ErrInvalidRobot = errors.New("robot: invalid record")
)
