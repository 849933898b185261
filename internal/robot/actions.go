package robot

// Action is a robot motion or gesture command.
//
// The vocabulary is closed: the firmware on each ESP32 quadruped matches the
// payload against these exact strings, so the wire format is the action name
// itself with no wrapping.
type Action string

// Command vocabulary understood by the robot firmware.
const (
	ActionForward   Action = "forward"
	ActionTurnLeft  Action = "turn_L"
	ActionHome      Action = "home"
	ActionTurnRight Action = "turn_R"
	ActionBackward  Action = "backward"
	ActionHello     Action = "hello"
	ActionOmniWalk  Action = "omni_walk"
	ActionMoonwalk  Action = "moonwalk_L"
	ActionDance     Action = "dance"
	ActionUpDown    Action = "up_down"
	ActionPushUp    Action = "push_up"
	ActionFrontBack Action = "front_back"
	ActionWaveHand  Action = "wave_hand"
	ActionScared    Action = "scared"
)

// actionDescriptions maps each action to a short human-readable summary,
// used by the tool descriptor surface.
var actionDescriptions = map[Action]string{
	ActionForward:   "walk forward",
	ActionTurnLeft:  "turn left",
	ActionHome:      "return to the neutral standing pose",
	ActionTurnRight: "turn right",
	ActionBackward:  "walk backward",
	ActionHello:     "greet with a hello gesture",
	ActionOmniWalk:  "omnidirectional walk",
	ActionMoonwalk:  "moonwalk to the left",
	ActionDance:     "perform a dance routine",
	ActionUpDown:    "bob the body up and down",
	ActionPushUp:    "do push-ups",
	ActionFrontBack: "rock forward and backward",
	ActionWaveHand:  "wave a front leg",
	ActionScared:    "act scared",
}

// actionOrder preserves the vocabulary in its canonical listing order.
var actionOrder = []Action{
	ActionForward,
	ActionTurnLeft,
	ActionHome,
	ActionTurnRight,
	ActionBackward,
	ActionHello,
	ActionOmniWalk,
	ActionMoonwalk,
	ActionDance,
	ActionUpDown,
	ActionPushUp,
	ActionFrontBack,
	ActionWaveHand,
	ActionScared,
}

// Valid reports whether the action is part of the command vocabulary.
func (a Action) Valid() bool {
	_, ok := actionDescriptions[a]
	return ok
}

// String returns the wire form of the action.
func (a Action) String() string {
	return string(a)
}

// Description returns a short human-readable summary of the action,
// or an empty string for unknown actions.
func (a Action) Description() string {
	return actionDescriptions[a]
}

// Actions returns the full command vocabulary in canonical order.
// The returned slice is a copy; callers may modify it.
func Actions() []Action {
	out := make([]Action, len(actionOrder))
	copy(out, actionOrder)
	return out
}
