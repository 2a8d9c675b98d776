package game

// Msg is an input event for the reducer. The set of implementations is
// closed: only the types in this file satisfy it.
type Msg interface {
	isMsg()
}

// KeyDownMsg reports a key press.
type KeyDownMsg struct {
	Key Key
}

// KeyUpMsg reports a key release.
type KeyUpMsg struct {
	Key Key
}

// TickMsg advances the simulation by one frame.
type TickMsg struct{}

// RestartGameMsg throws the match away and starts a new one.
type RestartGameMsg struct{}

// StartNextRoundMsg starts the next round of the current match.
type StartNextRoundMsg struct{}

func (KeyDownMsg) isMsg()        {}
func (KeyUpMsg) isMsg()          {}
func (TickMsg) isMsg()           {}
func (RestartGameMsg) isMsg()    {}
func (StartNextRoundMsg) isMsg() {}
