// Package lifecycle tracks where the HTTP server is in its shutdown sequence.
package lifecycle

import "sync/atomic"

type ServerState int32

const (
	ServerStateReady ServerState = iota + 1
	ServerStateInGracePeriod
	ServerStateInCleanupPeriod
)

type State struct {
	value atomic.Int32
}

func New() *State {
	return &State{}
}

func (s *State) Set(state ServerState) {
	s.value.Store(int32(state))
}

func (s *State) Get() ServerState {
	return ServerState(s.value.Load())
}
