// Package state tracks which optional services a call may still use.
package state

import "sync"

type Service int

const (
	Decisions Service = iota
)

type State struct {
	sync.RWMutex

	Decisions bool
}

func NewState() *State {
	return &State{
		Decisions: true,
	}
}

func (s *State) Get(svc Service) bool {
	s.RLock()
	defer s.RUnlock()
	{
		switch svc {
		case Decisions:
			return s.Decisions
		}
	}
	return false
}

func (s *State) Set(svc Service, state bool) {
	s.Lock()
	defer s.Unlock()
	{
		switch svc {
		case Decisions:
			s.Decisions = state
		}
	}
}
