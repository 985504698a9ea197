package system

import "time"

// Phase defines execution ordering within a single tick.
type Phase int

const (
	PhaseInput   Phase = iota // 0: apply player input
	PhaseEvents               // 1: dispatch last tick's events
	PhaseStream               // 2: chunk load/unload around the player
	PhaseUpdate               // 3: physics, AI, pickups
	PhaseMutate               // 4: grass spread/decay
	PhaseResolve              // 5: break countdown, placement
	PhaseCleanup              // 6: destroy queued entities, death check
	PhasePersist              // 7: autosave
)

var phaseNames = [...]string{"input", "events", "stream", "update", "mutate", "resolve", "cleanup", "persist"}

func (p Phase) String() string {
	if p >= 0 && int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return "unknown"
}

// System is the interface every ECS system implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
