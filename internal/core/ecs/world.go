package ecs

// World holds the enemies and loose items of one map: the id pool, the
// component stores that drop an entity's data when it dies, and the deaths
// queued during the tick. CleanupSystem flushes the queue last.
type World struct {
	pool         *EntityPool
	registry     *Registry
	destroyQueue []EntityID
}

func NewWorld() *World {
	return &World{
		pool:         NewEntityPool(),
		registry:     &Registry{},
		destroyQueue: make([]EntityID, 0, 64),
	}
}

// Registry lists the component stores an entity is removed from on flush.
type Registry struct {
	stores []Removable
}

func (r *Registry) Register(store Removable) {
	r.stores = append(r.stores, store)
}

func (r *Registry) removeAll(id EntityID) {
	for _, s := range r.stores {
		s.Remove(id)
	}
}

func (w *World) Pool() *EntityPool   { return w.pool }
func (w *World) Registry() *Registry { return w.registry }

func (w *World) CreateEntity() EntityID {
	return w.pool.Create()
}

func (w *World) Alive(id EntityID) bool {
	return w.pool.Alive(id)
}

// MarkForDestruction queues an entity for end-of-tick cleanup.
func (w *World) MarkForDestruction(id EntityID) {
	w.destroyQueue = append(w.destroyQueue, id)
}

// FlushDestroyQueue destroys all queued entities and clears their components.
// Called by CleanupSystem at the end of each tick. It returns how many live
// entities were destroyed; duplicates and stale IDs are skipped.
func (w *World) FlushDestroyQueue() int {
	n := 0
	for _, id := range w.destroyQueue {
		if !w.pool.Alive(id) {
			continue
		}
		w.registry.removeAll(id)
		w.pool.Destroy(id)
		n++
	}
	w.destroyQueue = w.destroyQueue[:0]
	return n
}

// Pending returns the number of queued destructions.
func (w *World) Pending() int { return len(w.destroyQueue) }
