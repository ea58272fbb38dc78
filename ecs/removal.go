package ecs

// QueueRemoval marks e for removal at the end of the current tick. Queuing
// the same entity twice is harmless.
func QueueRemoval(w *World, e Entity) {
	if w == nil || !w.entities.isAlive(e) {
		return
	}
	for _, queued := range w.removals {
		if queued == e {
			return
		}
	}
	w.removals = append(w.removals, e)
}

// PendingRemoval reports whether e is queued for removal this tick.
func PendingRemoval(w *World, e Entity) bool {
	if w == nil {
		return false
	}
	for _, queued := range w.removals {
		if queued == e {
			return true
		}
	}
	return false
}

// FlushRemovals destroys every queued entity and returns how many were
// removed.
func FlushRemovals(w *World) int {
	if w == nil || len(w.removals) == 0 {
		return 0
	}
	queued := w.removals
	w.removals = nil
	removed := 0
	for _, e := range queued {
		if DestroyEntity(w, e) {
			removed++
		}
	}
	return removed
}
