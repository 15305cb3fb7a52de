package game

import (
	"sync"

	"github.com/google/uuid"
)

// Registry keeps each connected player's game state for the lifetime of the
// process. States are values: readers get a copy, writers swap it wholesale,
// so the lock only guards the map itself.
type Registry struct {
	mu     sync.RWMutex
	states map[uuid.UUID]State
}

func NewRegistry() *Registry {
	return &Registry{states: make(map[uuid.UUID]State)}
}

// Get returns the player's state, or the initial pre-game state when the
// player is unknown.
func (r *Registry) Get(playerID uuid.UUID) State {
	r.mu.RLock()
	state, ok := r.states[playerID]
	r.mu.RUnlock()
	if ok {
		return state
	}
	return NewState()
}

// Put stores the player's next state.
func (r *Registry) Put(playerID uuid.UUID, s State) {
	r.mu.Lock()
	r.states[playerID] = s
	r.mu.Unlock()
}

// Remove drops a player's state. Disconnecting abandons the game.
func (r *Registry) Remove(playerID uuid.UUID) {
	r.mu.Lock()
	delete(r.states, playerID)
	r.mu.Unlock()
}
