package usecase

import (
	"sync"

	"github.com/google/uuid"
)

// favoriteNotifier broadcasts a payload-free signal after every favorite
// mutation. There is no replay for late subscribers and no delivery
// guarantee beyond "at least one signal lands after the write": a subscriber
// that has not drained its channel coalesces bursts into one pending signal.
type favoriteNotifier struct {
	mutex       sync.RWMutex
	subscribers map[uuid.UUID]chan struct{}
}

func newFavoriteNotifier() *favoriteNotifier {
	return &favoriteNotifier{
		subscribers: make(map[uuid.UUID]chan struct{}),
	}
}

// subscribe registers a new subscriber and returns its signal channel along
// with an unsubscribe func. Unsubscribing closes the channel.
func (n *favoriteNotifier) subscribe() (<-chan struct{}, func()) {
	id := uuid.New()
	ch := make(chan struct{}, 1)

	n.mutex.Lock()
	n.subscribers[id] = ch
	n.mutex.Unlock()

	unsubscribe := func() {
		n.mutex.Lock()
		defer n.mutex.Unlock()
		if _, ok := n.subscribers[id]; ok {
			delete(n.subscribers, id)
			close(ch)
		}
	}
	return ch, unsubscribe
}

// notify signals every current subscriber without blocking.
func (n *favoriteNotifier) notify() {
	n.mutex.RLock()
	defer n.mutex.RUnlock()
	for _, ch := range n.subscribers {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
