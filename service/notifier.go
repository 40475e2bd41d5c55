package service

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type BannerKind string

const (
	BannerSuccess BannerKind = "success"
	BannerError   BannerKind = "error"
)

type Banner struct {
	Id        string     `json:"id"`
	Kind      BannerKind `json:"kind"`
	Message   string     `json:"message"`
	CreatedAt time.Time  `json:"created_at"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// Notifier holds the console's global banners. Success banners dismiss themselves after
// the configured duration; error banners stay until dismissed.
type Notifier struct {
	mu          sync.Mutex
	banners     []Banner
	duration    time.Duration
	now         func() time.Time
	subscribers map[chan []Banner]struct{}
}

func NewNotifier(duration time.Duration) *Notifier {
	if duration <= 0 {
		duration = DefaultSuccessWindow
	}
	return &Notifier{
		banners:     []Banner{},
		duration:    duration,
		now:         time.Now,
		subscribers: make(map[chan []Banner]struct{}),
	}
}

func (n *Notifier) Success(message string) Banner {
	banner := n.add(BannerSuccess, message, true)
	time.AfterFunc(n.duration, func() {
		n.Dismiss(banner.Id)
	})
	return banner
}

func (n *Notifier) Error(message string) Banner {
	return n.add(BannerError, message, false)
}

func (n *Notifier) add(kind BannerKind, message string, expires bool) Banner {
	n.mu.Lock()
	createdAt := n.now()
	banner := Banner{
		Id:        uuid.NewString(),
		Kind:      kind,
		Message:   message,
		CreatedAt: createdAt,
	}
	if expires {
		expiresAt := createdAt.Add(n.duration)
		banner.ExpiresAt = &expiresAt
	}
	n.banners = append(n.banners, banner)
	n.broadcastLocked()
	n.mu.Unlock()
	return banner
}

// Dismiss returns false when no banner has the given id.
func (n *Notifier) Dismiss(id string) bool {
	n.mu.Lock()
	found := false
	kept := make([]Banner, 0, len(n.banners))
	for _, b := range n.banners {
		if b.Id == id {
			found = true
			continue
		}
		kept = append(kept, b)
	}
	n.banners = kept
	if found {
		n.broadcastLocked()
	}
	n.mu.Unlock()
	return found
}

func (n *Notifier) Banners() []Banner {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.snapshotLocked()
}

func (n *Notifier) snapshotLocked() []Banner {
	current := n.now()
	output := make([]Banner, 0, len(n.banners))
	for _, b := range n.banners {
		if b.ExpiresAt != nil && !current.Before(*b.ExpiresAt) {
			continue
		}
		output = append(output, b)
	}
	return output
}

// Subscribe returns a channel receiving the banner list after every change. Slow
// subscribers miss intermediate snapshots rather than blocking the notifier.
func (n *Notifier) Subscribe() (<-chan []Banner, func()) {
	ch := make(chan []Banner, 1)
	n.mu.Lock()
	n.subscribers[ch] = struct{}{}
	n.mu.Unlock()
	var once sync.Once
	cancel := func() {
		once.Do(func() {
			n.mu.Lock()
			delete(n.subscribers, ch)
			n.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

// broadcastLocked runs under the same lock as the change it reports, so subscribers see
// snapshots in the order the changes happened.
func (n *Notifier) broadcastLocked() {
	snapshot := n.snapshotLocked()
	for ch := range n.subscribers {
		select {
		case ch <- snapshot:
		default:
			// drop the stale snapshot and replace it with the current one
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- snapshot:
			default:
			}
		}
	}
}
