package livefeed

import (
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/iIonel/EventReport/internal/models"
)

// SnapshotToken фиксирует момент, когда был отправлен запрос на перезагрузку
type SnapshotToken struct {
	seq uint64
}

type entry struct {
	event models.Event
	seq   uint64
}

// Store объединяет два потока событий: полные перезагрузки и push-уведомления.
// Для каждого id побеждает последнее пришедшее значение; push, полученный после
// отправки запроса перезагрузки, новее ответа на этот запрос.
type Store struct {
	mu           sync.RWMutex
	seq          uint64
	lastSnapshot uint64
	events       map[uuid.UUID]entry
}

func NewStore() *Store {
	return &Store{events: make(map[uuid.UUID]entry)}
}

// BeginSnapshot вызывается непосредственно перед запросом полного списка
func (s *Store) BeginSnapshot() SnapshotToken {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	return SnapshotToken{seq: s.seq}
}

// ApplySnapshot заменяет состояние результатом перезагрузки. Возвращает false,
// если уже был применен снимок, запрошенный позже.
func (s *Store) ApplySnapshot(token SnapshotToken, events []models.Event) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if token.seq <= s.lastSnapshot {
		return false
	}
	s.lastSnapshot = token.seq

	next := make(map[uuid.UUID]entry, len(events))
	for _, e := range events {
		next[e.ID] = entry{event: e, seq: token.seq}
	}
	// push-события, полученные после запроса, остаются и перекрывают снимок
	for id, cur := range s.events {
		if cur.seq > token.seq {
			next[id] = cur
		}
	}
	s.events = next
	return true
}

// ApplyPush добавляет или заменяет событие, пришедшее из push-канала
func (s *Store) ApplyPush(event models.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.events[event.ID] = entry{event: event, seq: s.seq}
}

// Events возвращает объединенный набор: сначала новые по reported_at
func (s *Store) Events() []models.Event {
	s.mu.RLock()
	out := make([]models.Event, 0, len(s.events))
	for _, e := range s.events {
		out = append(out, e.event)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].ReportedAt.Equal(out[j].ReportedAt) {
			return out[i].ReportedAt.After(out[j].ReportedAt)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.events)
}
