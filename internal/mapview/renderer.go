package mapview

import (
	"sync"
)

// LatLng - точка на карте в порядке (широта, долгота)
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Marker struct {
	ID       string `json:"id"`
	Position LatLng `json:"position"`
	Color    string `json:"color"`
	Title    string `json:"title"`
}

// Renderer - внешняя поверхность отрисовки карты. Ядро не знает, как именно
// карта рисуется, и общается с ней только через этот интерфейс.
type Renderer interface {
	Render(center LatLng, zoom int, markers []Marker) error
	OnTap(callback func(lat, lng float64)) Subscription
}

// Subscription отменяет подписку на нажатия
type Subscription interface {
	Unsubscribe()
}

// TapDispatcher хранит подписчиков на нажатия по карте.
// Реализации Renderer встраивают его и вызывают Dispatch.
type TapDispatcher struct {
	mu        sync.RWMutex
	nextID    int
	callbacks map[int]func(lat, lng float64)
}

type tapSubscription struct {
	once       sync.Once
	dispatcher *TapDispatcher
	id         int
}

func (s *tapSubscription) Unsubscribe() {
	s.once.Do(func() {
		s.dispatcher.mu.Lock()
		delete(s.dispatcher.callbacks, s.id)
		s.dispatcher.mu.Unlock()
	})
}

func (d *TapDispatcher) Subscribe(callback func(lat, lng float64)) Subscription {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.callbacks == nil {
		d.callbacks = make(map[int]func(lat, lng float64))
	}
	d.nextID++
	d.callbacks[d.nextID] = callback
	return &tapSubscription{dispatcher: d, id: d.nextID}
}

// Dispatch передает нажатие всем текущим подписчикам
func (d *TapDispatcher) Dispatch(lat, lng float64) {
	d.mu.RLock()
	callbacks := make([]func(lat, lng float64), 0, len(d.callbacks))
	for _, cb := range d.callbacks {
		callbacks = append(callbacks, cb)
	}
	d.mu.RUnlock()

	for _, cb := range callbacks {
		cb(lat, lng)
	}
}

func (d *TapDispatcher) Subscribers() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.callbacks)
}
