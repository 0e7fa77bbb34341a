// Package model holds observable runtime settings shared between the hosts
// and the monitor API.
package model

import (
	"sync"

	"midiglow/internal/common"
)

// Model is the base for observable settings objects: subscribers are told
// that something changed and read the new values through the getters.
type Model struct {
	observersMu sync.Mutex
	observers   common.ObserverList[func()]
}

// Subscribe registers a callback invoked on every update.
func (m *Model) Subscribe(callback func()) common.SubscriptionToken {
	m.observersMu.Lock()
	defer m.observersMu.Unlock()

	return m.observers.Subscribe(callback)
}

// Unsubscribe cancels an update subscription.
func (m *Model) Unsubscribe(token common.SubscriptionToken) {
	m.observersMu.Lock()
	defer m.observersMu.Unlock()

	m.observers.Unsubscribe(token)
}

// NotifyObservers invokes every subscribed callback. Called by embedding
// types after a setter, outside their data lock so observers can call
// getters without deadlocking.
func (m *Model) NotifyObservers() {
	m.observersMu.Lock()
	defer m.observersMu.Unlock()

	m.observers.NotifyObservers(func(callback func()) {
		callback()
	})
}
