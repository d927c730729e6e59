// Package eventbus provides the process-wide event bus used for session
// lifecycle events. Topics are plain strings such as "session.login".
package eventbus

import (
	"sync"

	evbus "github.com/asaskevich/EventBus"
)

// Topics published by the session domain.
const (
	TopicLogin          = "session.login"
	TopicLogout         = "session.logout"
	TopicRegister       = "session.register"
	TopicRestoreCorrupt = "session.restore_corrupt"
)

var (
	instance evbus.Bus
	asyncBus *AsyncEventBus
	once     sync.Once
)

func initBuses() {
	once.Do(func() {
		instance = New()
		asyncBus = NewAsyncEventBus(4)
		asyncBus.Start()
	})
}

// Get returns the shared synchronous event bus.
func Get() evbus.Bus {
	initBuses()
	return instance
}

// GetAsync returns the shared asynchronous event bus.
func GetAsync() *AsyncEventBus {
	initBuses()
	return asyncBus
}

// New creates a fresh synchronous event bus, mainly for tests that need
// isolation from the shared instance.
func New() evbus.Bus {
	return evbus.New()
}

// Publish sends an event on the shared synchronous bus.
func Publish(topic string, args ...interface{}) {
	Get().Publish(topic, args...)
}

// PublishAsync queues an event on the shared asynchronous bus.
func PublishAsync(topic string, args ...interface{}) {
	GetAsync().PublishAsync(topic, args...)
}

// Subscribe registers a handler on the shared synchronous bus.
func Subscribe(topic string, fn interface{}) error {
	return Get().Subscribe(topic, fn)
}

// Unsubscribe removes a handler from the shared synchronous bus.
func Unsubscribe(topic string, fn interface{}) error {
	return Get().Unsubscribe(topic, fn)
}

// Shutdown stops the asynchronous workers.
func Shutdown() {
	if asyncBus != nil {
		asyncBus.Stop()
	}
}
