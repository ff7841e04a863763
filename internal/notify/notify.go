// Package notify carries user-visible notifications out of the
// orchestrators. The presentation layer decides how to show them; the
// engine only decides what to say.
package notify

import (
	"fmt"
	"log/slog"
	"sync"
)

// Kind classifies a notification for presentation
type Kind string

// Notification kinds
const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindInfo    Kind = "info"
	KindLevelUp Kind = "levelup"
)

// Notification is one user-visible message. Coins and Exp are optional
// reward payloads shown alongside the message.
type Notification struct {
	Message string
	Kind    Kind
	Coins   int
	Exp     int
}

// Sink receives notifications
type Sink interface {
	Push(n Notification)
}

// Success builds a success notification with reward amounts
func Success(message string, coins, exp int) Notification {
	return Notification{Message: message, Kind: KindSuccess, Coins: coins, Exp: exp}
}

// Successf builds a success notification without reward amounts
func Successf(format string, args ...any) Notification {
	return Notification{Message: fmt.Sprintf(format, args...), Kind: KindSuccess}
}

// Error builds an error notification
func Error(message string) Notification {
	return Notification{Message: message, Kind: KindError}
}

// Errorf builds a formatted error notification
func Errorf(format string, args ...any) Notification {
	return Notification{Message: fmt.Sprintf(format, args...), Kind: KindError}
}

// Info builds an info notification
func Info(message string) Notification {
	return Notification{Message: message, Kind: KindInfo}
}

// Infof builds a formatted info notification
func Infof(format string, args ...any) Notification {
	return Notification{Message: fmt.Sprintf(format, args...), Kind: KindInfo}
}

// LevelUp builds a level-up notification
func LevelUp(message string) Notification {
	return Notification{Message: message, Kind: KindLevelUp}
}

// LevelUpf builds a formatted level-up notification
func LevelUpf(format string, args ...any) Notification {
	return Notification{Message: fmt.Sprintf(format, args...), Kind: KindLevelUp}
}

// Discard is a Sink that drops everything
type Discard struct{}

// Push implements Sink
func (Discard) Push(Notification) {}

// Slog logs notifications through a structured logger
type Slog struct {
	Logger *slog.Logger
}

// Push implements Sink
func (s *Slog) Push(n Notification) {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}

	attrs := []any{"kind", string(n.Kind)}
	if n.Coins > 0 {
		attrs = append(attrs, "coins", n.Coins)
	}
	if n.Exp > 0 {
		attrs = append(attrs, "exp", n.Exp)
	}
	logger.Info(n.Message, attrs...)
}

// Recorder keeps every notification for inspection in tests and for the
// CLI to print after an operation completes.
type Recorder struct {
	mu            sync.Mutex
	notifications []Notification
}

// NewRecorder creates an empty recorder
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Push implements Sink
func (r *Recorder) Push(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notifications = append(r.notifications, n)
}

// All returns the notifications pushed so far, in order
func (r *Recorder) All() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notification(nil), r.notifications...)
}

// Reset clears the recorder
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notifications = nil
}

// Multi fans a notification out to several sinks
type Multi []Sink

// Push implements Sink
func (m Multi) Push(n Notification) {
	for _, s := range m {
		s.Push(n)
	}
}
