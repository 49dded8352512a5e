// Package logifaceadapter wires altoslog.Logger onto
// github.com/joeycumines/logiface, for integrators who already standardize
// on logiface elsewhere in their firmware image. The stumpy backend is used
// for its zero-dependency JSON event encoding; any other logiface Event
// implementation would work identically since only the exported Logger
// methods are used.
package logifaceadapter

import (
	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"

	"github.com/AltOS-Rust/altos-go/altoslog"
)

// Adapter implements altoslog.Logger by forwarding to a logiface logger.
type Adapter struct {
	logger *logiface.Logger[*stumpy.Event]
}

// New builds an Adapter writing stumpy-encoded JSON events to the given
// logiface options (typically stumpy.L.WithStumpy(stumpy.WithWriter(...))).
func New(options ...logiface.Option[*stumpy.Event]) *Adapter {
	return &Adapter{logger: stumpy.L.New(options...)}
}

// IsEnabled implements altoslog.Logger.
func (a *Adapter) IsEnabled(level altoslog.LogLevel) bool {
	return a.logger.Level().Enabled() && toLogifaceLevel(level) <= a.logger.Level()
}

// Log implements altoslog.Logger, translating an altoslog.Entry into a
// logiface builder chain.
func (a *Adapter) Log(entry altoslog.Entry) {
	b := a.logger.Build(toLogifaceLevel(entry.Level))
	if b == nil {
		return
	}
	if entry.TaskID != 0 {
		b = b.Uint64("task", entry.TaskID)
	}
	if entry.Syscall != "" {
		b = b.Str("syscall", entry.Syscall)
	}
	for k, v := range entry.Context {
		b = b.Any(k, v)
	}
	if entry.Err != nil {
		b = b.Err(entry.Err)
	}
	b.Log(entry.Message)
}

func toLogifaceLevel(l altoslog.LogLevel) logiface.Level {
	switch l {
	case altoslog.LevelDebug:
		return logiface.LevelDebug
	case altoslog.LevelInfo:
		return logiface.LevelInformational
	case altoslog.LevelWarn:
		return logiface.LevelWarning
	case altoslog.LevelError:
		return logiface.LevelError
	default:
		return logiface.LevelInformational
	}
}
