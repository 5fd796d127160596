// Package sauti is a USSD menu/session engine: a graph-based
// interactive-dialog system that models a phone-keypad menu tree,
// resolves a caller's numeric keystrokes into state transitions, tracks
// per-call session history, and aggregates closed sessions into
// behavioral analytics.
//
// The engine is a library, not a gateway: it exposes the same decision
// function a carrier webhook would call (Engine.Handle) and treats
// durable storage as injected collaborators (see pkg/ports). The
// interactive test simulator and a real gateway handler share the same
// replayable core under internal/runtime.
package sauti
