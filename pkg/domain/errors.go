package domain

import "errors"

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// ErrGraphNotFound is returned when an application's menu graph is not in the store.
var ErrGraphNotFound = errors.New("menu graph not found")

// ErrNodeNotFound is returned when a node id does not exist in the graph.
var ErrNodeNotFound = errors.New("node not found")

// ErrDuplicateNode is returned when adding a node whose id is already taken.
var ErrDuplicateNode = errors.New("duplicate node id")

// ErrLastNode is returned when deleting the only remaining node.
var ErrLastNode = errors.New("cannot delete the last node")

// ErrOptionLimit is returned when a node would exceed MaxOptions.
var ErrOptionLimit = errors.New("option limit reached")

// ErrOptionIndex is returned when an option index is out of bounds.
var ErrOptionIndex = errors.New("option index out of range")

// ErrEmptyGraph is returned when starting a session against a graph with
// no usable entry node. This is a configuration error, not caller error.
var ErrEmptyGraph = errors.New("menu graph has no entry node")

// ErrNotStarted is returned when stepping a session that was never started.
var ErrNotStarted = errors.New("session not started")
