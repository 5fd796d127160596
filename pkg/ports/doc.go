// Package ports defines the boundary interfaces of the engine:
// persistence collaborators (SessionStore, GraphStore), concurrency
// control (DistributedLocker) and the pluggable Resolver.
//
// Adapters under pkg/adapters and internal/adapters implement these
// interfaces; the engine itself only ever sees the ports.
package ports
