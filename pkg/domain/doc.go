// Package domain contains the core data structures of the sauti menu
// engine: the authored MenuGraph, the per-caller Session with its
// append-only step log, and the Outcome taxonomy shared by resolvers.
//
// The package has no dependencies on the runtime or any adapter; it is
// the vocabulary the rest of the module speaks.
package domain
