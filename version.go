package sauti

// Version is the library version, overridable at build time via
// -ldflags "-X github.com/sautiflow/sauti.Version=...".
var Version = "0.4.0"
