// Package cli implements the interactive meal planner client.
//
// The REPL prompts for input, calls the HTTP API through client.Client and
// prints results. A background watcher pings the server and flips the
// prompt between online and offline.
package cli
