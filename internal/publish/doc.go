// Package publish sends a load report to a socket.io server, so a rules
// editor or a character builder can pick up a freshly validated rule set.
package publish
