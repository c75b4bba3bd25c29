// Package logging configures the process-wide zerolog logger and offers a
// small structured Logger interface for components that take their logger
// as a dependency, such as the HTTP server.
package logging
