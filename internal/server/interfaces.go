package server

// Server is the lifecycle of the transport server.
type Server interface {
	// RunServer serves until SIGTERM, SIGINT or SIGQUIT and then shuts
	// down gracefully.
	RunServer() error

	// Shutdown stops accepting requests and waits for in-flight ones.
	Shutdown()
}
