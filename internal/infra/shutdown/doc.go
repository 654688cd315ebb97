// Package shutdown coordinates graceful process termination.
//
//	h := shutdown.NewHandler(10 * time.Second)
//	h.OnShutdown("redis server", srv.Shutdown)
//	err := h.Wait(ctx) // SIGINT, SIGTERM or ctx cancellation
//
// Hooks run in reverse registration order under one shared timeout.
package shutdown
