// Package preview serves a live document over HTTP and lets clients mount
// elements into it.
//
// The server keeps one document in memory. POST /mount decodes a JSON
// descriptor, mounts it into the container named by the ?container= selector
// (or the configured default), and broadcasts the new markup to every browser
// connected to the live socket.
//
//	srv := preview.New(preview.Config{Document: dom.Blank()})
//	http.ListenAndServe(":3000", srv.Handler())
//
// Routes:
//
//	GET  /             document with the live script injected
//	GET  /document     document HTML as stored
//	POST /mount        mount a descriptor, 201 with {"html": ...}
//	GET  /metrics      Prometheus metrics
//	GET  /healthz      liveness
//	GET  /_mount/live  WebSocket stream of mount messages
//
// The document is guarded by a mutex; mounts are applied one at a time.
package preview
