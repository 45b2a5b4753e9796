package session

import "net/http"

// responseWriter wraps http.ResponseWriter to track whether the response has
// been committed. Cookie mutations after commit are unobservable to the
// client, so session create/destroy must no-op once headers are out.
type responseWriter struct {
	http.ResponseWriter
	written bool
	status  int
}

func wrapWriter(w http.ResponseWriter) http.ResponseWriter {
	if _, ok := w.(interface{ Written() bool }); ok {
		return w
	}
	return &responseWriter{ResponseWriter: w}
}

func (w *responseWriter) WriteHeader(status int) {
	if !w.written {
		w.status = status
		w.written = true
		w.ResponseWriter.WriteHeader(status)
	}
}

func (w *responseWriter) Write(b []byte) (int, error) {
	if !w.written {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

// Written reports whether the response headers have been sent.
func (w *responseWriter) Written() bool {
	return w.written
}

// Status returns the HTTP status code of the response, zero if unset.
func (w *responseWriter) Status() int {
	return w.status
}

// Flush implements http.Flusher when the underlying writer supports it.
func (w *responseWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// committed reports whether headers have already been sent on w. Writers not
// produced by Manage cannot be tracked and count as uncommitted.
func committed(w http.ResponseWriter) bool {
	if ww, ok := w.(interface{ Written() bool }); ok {
		return ww.Written()
	}
	return false
}
