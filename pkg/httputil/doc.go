// Package httputil provides the JSON responses, query parsing and middleware
// shared by the preview server handlers.
//
// Errors are written as {"error": "..."}:
//
//	limit, err := httputil.ParseQueryInt(r, "limit", 20)
//	if err != nil {
//		httputil.WriteBadRequest(w, err.Error())
//		return
//	}
//	httputil.WriteJSON(w, http.StatusOK, results)
//
// LoggingMiddleware and RecoveryMiddleware take the process logger and fit
// mux.Router.Use.
package httputil
