package main

import (
	"fmt"
	"net/http"
)

func (app *application) routes() (*http.ServeMux, error) {
	mux := http.NewServeMux()

	var (
		shared = func(next http.Handler) http.Handler {
			return app.logAndTraceRequest(secureHeaders(app.crossOriginProtection(
				commonContext(app.timeout(next)))))
		}
		noSession = func(next http.Handler) http.Handler {
			return app.recoverPanic(shared(next))
		}
		session = func(next http.Handler) http.Handler {
			return app.recoverPanic(noCache(app.sessionManager.LoadAndSave(app.visitor(shared(next)))))
		}
		// Websockets hijack the connection, so neither the session writer nor the timeout handler may wrap them.
		stream = func(next http.Handler) http.Handler {
			return app.recoverPanic(app.logAndTraceRequest(commonContext(app.streamVisitor(next))))
		}
		// The JSON API and MCP endpoint are meant for other origins and rely on CORS instead.
		api = func(next http.Handler) http.Handler {
			return app.recoverPanic(app.logAndTraceRequest(app.timeout(next)))
		}
	)

	mux.Handle("GET /{$}", session(http.HandlerFunc(app.home)))
	mux.Handle("POST /profile", session(http.HandlerFunc(app.profilePOST)))
	mux.Handle("POST /profile/delete", session(http.HandlerFunc(app.profileDeletePOST)))

	mux.Handle("GET /plan", session(http.HandlerFunc(app.planGET)))
	mux.Handle("POST /plan/{day}/complete", session(http.HandlerFunc(app.dayCompletePOST)))
	mux.Handle("GET /progress", session(http.HandlerFunc(app.progressGET)))
	mux.Handle("GET /exercises/{name}", session(http.HandlerFunc(app.exerciseGET)))

	mux.Handle("GET /pose", session(http.HandlerFunc(app.poseGET)))
	mux.Handle("GET /pose/stream", stream(http.HandlerFunc(app.poseStream)))

	mux.Handle("GET /export", session(http.HandlerFunc(app.exportGET)))
	mux.Handle("GET /export/data.sqlite3", session(http.HandlerFunc(app.exportDataGET)))
	mux.Handle("GET /export/{file}", session(http.HandlerFunc(app.exportFileGET)))

	mux.Handle("GET /api/healthy", noSession(http.HandlerFunc(app.healthy)))
	mux.Handle("POST /api/csp-violation", noSession(http.HandlerFunc(app.cspViolation)))
	mux.Handle("GET /api/test/timeout", noSession(http.HandlerFunc(app.testTimeout)))

	mux.Handle("/api/v1/", api(app.apiRoutes()))
	mux.Handle("/mcp", app.recoverPanic(app.logAndTraceRequest(app.mcpHandler)))

	fileServerHandler, err := app.fileServerHandler(session(http.HandlerFunc(app.notFound)))
	if err != nil {
		return nil, fmt.Errorf("fileServerHandler: %w", err)
	}
	mux.Handle("/", fileServerHandler)

	return mux, nil
}
