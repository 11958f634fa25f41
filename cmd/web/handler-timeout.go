package main

import (
	"net/http"
	"strconv"
	"time"
)

const timeoutBody = `<!doctype html>
<html lang="en">
<head><title>Timeout</title></head>
<body>
<h1>Timeout</h1>
<p>The request took too long. <a href="">Try again</a>.</p>
</body>
</html>
`

// testTimeout sleeps for the sleep_ms query parameter before responding. It exercises the timeout middleware.
func (app *application) testTimeout(w http.ResponseWriter, r *http.Request) {
	sleepMsStr := r.URL.Query().Get("sleep_ms")
	if sleepMsStr == "" {
		sleepMsStr = "0"
	}

	sleepMs, err := strconv.Atoi(sleepMsStr)
	if err != nil {
		http.Error(w, "Invalid sleep_ms parameter", http.StatusBadRequest)
		return
	}

	select {
	case <-time.After(time.Duration(sleepMs) * time.Millisecond):
	case <-r.Context().Done():
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"completed","slept_ms":` + sleepMsStr + `}`))
}
