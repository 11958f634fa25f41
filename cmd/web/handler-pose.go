package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/myrjola/fitcoach/internal/contexthelpers"
	"github.com/myrjola/fitcoach/internal/errors"
	"github.com/myrjola/fitcoach/internal/pose"
)

const (
	poseReadBufferSize  = 16 * 1024
	poseWriteBufferSize = 4 * 1024
	maxPoseFrameBytes   = 64 * 1024
	poseIdleTimeout     = time.Minute
	poseWriteTimeout    = 5 * time.Second
)

type poseTemplateData struct {
	BaseTemplateData
	Exercises []string
	Selected  string
}

func (app *application) poseGET(w http.ResponseWriter, r *http.Request) {
	selected := r.URL.Query().Get("exercise")
	if !pose.Supported(selected) {
		selected = pose.Squats
	}
	data := poseTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
		Exercises:        []string{pose.Squats, pose.PushUps},
		Selected:         selected,
	}
	app.render(w, r, http.StatusOK, "pose", data)
}

// poseFrame is one frame of pose landmarks sent by the browser.
type poseFrame struct {
	Landmarks []pose.Landmark `json:"landmarks"`
}

// poseStream analyzes pose frames over a websocket. Every frame is answered with the analyzer snapshot. When the
// socket closes the session summary is stored for the visitor.
func (app *application) poseStream(w http.ResponseWriter, r *http.Request) {
	app.streams.Add(1)
	defer app.streams.Done()

	ctx := r.Context()
	exercise := r.URL.Query().Get("exercise")
	if exercise == "" {
		exercise = pose.Squats
	}
	if !pose.Supported(exercise) {
		http.Error(w, pose.MsgUnsupported, http.StatusBadRequest)
		return
	}

	conn, err := app.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// The upgrader has already responded with an HTTP error.
		app.logger.LogAttrs(ctx, slog.LevelWarn, "upgrade pose stream", errors.SlogError(err))
		return
	}
	defer func() {
		_ = conn.Close()
	}()
	// Clear the deadlines the HTTP server put on the connection.
	if err = conn.NetConn().SetDeadline(time.Time{}); err != nil {
		app.logger.LogAttrs(ctx, slog.LevelError, "clear pose stream deadline", errors.SlogError(err))
		return
	}
	conn.SetReadLimit(maxPoseFrameBytes)
	stop := context.AfterFunc(ctx, func() {
		_ = conn.Close()
	})
	defer stop()

	ctx = context.WithoutCancel(ctx)
	app.logger.LogAttrs(ctx, slog.LevelInfo, "pose stream opened", slog.String("exercise", exercise))

	analyzer := pose.NewAnalyzer(exercise, nil)
	if err = app.writePoseSnapshot(conn, analyzer.Snapshot()); err != nil {
		app.logger.LogAttrs(ctx, slog.LevelWarn, "write pose snapshot", errors.SlogError(err))
		return
	}
	frames := 0
	for {
		if err = conn.SetReadDeadline(time.Now().Add(poseIdleTimeout)); err != nil {
			break
		}
		var data []byte
		if _, data, err = conn.ReadMessage(); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				app.logger.LogAttrs(ctx, slog.LevelDebug, "pose stream ended", slog.String("reason", err.Error()))
			}
			break
		}
		var frame poseFrame
		if err = json.Unmarshal(data, &frame); err != nil {
			app.logger.LogAttrs(ctx, slog.LevelDebug, "skipping malformed pose frame", errors.SlogError(err))
			continue
		}
		frames++
		if err = app.writePoseSnapshot(conn, analyzer.Process(frame.Landmarks)); err != nil {
			app.logger.LogAttrs(ctx, slog.LevelWarn, "write pose snapshot", errors.SlogError(err))
			break
		}
	}

	summary := analyzer.Snapshot()
	app.logger.LogAttrs(ctx, slog.LevelInfo, "pose stream closed",
		slog.Int("frames", frames), slog.Int("reps", summary.Reps), slog.Int("correct_reps", summary.CorrectReps))
	if contexthelpers.VisitorID(ctx) == "" {
		return
	}
	if err = app.coachService.SavePoseSummary(ctx, summary); err != nil {
		app.logger.LogAttrs(ctx, slog.LevelError, "save pose summary", errors.SlogError(err))
	}
}

func (app *application) writePoseSnapshot(conn *websocket.Conn, snapshot pose.Snapshot) error {
	if err := conn.SetWriteDeadline(time.Now().Add(poseWriteTimeout)); err != nil {
		return errors.Wrap(err, "set write deadline")
	}
	if err := conn.WriteJSON(snapshot); err != nil {
		return errors.Wrap(err, "write json")
	}
	return nil
}
