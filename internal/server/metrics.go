package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vovakirdan/brickbreaker/internal/games/breakout"
)

// Label values are bounded: event types, route patterns and fixed reasons.
var (
	tickDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "brickbreaker_tick_duration_seconds",
		Help:    "Time spent in one engine tick",
		Buckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005},
	})

	gameEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "brickbreaker_game_events_total",
		Help: "Game events emitted by websocket sessions",
	}, []string{"type"})

	activeSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "brickbreaker_active_sessions",
		Help: "Currently connected websocket game sessions",
	})

	requestTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "brickbreaker_http_requests_total",
		Help: "HTTP requests by route and status",
	}, []string{"method", "route", "status"})

	rejectedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "brickbreaker_rejected_total",
		Help: "Requests rejected before reaching a handler",
	}, []string{"reason"}) // "rate_limit", "origin", "token"
)

// recordTick observes one engine tick.
func recordTick(d time.Duration) {
	tickDuration.Observe(d.Seconds())
}

// recordEvent counts one game event.
func recordEvent(ev breakout.Event) {
	gameEvents.WithLabelValues(ev.Type.String()).Inc()
}

// countRequests records every request under its chi route pattern.
func countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		requestTotal.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
	})
}
