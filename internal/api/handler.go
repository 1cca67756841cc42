package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/eugenenazirov/at-webserver/internal/config"
)

type contextKey string

const requestIDContextKey contextKey = "requestID"

// Handler serves a read-only view of one resolved configuration snapshot.
type Handler struct {
	cfg config.Config

	clock      func() time.Time
	resolvedAt time.Time
}

// HandlerOption configures Handler behaviour.
type HandlerOption func(*Handler)

// WithClock overrides the time source, primarily for tests.
func WithClock(clock func() time.Time) HandlerOption {
	return func(h *Handler) {
		h.clock = clock
	}
}

// NewHandler constructs a Handler around a copy of cfg.
func NewHandler(cfg config.Config, opts ...HandlerOption) *Handler {
	h := &Handler{
		cfg: cfg,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	h.resolvedAt = h.clock()
	return h
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	_ = r
	now := h.clock()
	resp := healthResponse{
		Status:        "ok",
		Timestamp:     now,
		UptimeSeconds: int64(now.Sub(h.resolvedAt) / time.Second),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	_ = r
	writeJSON(w, http.StatusOK, newConfigResponse(h.cfg, h.resolvedAt))
}

func (h *Handler) handleGetTransport(w http.ResponseWriter, r *http.Request) {
	_ = r
	resp := transportResponse{
		ConnectionType: h.cfg.AT.ConnectionType.String(),
	}
	switch h.cfg.AT.ConnectionType {
	case config.Serial:
		serial := h.cfg.AT.Serial
		resp.Serial = &serial
	case config.Network:
		network := h.cfg.AT.Network
		resp.Network = &network
	default:
		writeError(w, http.StatusInternalServerError, "Internal error", "unknown connection type")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func requestIDFromContext(ctx context.Context) string {
	if v := ctx.Value(requestIDContextKey); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

type configResponse struct {
	ConnectionType string               `json:"connectionType"`
	Network        config.NetworkConfig `json:"network"`
	Serial         config.SerialConfig  `json:"serial"`
	Notification   notificationResponse `json:"notification"`
	WebsocketPort  uint16               `json:"websocketPort"`
	ResolvedAt     time.Time            `json:"resolvedAt"`
}

// notificationResponse reports the webhook as a flag; the URL carries a key.
type notificationResponse struct {
	WebhookEnabled   bool   `json:"webhookEnabled"`
	LogFile          string `json:"logFile"`
	NotifySMS        bool   `json:"notifySms"`
	NotifyCall       bool   `json:"notifyCall"`
	NotifyMemoryFull bool   `json:"notifyMemoryFull"`
	NotifySignal     bool   `json:"notifySignal"`
}

func newConfigResponse(cfg config.Config, resolvedAt time.Time) configResponse {
	n := cfg.Notification
	return configResponse{
		ConnectionType: cfg.AT.ConnectionType.String(),
		Network:        cfg.AT.Network,
		Serial:         cfg.AT.Serial,
		Notification: notificationResponse{
			WebhookEnabled:   n.WebhookEnabled(),
			LogFile:          n.LogFile,
			NotifySMS:        n.NotifySMS,
			NotifyCall:       n.NotifyCall,
			NotifyMemoryFull: n.NotifyMemoryFull,
			NotifySignal:     n.NotifySignal,
		},
		WebsocketPort: cfg.WebsocketPort,
		ResolvedAt:    resolvedAt,
	}
}

type transportResponse struct {
	ConnectionType string                `json:"connectionType"`
	Network        *config.NetworkConfig `json:"network,omitempty"`
	Serial         *config.SerialConfig  `json:"serial,omitempty"`
}

type healthResponse struct {
	Status        string    `json:"status"`
	Timestamp     time.Time `json:"timestamp"`
	UptimeSeconds int64     `json:"uptimeSeconds"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if status != 0 {
		w.WriteHeader(status)
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message, details string) {
	writeJSON(w, status, errorResponse{
		Error:   message,
		Details: details,
	})
}
