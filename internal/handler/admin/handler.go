package admin

import (
	"log"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/phigamnu/sistergreet/internal/service/audit"
	"github.com/phigamnu/sistergreet/internal/service/roster"
	"github.com/phigamnu/sistergreet/pkg/utils"
)

// Handler serves the administrative surface: forced reloads, the audit
// trail, and a live event feed. Authentication for this surface is handled
// upstream of the service.
type Handler struct {
	rosterSvc *roster.Service
	auditSvc  *audit.Service
	upgrader  websocket.Upgrader

	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

// New creates the admin handler.
func New(rosterSvc *roster.Service, auditSvc *audit.Service) *Handler {
	return &Handler{
		rosterSvc: rosterSvc,
		auditSvc:  auditSvc,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		conns: make(map[*websocket.Conn]struct{}),
	}
}

// RegisterRoutes registers the admin routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/admin/reload", h.handleReload)
	r.Get("/admin/audit", h.handleAudit)
	r.Get("/admin/events", h.handleEvents)
}

func (h *Handler) handleReload(w http.ResponseWriter, r *http.Request) {
	event := h.rosterSvc.Reload(r.Context())
	if event.Error != "" {
		utils.RespondJSON(w, http.StatusBadGateway, event)
		return
	}
	utils.RespondJSON(w, http.StatusOK, event)
}

func (h *Handler) handleAudit(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.auditSvc.Recent())
}

// handleEvents upgrades to a websocket and streams load events until the
// client disconnects.
func (h *Handler) handleEvents(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[admin] websocket upgrade failed: %v", err)
		return
	}

	h.mu.Lock()
	h.conns[conn] = struct{}{}
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.conns, conn)
		h.mu.Unlock()
		conn.Close()
	}()

	// Drain reads so we notice the close handshake.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// RosterLoaded pushes the event to every connected feed client, satisfying
// roster.LoadListener.
func (h *Handler) RosterLoaded(event roster.LoadEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.conns {
		if err := conn.WriteJSON(event); err != nil {
			log.Printf("[admin] dropping event feed client: %v", err)
			conn.Close()
			delete(h.conns, conn)
		}
	}
}
