package handlers

import (
	"net/http"
	"net/url"
	"slices"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/domain/shared"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/infrastructure/http/middleware"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/ports/inbound"
	apperrors "github.com/jpavlov47-ux/Jardova-online-kucha-ka/pkg/errors"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

// GenerationHandlers handles the recipe generator endpoints
type GenerationHandlers struct {
	generation inbound.GenerationService
	printer    *Printer
	upgrader   websocket.Upgrader
	logger     *zap.Logger
}

// NewGenerationHandlers creates the handlers. allowedOrigins limits the
// websocket stream; "*" or an empty list accepts any origin.
func NewGenerationHandlers(
	generation inbound.GenerationService,
	printer *Printer,
	allowedOrigins []string,
	logger *zap.Logger,
) *GenerationHandlers {
	return &GenerationHandlers{
		generation: generation,
		printer:    printer,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     originChecker(allowedOrigins),
		},
		logger: logger.Named("generation-handlers"),
	}
}

// GenerateRequest represents a recipe generation request
type GenerateRequest struct {
	Prompt   string          `json:"prompt"`
	Language shared.Language `json:"language"`
}

// Submit handles POST /api/v1/generations. It returns once the recipe text
// is ready; the image follows on the stream.
func (h *GenerationHandlers) Submit(c *gin.Context) {
	var req GenerateRequest
	if !bindJSON(c, h.logger, &req) {
		return
	}
	lang, ok := language(c, h.logger, req.Language)
	if !ok {
		return
	}

	snapshot, err := h.generation.Submit(c.Request.Context(), middleware.GetClientID(c), req.Prompt, lang)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

// Current handles GET /api/v1/generations/current
func (h *GenerationHandlers) Current(c *gin.Context) {
	c.JSON(http.StatusOK, h.generation.Current(middleware.GetClientID(c)))
}

// Save handles POST /api/v1/generations/current/save
func (h *GenerationHandlers) Save(c *gin.Context) {
	saved, err := h.generation.Save(c.Request.Context(), middleware.GetClientID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

// Print handles GET /api/v1/generations/current/print
func (h *GenerationHandlers) Print(c *gin.Context) {
	snapshot := h.generation.Current(middleware.GetClientID(c))
	if snapshot.Recipe == nil {
		respondError(c, h.logger, apperrors.NewNotFoundError("Recipe"))
		return
	}
	if err := h.printer.Render(c, *snapshot.Recipe, snapshot.Language); err != nil {
		respondError(c, h.logger, err)
	}
}

// Stream handles GET /api/v1/generations/stream. Every snapshot change of
// the client's flow is pushed as a JSON text message, starting with the
// current one.
func (h *GenerationHandlers) Stream(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("Websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	clientID := middleware.GetClientID(c)
	updates, unsubscribe := h.generation.Subscribe(clientID)
	defer unsubscribe()

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		conn.SetReadLimit(512)
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case snapshot, ok := <-updates:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
				return
			}
			if err := conn.WriteJSON(snapshot); err != nil {
				h.logger.Debug("Stream write failed", zap.String("client_id", clientID), zap.Error(err))
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-closed:
			return
		}
	}
}

func originChecker(allowed []string) func(*http.Request) bool {
	if len(allowed) == 0 || slices.Contains(allowed, "*") {
		return func(*http.Request) bool { return true }
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		if u, err := url.Parse(origin); err == nil && u.Host == r.Host {
			return true
		}
		return slices.Contains(allowed, origin)
	}
}
