package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Dosada05/league-api/live"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // фронтенды лиги живут на других доменах
	},
}

type WebSocketHandler struct {
	hub    *live.Hub
	logger *slog.Logger
}

func NewWebSocketHandler(hub *live.Hub, logger *slog.Logger) *WebSocketHandler {
	return &WebSocketHandler{
		hub:    hub,
		logger: logger,
	}
}

// ServeWs подписывает клиента на события турнира.
// Клиент подключается к /ws/tournaments/{tournamentID}
func (h *WebSocketHandler) ServeWs(w http.ResponseWriter, r *http.Request) {
	tournamentID, ok := urlID(w, r, "tournamentID")
	if !ok {
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade сам отвечает клиенту ошибкой
		h.logger.Warn("failed to upgrade websocket connection",
			slog.String("tournament_id", tournamentID), slog.Any("error", err))
		return
	}

	// комната совпадает с ID турнира
	h.hub.Register(live.NewClient(h.hub, conn, tournamentID))
	h.logger.Debug("websocket client registered", slog.String("room", tournamentID))
}
