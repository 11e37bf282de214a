package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/SKT-TRTR/zyrok-mobile-app/internal/domain"
	"github.com/SKT-TRTR/zyrok-mobile-app/internal/hub"
	"github.com/SKT-TRTR/zyrok-mobile-app/internal/service"
	pkglog "github.com/SKT-TRTR/zyrok-mobile-app/pkg/log"
)

// WSHandler upgrades HTTP requests and feeds inbound events to the
// realtime service.
type WSHandler struct {
	hub      *hub.Hub
	realtime service.RealtimeService
	upgrader websocket.Upgrader
}

func NewWSHandler(h *hub.Hub, realtime service.RealtimeService) *WSHandler {
	return &WSHandler{
		hub:      h,
		realtime: realtime,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// HandleWebSocket upgrades the connection and runs its pumps. The token
// query parameter carries the caller's claimed user id; connections
// without one stay anonymous and their mutating events are dropped.
func (h *WSHandler) HandleWebSocket(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		pkglog.L().Error().Err(err).Msg("websocket upgrade failed")
		return
	}

	client := &hub.Client{
		ID:     uuid.New().String(),
		UserID: c.Query("token"),
		Hub:    h.hub,
		Conn:   conn,
		Send:   make(chan []byte, 256),
	}
	client.SetDisconnectHandler(func(cl *hub.Client) {
		if err := h.realtime.HandleDisconnect(context.Background(), cl); err != nil {
			pkglog.L().Error().Err(err).Str(pkglog.FieldClientID, cl.ID).Msg("disconnect handling failed")
		}
	})

	h.hub.Register(client)

	go client.WritePump()
	go client.ReadPump(h.dispatch)
}

// dispatch routes one inbound frame. It runs on the connection's read
// loop, so a connection's events are handled strictly in order.
func (h *WSHandler) dispatch(client *hub.Client, raw []byte) {
	ctx := context.Background()

	var base domain.BaseMessage
	if err := json.Unmarshal(raw, &base); err != nil {
		h.sendError(client, "Invalid message format")
		return
	}

	var err error
	switch base.Type {
	case domain.EventJoinVideo:
		var msg domain.JoinVideoMessage
		if err = json.Unmarshal(raw, &msg); err == nil {
			err = h.realtime.HandleJoinVideo(ctx, client, msg.VideoID)
		}
	case domain.EventLeaveVideo:
		var msg domain.LeaveVideoMessage
		if err = json.Unmarshal(raw, &msg); err == nil {
			err = h.realtime.HandleLeaveVideo(ctx, client, msg.VideoID)
		}
	case domain.EventNewComment:
		var msg domain.NewCommentMessage
		if err = json.Unmarshal(raw, &msg); err == nil {
			err = h.realtime.HandleNewComment(ctx, client, msg.VideoID, msg.Content)
		}
	case domain.EventToggleLike:
		var msg domain.ToggleLikeMessage
		if err = json.Unmarshal(raw, &msg); err == nil {
			err = h.realtime.HandleToggleLike(ctx, client, msg.VideoID, msg.CommentID)
		}
	case domain.EventToggleFollow:
		var msg domain.ToggleFollowMessage
		if err = json.Unmarshal(raw, &msg); err == nil {
			err = h.realtime.HandleToggleFollow(ctx, client, msg.UserID)
		}
	case domain.EventTyping:
		var msg domain.TypingMessage
		if err = json.Unmarshal(raw, &msg); err == nil {
			err = h.realtime.HandleTyping(ctx, client, msg.VideoID, msg.IsTyping)
		}
	default:
		pkglog.L().Debug().
			Str(pkglog.FieldClientID, client.ID).
			Str(pkglog.FieldEvent, base.Type).
			Msg("ignoring unknown event")
		return
	}

	if err != nil {
		pkglog.L().Error().Err(err).
			Str(pkglog.FieldClientID, client.ID).
			Str(pkglog.FieldEvent, base.Type).
			Msg("event handling failed")
	}
}

func (h *WSHandler) sendError(client *hub.Client, message string) {
	if err := client.SendMessage(domain.NewErrorMessage(message)); err != nil {
		pkglog.L().Debug().Err(err).Str(pkglog.FieldClientID, client.ID).Msg("failed to send error message")
	}
}
