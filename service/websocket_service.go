package service

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/Danilepez/chat-pdf-ai/types"
	"github.com/gorilla/websocket"
)

// WebSocketService exposes the query pipeline over a websocket connection:
// the client sends {"type":"query","payload":{documentKey,question}} frames
// and receives the query result (or an error frame) per question.
type WebSocketService struct {
	queryService *QueryService
	upgrader     websocket.Upgrader
}

func NewWebSocketService(queryService *QueryService) *WebSocketService {
	return &WebSocketService{
		queryService: queryService,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // Allow all origins (adjust for production)
			},
		},
	}
}

func (s *WebSocketService) HandleQuery(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("Upgrade error:", err)
		return
	}
	defer conn.Close()

	conn.SetReadLimit(512 * 1024) // 512KB max message size
	conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, p, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket read error: %v", err)
			}
			return
		}
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))

		var req types.WebsocketRequest
		if err := json.Unmarshal(p, &req); err != nil {
			s.writeError(conn, "invalid message")
			continue
		}

		switch req.Type {
		case types.TypeWebsocketQuery:
			payloadBytes, err := json.Marshal(req.Payload)
			if err != nil {
				s.writeError(conn, "invalid payload")
				continue
			}
			var payload types.QueryRequest
			if err := json.Unmarshal(payloadBytes, &payload); err != nil {
				s.writeError(conn, "invalid payload")
				continue
			}
			result, err := s.queryService.Query(r.Context(), payload.DocumentKey, payload.Question)
			if err != nil {
				log.Println("Query error:", err)
				s.writeError(conn, queryErrorMessage(err))
				continue
			}
			res := types.WebsocketResponse{
				Type: types.TypeWebsocketQuery,
				Payload: types.QueryResponse{
					Answer:               result.Answer,
					MatchedFragmentIndex: result.MatchedFragmentIndex,
					Similarity:           result.Similarity,
				},
			}
			if err := conn.WriteJSON(res); err != nil {
				log.Println("Write error:", err)
			}
		case types.TypeWebsocketPing:
			pong := types.WebsocketResponse{
				Type:    types.TypeWebsocketPong,
				Payload: nil,
			}
			if err := conn.WriteJSON(pong); err != nil {
				log.Println("Write error:", err)
			}
		default:
			s.writeError(conn, "unknown message type")
		}
	}
}

func (s *WebSocketService) writeError(conn *websocket.Conn, message string) {
	res := types.WebsocketResponse{
		Type:    types.TypeWebsocketError,
		Payload: types.WebsocketErrorPayload{Error: message},
	}
	if err := conn.WriteJSON(res); err != nil {
		log.Println("Write error:", err)
	}
}

func queryErrorMessage(err error) string {
	switch {
	case errors.Is(err, types.ErrValidation):
		return "documentKey and question are required"
	case errors.Is(err, types.ErrDocumentNotFoundOrEmpty):
		return "document not found or has no fragments"
	default:
		return "failed to answer question"
	}
}
