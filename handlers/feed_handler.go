package handlers

import (
	"log"
	"net/http"

	"github.com/clerk/clerk-sdk-go/v2/jwt"
	"github.com/gorilla/websocket"

	"focusmindAPI/services"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type FeedHandler struct {
	feedManager *services.FeedManager
}

func NewFeedHandler(feedManager *services.FeedManager) *FeedHandler {
	return &FeedHandler{
		feedManager: feedManager,
	}
}

// Connect upgrades to a websocket and joins the owner's habit feed.
// Browsers cannot set headers on websocket requests, so the Clerk token
// rides in the ?token= query parameter.
func (h *FeedHandler) Connect(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	claims, err := jwt.Verify(r.Context(), &jwt.VerifyParams{
		Token: token,
	})
	if err != nil {
		log.Printf("Feed token verification failed: %v", err)
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Could not upgrade connection: %v", err)
		return
	}

	session := h.feedManager.Join(claims.Subject)
	client := &services.FeedClient{
		Session: session,
		Conn:    conn,
		Send:    make(chan []byte, 256),
	}

	client.Session.Register <- client
	go client.WritePump()
	go client.ReadPump()
}
