// The feed keeps connected clients in sync with their habit list: one
// session per owner, fed by a Firestore snapshot listener, fanned out to
// every websocket the owner has open. Sessions are destroyed when the
// last client disconnects.
package services

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/gorilla/websocket"

	"focusmindAPI/internal/types/habit"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512
)

type FeedClient struct {
	Session *FeedSession
	Conn    *websocket.Conn
	Send    chan []byte
}

type FeedSession struct {
	OwnerID    string
	Manager    *FeedManager
	Clients    map[*FeedClient]bool
	Broadcast  chan []byte
	Register   chan *FeedClient
	Unregister chan *FeedClient

	cancelWatch context.CancelFunc
}

// FeedManager holds the active per-owner sessions.
type FeedManager struct {
	client   *firestore.Client
	sessions map[string]*FeedSession
	mu       sync.RWMutex
}

func NewFeedManager(client *firestore.Client) *FeedManager {
	return &FeedManager{
		client:   client,
		sessions: make(map[string]*FeedSession),
	}
}

// Join returns the owner's session, creating it on first connect. A new
// session starts its run loop and its snapshot listener.
func (m *FeedManager) Join(ownerID string) *FeedSession {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[ownerID]; ok {
		return s
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &FeedSession{
		OwnerID:     ownerID,
		Manager:     m,
		Clients:     make(map[*FeedClient]bool),
		Broadcast:   make(chan []byte),
		Register:    make(chan *FeedClient),
		Unregister:  make(chan *FeedClient),
		cancelWatch: cancel,
	}
	m.sessions[ownerID] = s
	go s.Run()
	go s.watch(ctx)
	return s
}

func (m *FeedManager) DeleteSession(ownerID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, ownerID)
}

func (s *FeedSession) Run() {
	for {
		select {
		case client := <-s.Register:
			s.Clients[client] = true
			log.Printf("[Feed %s] Client connected. Count: %d", s.OwnerID, len(s.Clients))

		case client := <-s.Unregister:
			if _, ok := s.Clients[client]; ok {
				delete(s.Clients, client)
				close(client.Send)

				// If empty, destroy the session and its listener
				if len(s.Clients) == 0 {
					log.Printf("[Feed %s] Empty, destroying.", s.OwnerID)
					s.cancelWatch()
					s.Manager.DeleteSession(s.OwnerID)
					return
				}
			}

		case message := <-s.Broadcast:
			for client := range s.Clients {
				select {
				case client.Send <- message:
				default:
					close(client.Send)
					delete(s.Clients, client)
				}
			}
		}
	}
}

// watch streams Firestore snapshots of the owner's habits and pushes the
// normalized list to the session on every change.
func (s *FeedSession) watch(ctx context.Context) {
	iter := s.Manager.client.Collection(habitsCollection).
		Where("ownerId", "==", s.OwnerID).
		Snapshots(ctx)
	defer iter.Stop()

	for {
		snap, err := iter.Next()
		if err != nil {
			if ctx.Err() == nil {
				log.Printf("[Feed %s] Snapshot listener stopped: %v", s.OwnerID, err)
			}
			return
		}

		docs, err := snap.Documents.GetAll()
		if err != nil {
			log.Printf("[Feed %s] Failed to read snapshot: %v", s.OwnerID, err)
			continue
		}

		habits := make([]*habit.Habit, 0, len(docs))
		for _, doc := range docs {
			var h habit.Habit
			if err := doc.DataTo(&h); err != nil {
				log.Printf("[Feed %s] Skipping undecodable habit %s: %v", s.OwnerID, doc.Ref.ID, err)
				continue
			}
			h.ID = doc.Ref.ID
			h.Normalize()
			habits = append(habits, &h)
		}
		sortHabits(habits)

		data, err := json.Marshal(map[string]any{
			"action": "habits_updated",
			"habits": habits,
		})
		if err != nil {
			log.Printf("[Feed %s] Failed to marshal habits: %v", s.OwnerID, err)
			continue
		}

		select {
		case s.Broadcast <- data:
		case <-ctx.Done():
			return
		}
	}
}

// ReadPump drains the connection. The feed is one-way; client frames
// only matter for the pong handler keeping the connection alive.
func (c *FeedClient) ReadPump() {
	defer func() {
		c.Session.Unregister <- c
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			break
		}
	}
}

// WritePump handles messages going TO the frontend
func (c *FeedClient) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The session closed the channel.
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.Conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			// Heartbeat: keep connection alive
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
