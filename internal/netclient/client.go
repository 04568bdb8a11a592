package netclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the server
	writeWait = 10 * time.Second

	// Default endpoints of the room server
	DefaultServerURL = "http://localhost:8081"
	DefaultWSURL     = "ws://localhost:8081/ws"

	parseErrorMessage = "Error parsing server message"
)

var (
	ErrNotConnected = errors.New("not connected")
	ErrNoRoom       = errors.New("not in a room")
)

// Listener receives decoded room events. Methods are called from the
// client's read goroutine.
type Listener interface {
	OnConnected()
	OnDisconnected()
	OnRoomJoined(roomID string)
	OnPlayerJoined(playerID, name string)
	OnPlayerLeft(playerID string)
	OnGameStarted()
	OnScoreUpdated(playerID string, score int)
	OnError(message string)
}

// Config holds the room server endpoints
type Config struct {
	ServerURL string
	WSURL     string
}

// DefaultConfig returns the local development endpoints
func DefaultConfig() Config {
	return Config{
		ServerURL: DefaultServerURL,
		WSURL:     DefaultWSURL,
	}
}

// Client is a connection to a multiplayer room server
type Client struct {
	cfg        Config
	listener   Listener
	logger     *slog.Logger
	httpClient *http.Client

	mu     sync.Mutex
	conn   *websocket.Conn
	roomID string
	done   chan struct{}
}

// New creates a client. It does not connect.
func New(cfg Config, listener Listener, logger *slog.Logger) *Client {
	if cfg.ServerURL == "" {
		cfg.ServerURL = DefaultServerURL
	}
	if cfg.WSURL == "" {
		cfg.WSURL = DefaultWSURL
	}
	return &Client{
		cfg:      cfg,
		listener: listener,
		logger:   logger,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Connect dials the websocket endpoint and starts reading events
func (c *Client) Connect(ctx context.Context) error {
	c.mu.Lock()
	if c.conn != nil {
		c.mu.Unlock()
		return nil
	}
	c.mu.Unlock()

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, c.cfg.WSURL, nil)
	if err != nil {
		return fmt.Errorf("dial %s: %w", c.cfg.WSURL, err)
	}

	done := make(chan struct{})
	c.mu.Lock()
	c.conn = conn
	c.done = done
	c.mu.Unlock()

	c.logger.Info("connected to room server", "url", c.cfg.WSURL)
	c.listener.OnConnected()

	go c.readLoop(conn, done)
	return nil
}

func (c *Client) readLoop(conn *websocket.Conn, done chan struct{}) {
	defer close(done)
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.logger.Debug("websocket read ended", "error", err)
			}
			break
		}
		if err := dispatch(data, c.listener); err != nil {
			c.logger.Warn("failed to parse server message", "error", err)
			c.listener.OnError(parseErrorMessage)
		}
	}

	c.mu.Lock()
	if c.conn == conn {
		c.conn = nil
		c.roomID = ""
	}
	c.mu.Unlock()

	c.logger.Info("disconnected from room server")
	c.listener.OnDisconnected()
}

// Disconnect closes the connection and waits for the read loop to exit
func (c *Client) Disconnect() error {
	c.mu.Lock()
	conn, done := c.conn, c.done
	c.mu.Unlock()
	if conn == nil {
		return nil
	}

	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
	err := conn.Close()
	<-done
	return err
}

// Connected reports whether the websocket is open
func (c *Client) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn != nil
}

// RoomID returns the joined room, or "" if none
func (c *Client) RoomID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.roomID
}

// CreateRoom asks the server to open a room
func (c *Client) CreateRoom(name string, private bool) error {
	return c.send(CreateRoom{Type: MsgCreateRoom, Name: name, Private: private})
}

// JoinRoom joins a room and remembers it for later room messages
func (c *Client) JoinRoom(roomID string) error {
	if err := c.send(RoomRequest{Type: MsgJoinRoom, RoomID: roomID}); err != nil {
		return err
	}
	c.mu.Lock()
	c.roomID = roomID
	c.mu.Unlock()
	return nil
}

// LeaveRoom leaves the current room
func (c *Client) LeaveRoom() error {
	roomID, err := c.currentRoom()
	if err != nil {
		return err
	}
	if err := c.send(RoomRequest{Type: MsgLeaveRoom, RoomID: roomID}); err != nil {
		return err
	}
	c.mu.Lock()
	c.roomID = ""
	c.mu.Unlock()
	return nil
}

// StartGame asks the server to start the current room's game
func (c *Client) StartGame() error {
	roomID, err := c.currentRoom()
	if err != nil {
		return err
	}
	return c.send(RoomRequest{Type: MsgStartGame, RoomID: roomID})
}

// SubmitAnswer reports an answer outcome in the current room
func (c *Client) SubmitAnswer(correct bool) error {
	roomID, err := c.currentRoom()
	if err != nil {
		return err
	}
	return c.send(SubmitAnswer{Type: MsgSubmitAnswer, RoomID: roomID, Correct: correct})
}

// PublicRooms fetches the public room listing
func (c *Client) PublicRooms(ctx context.Context) ([]Room, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.ServerURL+"/api/rooms", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("list rooms: unexpected status %d", resp.StatusCode)
	}

	var rooms []Room
	if err := json.NewDecoder(resp.Body).Decode(&rooms); err != nil {
		return nil, fmt.Errorf("failed to decode rooms: %w", err)
	}
	return rooms, nil
}

func (c *Client) currentRoom() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return "", ErrNotConnected
	}
	if c.roomID == "" {
		return "", ErrNoRoom
	}
	return c.roomID, nil
}

func (c *Client) send(msg any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return ErrNotConnected
	}
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	if err := c.conn.WriteJSON(msg); err != nil {
		return fmt.Errorf("send: %w", err)
	}
	return nil
}
