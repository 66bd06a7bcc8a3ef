package websocket_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/lcalzada-xor/towermap/internal/adapters/web"
	ws "github.com/lcalzada-xor/towermap/internal/adapters/web/websocket"
	"github.com/lcalzada-xor/towermap/internal/core/domain"
)

func startHub(t *testing.T, sess *web.MockSessionService, origins ...string) (*ws.Hub, string) {
	t.Helper()
	hub := ws.NewHub(origins)
	hub.Session = sess
	srv := httptest.NewServer(http.HandlerFunc(hub.HandleWebSocket))
	t.Cleanup(srv.Close)
	return hub, "ws" + strings.TrimPrefix(srv.URL, "http")
}

func dial(t *testing.T, url string, header http.Header) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, header)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) ws.WSMessage {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg ws.WSMessage
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func syncedSession() *web.MockSessionService {
	sess := &web.MockSessionService{}
	sess.On("State", mock.Anything).Return(domain.SessionState{Phase: domain.PhaseIdle, Markers: 2}, nil)
	sess.On("Overlays", mock.Anything).Return([]domain.Overlay{{ID: "pin", Kind: domain.OverlayDropPin}}, nil)
	return sess
}

func TestHub_StateSyncOnConnect(t *testing.T) {
	hub, url := startHub(t, syncedSession())
	conn := dial(t, url, nil)

	msg := readMessage(t, conn)
	assert.Equal(t, ws.TypeStateSync, msg.Type)

	var sync ws.StateSync
	require.NoError(t, json.Unmarshal(msg.Payload, &sync))
	assert.NotEmpty(t, sync.ClientID)
	assert.Equal(t, 2, sync.State.Markers)
	require.Len(t, sync.Overlays, 1)
	assert.Equal(t, "pin", sync.Overlays[0].ID)

	assert.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)
}

func TestHub_InboundEvents(t *testing.T) {
	sess := syncedSession()
	clicked := make(chan domain.Coordinate, 1)
	toggled := make(chan string, 1)
	sess.On("ClickMap", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		clicked <- args.Get(1).(domain.Coordinate)
	}).Return(nil)
	sess.On("ToggleCircle", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		toggled <- args.String(1)
	}).Return(nil)

	_, url := startHub(t, sess)
	conn := dial(t, url, nil)
	readMessage(t, conn)

	require.NoError(t, conn.WriteJSON(map[string]any{
		"type":    ws.TypeMapClick,
		"payload": map[string]float64{"lat": 40.5, "lon": -73.5},
	}))
	require.NoError(t, conn.WriteJSON(map[string]any{
		"type":    ws.TypeMarkerClick,
		"payload": map[string]string{"id": "m-1"},
	}))

	select {
	case c := <-clicked:
		assert.Equal(t, domain.Coordinate{Lat: 40.5, Lon: -73.5}, c)
	case <-time.After(2 * time.Second):
		t.Fatal("map click not forwarded")
	}
	select {
	case id := <-toggled:
		assert.Equal(t, "m-1", id)
	case <-time.After(2 * time.Second):
		t.Fatal("marker click not forwarded")
	}
}

func TestHub_BroadcastsViewCalls(t *testing.T) {
	hub, url := startHub(t, syncedSession())
	first := dial(t, url, nil)
	second := dial(t, url, nil)
	readMessage(t, first)
	readMessage(t, second)
	require.Eventually(t, func() bool { return hub.ClientCount() == 2 }, time.Second, 5*time.Millisecond)

	hub.Notify(domain.InfoNotice("Loading complete! Time taken: 1.00 seconds"))

	for _, conn := range []*websocket.Conn{first, second} {
		msg := readMessage(t, conn)
		assert.Equal(t, ws.TypeNotice, msg.Type)
		var n domain.Notice
		require.NoError(t, json.Unmarshal(msg.Payload, &n))
		assert.Equal(t, "Loading complete! Time taken: 1.00 seconds", n.Message)
	}

	hub.SetProgress(35)
	msg := readMessage(t, first)
	assert.Equal(t, ws.TypeProgressSet, msg.Type)
	assert.JSONEq(t, `{"percent":35}`, string(msg.Payload))
}

func TestHub_RejectsForeignOrigin(t *testing.T) {
	_, url := startHub(t, syncedSession(), "http://localhost:8080")

	header := http.Header{"Origin": []string{"http://evil.example"}}
	_, resp, err := websocket.DefaultDialer.Dial(url, header)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	header = http.Header{"Origin": []string{"http://localhost:8080"}}
	conn := dial(t, url, header)
	assert.Equal(t, ws.TypeStateSync, readMessage(t, conn).Type)
}

func TestHub_DisconnectRemovesClient(t *testing.T) {
	hub, url := startHub(t, syncedSession())
	conn := dial(t, url, nil)
	readMessage(t, conn)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	conn.Close()
	assert.Eventually(t, func() bool { return hub.ClientCount() == 0 }, 2*time.Second, 5*time.Millisecond)
}

func TestHub_LaggingClientDoesNotBlockBroadcast(t *testing.T) {
	hub, url := startHub(t, syncedSession())
	dial(t, url, nil) // connected but never reads
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	big := domain.InfoNotice(strings.Repeat("x", 64<<10))
	start := time.Now()
	for i := 0; i < 600; i++ {
		hub.Notify(big)
	}
	assert.Less(t, time.Since(start), 2*time.Second, "broadcast waited on a lagging client")

	assert.Eventually(t, func() bool { return hub.ClientCount() == 0 }, 3*time.Second, 10*time.Millisecond)
}
