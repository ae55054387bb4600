package sim

import (
	"fmt"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/lixenwraith/swarmforge/parameter"
	"github.com/lixenwraith/swarmforge/vmath"
)

// remoteRequest is one perception batch sent to the inference service.
type remoteRequest struct {
	CorrelationID uint64    `json:"correlation_id"`
	ShipIdx       int       `json:"ship_idx"`
	Perception    []float32 `json:"perception"`
}

// remoteResponse is the decoded decision returned by the inference
// service, pre-decoded into action-kind/mode fields so the client need
// not share the neural output layout.
type remoteResponse struct {
	CorrelationID uint64  `json:"correlation_id"`
	Kind          int     `json:"kind"`
	ThrustX       float32 `json:"thrust_x"`
	ThrustY       float32 `json:"thrust_y"`
}

// RemoteController defers evaluation to an external inference service
// over a persistent websocket connection, using request/response framing
// with a correlation id so concurrent in-flight requests from other
// matches sharing the connection never cross-deliver. Preserves the
// contract that the same input produces the same Action within a run
// provided the remote service itself is deterministic.
type RemoteController struct {
	conn *websocket.Conn

	mu      sync.Mutex
	pending map[uint64]chan remoteResponse
	nextID  atomic.Uint64

	requestTimeout time.Duration
	maxRetries     int
	pingInterval   time.Duration
	pongWait       time.Duration
	laserDamage    float32
	laserRange     float32

	done chan struct{}
}

// DialRemoteController opens a websocket connection to the inference
// service at url and starts its read pump and ping loop.
func DialRemoteController(url string, cfg *Config) (*RemoteController, error) {
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, fmt.Errorf("remote controller dial: %w", err)
	}
	ping := time.Duration(parameter.RemotePingIntervalMillis) * time.Millisecond
	rc := &RemoteController{
		conn:           conn,
		pending:        make(map[uint64]chan remoteResponse),
		requestTimeout: time.Duration(parameter.RemoteRequestTimeoutMillis) * time.Millisecond,
		maxRetries:     parameter.RemoteRequestMaxRetries,
		pingInterval:   ping,
		pongWait:       4 * ping,
		laserDamage:    cfg.LaserDamageDefault,
		laserRange:     cfg.LaserRangeDefault,
		done:           make(chan struct{}),
	}
	rc.conn.SetPongHandler(func(string) error {
		return rc.conn.SetReadDeadline(time.Now().Add(rc.pongWait))
	})
	_ = rc.conn.SetReadDeadline(time.Now().Add(rc.pongWait))
	go rc.readPump()
	go rc.pingLoop()
	return rc, nil
}

func (rc *RemoteController) readPump() {
	for {
		var resp remoteResponse
		if err := rc.conn.ReadJSON(&resp); err != nil {
			rc.mu.Lock()
			for id, ch := range rc.pending {
				close(ch)
				delete(rc.pending, id)
			}
			rc.mu.Unlock()
			close(rc.done)
			return
		}
		rc.mu.Lock()
		ch, ok := rc.pending[resp.CorrelationID]
		if ok {
			delete(rc.pending, resp.CorrelationID)
		}
		rc.mu.Unlock()
		if ok {
			ch <- resp
			close(ch)
		}
	}
}

func (rc *RemoteController) pingLoop() {
	ticker := time.NewTicker(rc.pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if err := rc.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-rc.done:
			return
		}
	}
}

// Close terminates the underlying connection.
func (rc *RemoteController) Close() error { return rc.conn.Close() }

func (rc *RemoteController) Decide(p Perception, cfg *Config, shipIdx int, rng *rand.Rand) Action {
	var lastErr error
	for attempt := 0; attempt <= rc.maxRetries; attempt++ {
		resp, err := rc.roundTrip(p, shipIdx)
		if err == nil {
			return decodeRemoteResponse(resp, p, cfg)
		}
		lastErr = err
	}
	_ = lastErr
	// Exhausted retries: Decide returns Idle. The match runner cannot tell
	// this apart from a chosen Idle, so the match continues and is not
	// marked failed.
	return Action{Kind: ActionIdle}
}

func (rc *RemoteController) roundTrip(p Perception, shipIdx int) (remoteResponse, error) {
	id := rc.nextID.Add(1)
	ch := make(chan remoteResponse, 1)

	rc.mu.Lock()
	rc.pending[id] = ch
	rc.mu.Unlock()

	req := remoteRequest{CorrelationID: id, ShipIdx: shipIdx, Perception: p.ToVector()}
	if err := rc.conn.WriteJSON(req); err != nil {
		rc.mu.Lock()
		delete(rc.pending, id)
		rc.mu.Unlock()
		return remoteResponse{}, fmt.Errorf("remote controller write: %w", err)
	}

	select {
	case resp, ok := <-ch:
		if !ok {
			return remoteResponse{}, fmt.Errorf("remote controller: connection closed")
		}
		return resp, nil
	case <-time.After(rc.requestTimeout):
		rc.mu.Lock()
		delete(rc.pending, id)
		rc.mu.Unlock()
		return remoteResponse{}, fmt.Errorf("remote controller: request %d timed out", id)
	}
}

func decodeRemoteResponse(resp remoteResponse, p Perception, cfg *Config) Action {
	switch ActionKind(resp.Kind) {
	case ActionFire:
		dist, hasEnemy := p.NearestEnemyDistance()
		if !hasEnemy || dist > cfg.LaserRangeDefault {
			if hasEnemy {
				e := p.Enemies[0]
				dir := vmath.Vec2{X: e.DXNorm, Y: e.DYNorm}.Normalize()
				return Action{Kind: ActionThrust, Thrust: dir}
			}
			return Action{Kind: ActionThrust, Thrust: clampedThrust(resp.ThrustX, resp.ThrustY)}
		}
		return Action{Kind: ActionFire, Weapon: Weapon{Kind: WeaponLaser, Damage: cfg.LaserDamageDefault, Range: cfg.LaserRangeDefault}}
	case ActionThrust:
		return Action{Kind: ActionThrust, Thrust: clampedThrust(resp.ThrustX, resp.ThrustY)}
	case ActionLoot:
		return Action{Kind: ActionLoot}
	default:
		return Action{Kind: ActionIdle}
	}
}

func clampedThrust(x, y float32) vmath.Vec2 {
	return vmath.Vec2{X: clampSigned(x), Y: clampSigned(y)}
}
