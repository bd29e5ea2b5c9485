package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"
	"github.com/lintang-b-s/greenroute/pkg/concurrent"
	"github.com/lintang-b-s/greenroute/pkg/util"
)

type User struct {
	io   sync.Mutex
	conn io.ReadWriteCloser

	id  uint
	hub *Hub
}

func (u *User) readRequest() (*dualRouteRequest, error) {
	u.io.Lock()
	defer u.io.Unlock()

	h, r, err := wsutil.NextReader(u.conn, ws.StateServerSide)
	if err != nil {
		return nil, err
	}
	if h.OpCode.IsControl() {
		return nil, wsutil.ControlFrameHandler(u.conn, ws.StateServerSide)(h, r)
	}

	req := &dualRouteRequest{}
	decoder := json.NewDecoder(r)
	if err := decoder.Decode(req); err != nil {
		return nil, err
	}
	return req, nil
}

// DualRoute. reads one route request from the connection and writes the fastest and greenest route back.
func (u *User) DualRoute() error {
	req, err := u.readRequest()
	if err != nil {
		u.conn.Close()
		return err
	}

	if req == nil {
		return nil
	}

	if err := validateStruct(req); err != nil {
		return u.writeError(http.StatusBadRequest, err.Error())
	}

	ctx, cancel := context.WithTimeout(context.Background(), u.hub.timeout)
	defer cancel()

	view, err := u.hub.routingService.DualRoute(ctx, req.StartLat, req.StartLon, req.EndLat, req.EndLon)
	if err != nil {
		switch util.ErrorCode(err) {
		case util.ErrBadParamInput:
			return u.writeError(http.StatusBadRequest, err.Error())
		case util.ErrNotFound:
			return u.writeError(http.StatusNotFound, err.Error())
		default:
			return u.writeError(http.StatusInternalServerError, util.MessageInternalServerError)
		}
	}

	return u.write(envelope{"data": NewDualRouteResponse(view)})
}

func (u *User) writeError(status int, message string) error {
	return u.write(envelope{"error": map[string]string{
		"code":    http.StatusText(status),
		"message": message,
	}})
}

func (u *User) write(x interface{}) error {
	w := wsutil.NewWriter(u.conn, ws.StateServerSide, ws.OpText)
	encoder := json.NewEncoder(w)

	u.io.Lock()
	defer u.io.Unlock()

	if err := encoder.Encode(x); err != nil {
		return err
	}

	return w.Flush()
}

type Hub struct {
	mu             sync.RWMutex
	seq            uint
	us             []*User
	ns             map[uint]*User
	routingService RoutingService
	timeout        time.Duration

	pool *concurrent.Pool
}

func NewHub(pool *concurrent.Pool, routingService RoutingService, timeout time.Duration) *Hub {
	hub := &Hub{
		pool:           pool,
		ns:             make(map[uint]*User),
		us:             make([]*User, 0),
		routingService: routingService,
		timeout:        timeout,
	}

	return hub
}

func (h *Hub) Register(conn net.Conn) *User {
	user := &User{
		hub:  h,
		conn: conn,
	}

	h.mu.Lock()
	user.id = h.seq
	h.ns[user.id] = user
	h.us = append(h.us, user)

	h.seq++
	h.mu.Unlock()

	return user
}

func (h *Hub) Remove(user *User) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.remove(user)
}

func (h *Hub) remove(user *User) {
	if _, ok := h.ns[user.id]; !ok {
		return
	}
	delete(h.ns, user.id)

	i := sort.Search(len(h.us), func(i int) bool {
		return h.us[i].id >= user.id
	})

	newUs := make([]*User, len(h.us)-1)
	copy(newUs[:i], h.us[:i])
	copy(newUs[i:], h.us[i+1:])
	h.us = newUs
}

func (h *Hub) NumUsers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.us)
}

func (h *Hub) RemoveAllUser() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, user := range h.us {
		user.conn.Close()
	}
	h.us = h.us[:0]
	h.ns = make(map[uint]*User)
}

// Schedule runs task on the hub goroutine pool.
func (h *Hub) Schedule(task func()) error {
	return h.pool.Schedule(task)
}
