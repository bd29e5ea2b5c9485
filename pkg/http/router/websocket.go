package router

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/gobwas/ws"
	"github.com/lintang-b-s/greenroute/pkg/concurrent"
	"github.com/lintang-b-s/greenroute/pkg/http/router/controllers"
	http_server "github.com/lintang-b-s/greenroute/pkg/http/server"
	"github.com/mailru/easygo/netpoll"
	"go.uber.org/zap"
)

const (
	WS_POOL_SIZE       = 64
	WS_POOL_QUEUE      = 16
	WS_POOL_PREWARM    = 8
	WS_ACCEPT_TIMEOUT  = 1000 * time.Millisecond
	WS_ACCEPT_COOLDOWN = 5 * time.Millisecond
)

// handleWebsocket. dual route websocket server. connections are accepted through epoll and every
// request runs on the goroutine pool, ref: https://sergey.kamardin.org/articles/million-websocket-and-go/
func (api *API) handleWebsocket(ctx context.Context, config http_server.Config,
	routingService controllers.RoutingService, errChan chan error,
) {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", config.WebsocketPort))
	if err != nil {
		errChan <- err
		return
	}
	api.log.Info(fmt.Sprintf("dual route websocket API run on port %d", config.WebsocketPort))

	acceptDesc, err := netpoll.HandleListener(ln, netpoll.EventRead|netpoll.EventOneShot)
	if err != nil {
		ln.Close()
		errChan <- err
		return
	}

	api.poller, err = netpoll.New(nil)
	if err != nil {
		ln.Close()
		errChan <- err
		return
	}

	api.pool = concurrent.NewPool(WS_POOL_SIZE, WS_POOL_QUEUE)
	api.hub = controllers.NewHub(api.pool, routingService, config.Timeout)

	api.pool.Spawn(WS_POOL_PREWARM)

	// accept is a channel to signal about next incoming connection Accept() results.
	accept := make(chan error, 1)

	err = api.poller.Start(acceptDesc, func(ev netpoll.Event) {
		defer api.poller.Resume(acceptDesc)
		err := api.pool.ScheduleTimeout(WS_ACCEPT_TIMEOUT, func() {
			conn, err := ln.Accept()
			if err != nil {
				accept <- err
				return
			}

			accept <- nil
			api.handle(conn)
		})
		if err == nil {
			err = <-accept
		}
		if err == nil {
			return
		}

		var ne net.Error
		switch {
		case errors.Is(err, concurrent.ErrPoolClosed), errors.Is(err, net.ErrClosed):
			return
		case errors.Is(err, concurrent.ErrScheduleTimeout), errors.As(err, &ne) && ne.Timeout():
			// every goroutine of the pool stayed busy, cool the server down before the next accept
			api.log.Sugar().Infof("accept error: %v; retrying in %s", err, WS_ACCEPT_COOLDOWN)
			time.Sleep(WS_ACCEPT_COOLDOWN)
		default:
			api.log.Error("accept error", zap.Error(err))
		}
	})
	if err != nil {
		ln.Close()
		errChan <- err
		return
	}

	<-ctx.Done()

	api.poller.Stop(acceptDesc)
	ln.Close()

	api.hub.RemoveAllUser()
	api.pool.Close()

	api.log.Info("websocket server stopped")
}

// handle. upgrades conn to a websocket and registers its read events with the poller.
func (api *API) handle(conn net.Conn) {
	br := bufio.NewReader(conn)

	rw := struct {
		io.Reader
		io.Writer
	}{br, conn}

	hs, err := ws.Upgrade(rw)
	if err != nil {
		api.log.Info("upgrade error", zap.Error(err), zap.String("connection", nameConn(conn)))
		conn.Close()
		return
	}

	api.log.Info("established websocket connection", zap.String("connection", nameConn(conn)),
		zap.String("protocol", hs.Protocol))

	user := api.hub.Register(conn)

	desc, err := netpoll.HandleRead(conn)
	if err != nil {
		api.log.Error("netpoll handle read error", zap.Error(err))
		api.hub.Remove(user)
		conn.Close()
		return
	}

	api.poller.Start(desc, func(ev netpoll.Event) {
		if ev&(netpoll.EventReadHup|netpoll.EventHup) != 0 {
			// peer closed its end of the connection
			api.log.Info("user disconnected from websocket server", zap.String("connection", nameConn(conn)))

			api.poller.Stop(desc)
			api.hub.Remove(user)
			conn.Close()
			return
		}

		err := api.hub.Schedule(func() {
			if err := user.DualRoute(); err != nil {
				api.log.Info("closing websocket connection", zap.Error(err))
				api.poller.Stop(desc)
				api.hub.Remove(user)
			}
		})
		if err != nil {
			api.log.Error("schedule dual route request error", zap.Error(err))
		}
	})
}

func nameConn(conn net.Conn) string {
	return conn.LocalAddr().String() + " > " + conn.RemoteAddr().String()
}
