package router

import (
	"io"
	"net"
	"net/http"

	"go.uber.org/zap"
)

// upstream. tunnels the hijacked client connection to the websocket server at addr.
func (api *API) upstream(name, network, addr string) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		peer, err := net.Dial(network, addr)
		if err != nil {
			api.log.Error("dial upstream error", zap.String("upstream", name), zap.Error(err))
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		if err := r.Write(peer); err != nil {
			api.log.Error("write request to upstream error", zap.String("upstream", name), zap.Error(err))
			peer.Close()
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		hj, ok := w.(http.Hijacker)
		if !ok {
			peer.Close()
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		conn, _, err := hj.Hijack() // get tcp socket
		if err != nil {
			peer.Close()
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		go func() {
			defer peer.Close()
			defer conn.Close()
			io.Copy(peer, conn)
		}()
		go func() {
			defer peer.Close()
			defer conn.Close()
			io.Copy(conn, peer)
		}()
	}
}
