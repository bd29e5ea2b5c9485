package http

import (
	"context"

	http_router "github.com/lintang-b-s/greenroute/pkg/http/router"
	"github.com/lintang-b-s/greenroute/pkg/http/router/controllers"
	http_server "github.com/lintang-b-s/greenroute/pkg/http/server"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type Server struct {
	Log *zap.Logger
}

func NewServer(log *zap.Logger) *Server {
	return &Server{Log: log}
}

// Use. runs the REST api, the websocket server and its proxy until ctx is done or one of them fails.
func (s *Server) Use(
	ctx context.Context,
	useRateLimit bool,
	routingService controllers.RoutingService,
) error {
	config := http_server.Config{
		Port:          viper.GetInt("API_PORT"),
		WebsocketPort: viper.GetInt("WEBSOCKET_PORT"),
		ProxyPort:     viper.GetInt("WEBSOCKET_PROXY_PORT"),
		Timeout:       viper.GetDuration("API_TIMEOUT"),
	}

	server := http_router.NewAPI(s.Log)

	return server.Run(ctx, config, useRateLimit, routingService)
}
