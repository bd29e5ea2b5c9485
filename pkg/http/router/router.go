package router

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/justinas/alice"
	"github.com/lintang-b-s/greenroute/pkg/concurrent"
	"github.com/lintang-b-s/greenroute/pkg/http/router/controllers"
	router_helper "github.com/lintang-b-s/greenroute/pkg/http/router/routerhelper"
	http_server "github.com/lintang-b-s/greenroute/pkg/http/server"
	"github.com/mailru/easygo/netpoll"
	"github.com/rs/cors"
	"go.uber.org/zap"

	_ "net/http/pprof"

	httpSwagger "github.com/swaggo/http-swagger"
)

type API struct {
	log    *zap.Logger
	hub    *controllers.Hub
	poller netpoll.Poller
	pool   *concurrent.Pool
}

func NewAPI(log *zap.Logger) *API {
	return &API{log: log}
}

//	@title			greenroute API
//	@version		1.0
//	@description	fastest vs greenest route engine for openstreetmap road networks.

// @host		localhost
// @BasePath	/api

// Handler. REST handler with the full middleware chain.
func (api *API) Handler(routingService controllers.RoutingService, useRateLimit bool) http.Handler {
	router := httprouter.New()

	router.GET("/doc/*any", swaggerHandler)

	router.Handler(http.MethodGet, "/debug/pprof/*item", http.DefaultServeMux)

	group := router_helper.NewRouteGroup(router, "/api")

	routingRoutes := controllers.New(routingService, api.log)

	routingRoutes.Routes(group)

	return alice.New(api.middlewares(useRateLimit)...).Then(router)
}

func (api *API) middlewares(useRateLimit bool) []alice.Constructor {
	corsHandler := cors.New(cors.Options{ //nolint:gocritic // ignore
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300, //nolint:mnd // ignore
	})

	mwChain := []alice.Constructor{corsHandler.Handler, EnforceJSONHandler, api.recoverPanic,
		RealIP, Heartbeat("healthz"), Logger(api.log)}
	if useRateLimit {
		mwChain = append(mwChain, Limit)
	}
	return mwChain
}

func (api *API) Run(
	ctx context.Context,
	config http_server.Config,
	useRateLimit bool,
	routingService controllers.RoutingService,
) error {
	api.log.Info("Run httprouter API")

	var (
		errChan      = make(chan error, 1)
		errProxyChan = make(chan error, 1)
	)

	go func() {
		api.handleWebsocket(ctx, config, routingService, errChan)
	}()

	proxy := api.newWebsocketProxy(ctx, config)
	go func() {
		api.log.Info(fmt.Sprintf("WebSocket proxy running on port %d", config.ProxyPort))
		if err := proxy.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errProxyChan <- err
		}
	}()

	srv := http_server.New(ctx, api.Handler(routingService, useRateLimit), config, false)
	api.log.Info(fmt.Sprintf("API run on port %d", config.Port))

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-errChan:
		api.log.Error("Websocket error, shutting down server", zap.Error(err))
		_ = srv.Shutdown(context.Background())
		_ = proxy.Shutdown(context.Background())
		return err
	case err := <-errProxyChan:
		api.log.Error("Websocket proxy error, shutting down server", zap.Error(err))
		_ = srv.Shutdown(context.Background())
		return err
	case err := <-serverErr:
		api.log.Info("HTTP server stopped", zap.Error(err))
		_ = proxy.Shutdown(context.Background())
		return err
	case <-ctx.Done():
		api.log.Info("Context canceled, shutting down server")
		_ = srv.Shutdown(context.Background())
		_ = proxy.Shutdown(context.Background())
		return ctx.Err()
	}
}

func (api *API) newWebsocketProxy(ctx context.Context, config http_server.Config) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", api.upstream("dual route", "tcp", "localhost:"+strconv.Itoa(config.WebsocketPort)))

	proxyConfig := config
	proxyConfig.Port = config.ProxyPort
	srv := http_server.New(ctx, mux, proxyConfig, false)
	// hijacked connections must not be wrapped by the timeout handler
	srv.Handler = mux
	return srv
}

func swaggerHandler(res http.ResponseWriter, req *http.Request, p httprouter.Params) {
	httpSwagger.WrapHandler(res, req)
}
