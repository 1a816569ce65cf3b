// Package server binds a platform-neutral Handler to a listening socket.
//
// Two adapters are provided: Server wraps net/http and FastHTTP wraps
// valyala/fasthttp. Both convert the native request into an *http.Request,
// call Handler.Respond and write the returned *handler.Response back, and
// both shut down gracefully when the serving context is cancelled.
//
// # Basic Usage
//
//	srv := server.New(":8080",
//		server.WithShutdownTimeout(10*time.Second),
//		server.WithLogger(log),
//	)
//	if err := srv.Serve(ctx, k); err != nil {
//		log.Error("server failed", logger.Error(err))
//	}
//
// # Adapter Selection
//
// The adapter is chosen statically from configuration:
//
//	var cfg server.Config
//	config.MustLoad(&cfg) // SERVER_ADAPTER=fasthttp, SERVER_ADDR=:9000, ...
//
//	adapter, err := server.NewAdapter(cfg, server.WithLogger(log))
//	if err != nil {
//		return err
//	}
//	return adapter.Serve(ctx, k)
//
// # errgroup Integration
//
// Server.Run returns a func() error suitable for errgroup.Group.Go:
//
//	g, ctx := errgroup.WithContext(ctx)
//	g.Go(srv.Run(ctx, server.HTTPHandler(k)))
//	g.Go(metricsSrv.Run(ctx, promhttp.Handler()))
//	return g.Wait()
//
// Standalone conversion helpers HTTPHandler and FastHTTPHandler are exported
// for mounting a Handler into an existing server.
package server
