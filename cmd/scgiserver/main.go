// A sample routed application served over SCGI. A Gemini gateway such as
// gmid or gmnisrv connects to the listener and forwards requests.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gemgate/gemgate/app"
	"github.com/gemgate/gemgate/config"
	"github.com/gemgate/gemgate/middleware"
	"github.com/gemgate/gemgate/request"
	"github.com/gemgate/gemgate/response"
	"github.com/gemgate/gemgate/router"
	"github.com/gemgate/gemgate/scgi"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalln(err)
	}

	rt := router.New()
	if cfg.Logging.Colored {
		rt.Use(middleware.LoggingColored)
	} else {
		rt.Use(middleware.Logging)
	}
	if cfg.Metrics.Enabled {
		rt.Use(middleware.Metrics)
	}

	rt.RegisterFunc("/", func(ctx context.Context, r *request.Request) (*response.Response, error) {
		return response.Gemtext("# gemgate\n\nServed over SCGI.\n"), nil
	})

	rt.RegisterFunc("/hello/:name", func(ctx context.Context, r *request.Request) (*response.Response, error) {
		return response.Gemtext(fmt.Sprintf("# Hello, %s!\n", r.Params["name"])), nil
	})

	rt.RegisterFunc("/user/:name/post/:id", func(ctx context.Context, r *request.Request) (*response.Response, error) {
		body := fmt.Sprintf("# Post %s\n\nBy %s.\n", r.Params["id"], r.Params["name"])
		return response.Gemtext(body), nil
	})

	rt.RegisterFunc("/search", func(ctx context.Context, r *request.Request) (*response.Response, error) {
		if r.Query == "" {
			return response.Input("Search for?"), nil
		}
		return response.Gemtext(fmt.Sprintf("# Results for %q\n\nNothing yet.\n", r.Query)), nil
	})

	var handler app.Handler = rt.Seal()

	server, err := scgi.Serve(scgi.Options{
		Network:       cfg.Server.Network,
		Address:       cfg.Server.Address,
		MaxHeaderSize: cfg.Server.MaxHeaderSize,
		ReadTimeout:   cfg.Server.ReadTimeout,
		WriteTimeout:  cfg.Server.WriteTimeout,
	}, handler)
	if err != nil {
		log.Fatalln("unable to start server:", err)
	}
	log.Println("scgi server listening on", cfg.Server.Address)

	if cfg.Metrics.Enabled {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			if err := http.ListenAndServe(cfg.Metrics.Address, mux); err != nil {
				log.Println("metrics endpoint:", err)
			}
		}()
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	log.Println("shutting down")
	if err := server.Close(); err != nil {
		log.Println("unable to close server:", err)
	}
}
