package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	flag "github.com/spf13/pflag"

	"github.com/lanikai/alphamask"
	"github.com/lanikai/alphamask/internal/logging"
	"github.com/lanikai/alphamask/internal/video"
)

// Populated via -ldflags="-X ...". See Makefile.
var GitRevisionId string
var GitTag string

var log = logging.DefaultLogger.WithTag("alphamaskd")

// version displays information and exits successfully (GNU convention)
func version() {
	fmt.Println("alphamaskd", GitTag, GitRevisionId)
	fmt.Println("Copyright 2019 Lanikai Labs LLC. All rights reserved.")
	fmt.Println("Visit https://lanikailabs.com for more information")
}

func main() {
	flag.Parse()

	if flagHelp {
		help()
		os.Exit(0)
	}

	if flagVersion {
		version()
		os.Exit(0)
	}

	format := video.ParseFormat(flagFormat)
	src := sourceFormat(format)
	if !format.HasAlpha() || src == video.FormatUnknown {
		fmt.Fprintf(os.Stderr, "unusable output format %q (try a420, argb or ayuv)\n", flagFormat)
		os.Exit(1)
	}
	if flagWidth < 16 || flagHeight < 16 || flagFPS < 1 {
		fmt.Fprintln(os.Stderr, "implausible frame geometry")
		os.Exit(1)
	}

	hub := newHub()

	el, err := alphamask.New(alphamask.Config{
		Sink:    hub,
		Formats: []video.Format{format},
	})
	if err != nil {
		log.Fatalf("%v", err)
	}
	el.Start()

	// Two synthetic producers: color bars on the video input, an orbiting
	// disc matte on the alpha input.
	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		if err := runVideoSource(ctx, el.VideoInput(), src); err != nil {
			log.Error("video source: %v", err)
		}
	}()
	go func() {
		defer wg.Done()
		if err := runAlphaSource(ctx, el.AlphaInput()); err != nil {
			log.Error("alpha source: %v", err)
		}
	}()

	// Routes
	http.HandleFunc("/", hub.indexHandler)
	http.HandleFunc("/ws", hub.websocketHandler)

	srv := &http.Server{Addr: fmt.Sprintf(":%d", flagPort)}

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig

		log.Info("shutting down")
		cancel()
		el.Close()
		hub.close()
		srv.Shutdown(context.Background())
	}()

	// Get hostname
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "localhost"
	}

	fmt.Printf("Preview is running. Open http://%s:%d in a browser.\n", hostname, flagPort)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("ListenAndServe: %v", err)
	}

	wg.Wait()
}
