/*
Cgtcalcd is a web server that calculates capital gains tax. It takes the purchase price, sale price, expenses,
investment type and income range as query parameters and returns the tax owed in CSV or JSON format.

Usage:

	cgtcalcd [flags]

The flags are:

	-b, -burst int
		Number of requests allowed at once before rate limiting applies. Defaults to 10.

	-c, -cache_size int
		Number of entries to keep in the response cache. Defaults to 1000.

	-h, -help
		Print this help message.

	-log_dir string
		Directory to write logs to. Defaults to a temporary directory.

	-p, -port string
		Port to listen on. Defaults to 8080.

	-r, -rate_limit duration
		Requests are rate limited to one per this duration, after the burst. Zero disables rate limiting.
		Defaults to 10ms.

	-v int
		Maximum log verbosity. Defaults to 0.
*/
package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/golang/glog"
	"github.com/tslnc04/cgt-calculator/internal/server"
	"golang.org/x/time/rate"
)

//nolint:lll
const usage = `Cgtcalcd is a web server that calculates capital gains tax. It takes the purchase price, sale price, expenses,
investment type and income range as query parameters and returns the tax owed in CSV or JSON format.

Usage:

	cgtcalcd [flags]

The flags are:

	-b, -burst int
		Number of requests allowed at once before rate limiting applies. Defaults to 10.

	-c, -cache_size int
		Number of entries to keep in the response cache. Defaults to 1000.

	-h, -help
		Print this help message.

	-log_dir string
		Directory to write logs to. Defaults to a temporary directory.

	-p, -port string
		Port to listen on. Defaults to 8080.

	-r, -rate_limit duration
		Requests are rate limited to one per this duration, after the burst. Zero disables rate limiting.
		Defaults to 10ms.

	-v int
		Maximum log verbosity. Defaults to 0.
`

var (
	burst     int
	cacheSize int
	help      bool
	port      string
	rateLimit time.Duration
)

func init() {
	const (
		burstUsage     = "number of requests allowed at once before rate limiting applies"
		cacheUsage     = "number of entries to keep in the response cache"
		helpUsage      = "print this help message"
		portUsage      = "port to listen on"
		rateLimitUsage = "requests are rate limited to one per this duration, zero disables rate limiting"

		defaultBurst     = 10
		defaultCacheSize = 1000
		defaultHelp      = false
		defaultPort      = ":8080"
		defaultRateLimit = 10 * time.Millisecond
	)

	flag.IntVar(&burst, "burst", defaultBurst, burstUsage)
	flag.IntVar(&burst, "b", defaultBurst, burstUsage+" (shorthand)")

	flag.IntVar(&cacheSize, "cache_size", defaultCacheSize, cacheUsage)
	flag.IntVar(&cacheSize, "c", defaultCacheSize, cacheUsage+" (shorthand)")

	flag.BoolVar(&help, "help", defaultHelp, helpUsage)
	flag.BoolVar(&help, "h", defaultHelp, helpUsage+" (shorthand)")

	flag.StringVar(&port, "port", defaultPort, portUsage)
	flag.StringVar(&port, "p", defaultPort, portUsage+" (shorthand)")

	flag.DurationVar(&rateLimit, "rate_limit", defaultRateLimit, rateLimitUsage)
	flag.DurationVar(&rateLimit, "r", defaultRateLimit, rateLimitUsage+" (shorthand)")

	// Tell glog to log to stderr as well as the log file.
	_ = flag.Set("alsologtostderr", "true")
}

func main() {
	flag.Parse()

	if help {
		fmt.Print(usage)

		return
	}

	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	limit := rate.Inf
	if rateLimit > 0 {
		limit = rate.Every(rateLimit)
	}

	handler, err := server.NewRequestHandler(cacheSize, limit, burst)
	if err != nil {
		glog.Errorf("failed to create request handler: %s", err)

		os.Exit(2)
	}

	http.Handle(fmt.Sprintf("GET %s", server.APIBasePath), handler)
	http.HandleFunc("/", server.HandleHealthCheck)

	glog.V(10).Infof("Starting server on port %s", port)

	err = http.ListenAndServe(port, nil)
	if err != nil {
		glog.Errorf("failed to start server: %s", err)

		os.Exit(2)
	}
}
