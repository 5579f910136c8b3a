package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/milk9111/pixelplatformer/level"
	"github.com/milk9111/pixelplatformer/server"
)

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	dir := flag.String("dir", "levels", "directory holding level JSON files")
	rps := flag.Float64("write-rps", server.DefaultRateLimitConfig.RequestsPerSecond, "writes per second per client")
	burst := flag.Int("write-burst", server.DefaultRateLimitConfig.Burst, "write burst per client")
	origins := flag.String("cors", "", "comma separated allowed origins (default local only)")
	flag.Parse()

	store, err := level.NewDirStore(*dir)
	if err != nil {
		log.Fatal(err)
	}

	rl := server.DefaultRateLimitConfig
	rl.RequestsPerSecond = *rps
	rl.Burst = *burst
	cfg := server.RouterConfig{Store: store, RateLimit: &rl}
	if *origins != "" {
		cfg.CORSOrigins = strings.Split(*origins, ",")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Printf("LevelServer: serving levels from %s", store.Dir())
	if err := server.New(cfg).ListenAndServe(ctx, *addr); err != nil {
		log.Fatal(err)
	}
}
