package main

import (
	"flag"
	"log"
	"math"
	"net/http"
	"time"

	"github.com/xlab/closer"

	"voxelstream/internal/config"
	"voxelstream/internal/metrics"
	"voxelstream/internal/profiling"
	"voxelstream/internal/world"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to YAML config (defaults apply when absent)")
		seed       = flag.Int64("seed", 0, "world seed override (0 keeps the configured seed)")
		radius     = flag.Int("radius", 0, "chunk streaming radius override")
		tickRate   = flag.Int("tick-rate", 20, "scheduler ticks per second")
		walkSpeed  = flag.Float64("walk-speed", 4.0, "observer speed in blocks per second")
		logEvery   = flag.Duration("log-every", 5*time.Second, "status log interval")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("voxelstream: %v", err)
	}
	if *seed != 0 {
		cfg.World.Seed = *seed
	}
	if *radius > 0 {
		cfg.Streaming.Radius = *radius
	}

	if cfg.Metrics.Addr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler())
		srv := &http.Server{Addr: cfg.Metrics.Addr, Handler: mux}
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("voxelstream: metrics server: %v", err)
			}
		}()
		closer.Bind(func() { srv.Close() })
		log.Printf("voxelstream: metrics on %s/metrics", cfg.Metrics.Addr)
	}

	mgr := world.NewManager(cfg.GenParams(), cfg.StructureDefs(), cfg.ManagerOptions())
	closer.Bind(mgr.Shutdown)

	stop := make(chan struct{})
	closer.Bind(func() { close(stop) })

	go run(mgr, *tickRate, *walkSpeed, *logEvery, stop)

	log.Printf("voxelstream: streaming seed=%d radius=%d", cfg.World.Seed, cfg.Streaming.Radius)
	closer.Hold()
}

// run drives the streaming loop with a synthetic observer wandering a slow
// circle, exercising request, eviction, generation and meshing exactly as a
// connected renderer would.
func run(mgr *world.Manager, tickRate int, speed float64, logEvery time.Duration, stop chan struct{}) {
	if tickRate <= 0 {
		tickRate = 20
	}
	ticker := time.NewTicker(time.Second / time.Duration(tickRate))
	defer ticker.Stop()

	lastLog := time.Now()
	start := time.Now()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
		}
		profiling.ResetFrame()

		// Observer drifts on a wide circle so fresh chunks keep
		// entering the radius while old ones fall out.
		t := time.Since(start).Seconds() * speed
		ox := math.Cos(t/200) * 400
		oz := math.Sin(t/200) * 400

		mgr.RequestChunksAround(ox, oz)
		mgr.Tick()
		mgr.Evict(ox, oz)

		if time.Since(lastLog) >= logEvery {
			lastLog = time.Now()
			log.Printf("voxelstream: pos=(%.0f,%.0f) chunks=%d water_queue=%d | %s",
				ox, oz, mgr.Registry().Len(), mgr.Water().QueueLen(), profiling.TopN(3))
		}
	}
}
