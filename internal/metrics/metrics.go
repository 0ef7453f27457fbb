// Package metrics exposes Prometheus collectors for the chunk pipeline.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ChunksLive = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "voxelstream",
		Name:      "chunks_live",
		Help:      "Chunk records currently held by the streaming manager.",
	})
	ChunksGenerated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "voxelstream",
		Name:      "chunks_generated_total",
		Help:      "Chunk generation jobs completed by workers.",
	})
	ChunksEvicted = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "voxelstream",
		Name:      "chunks_evicted_total",
		Help:      "Chunk records evicted after the observer moved away.",
	})
	StaleResults = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "voxelstream",
		Name:      "stale_results_total",
		Help:      "Worker results dropped because their chunk was already evicted.",
	})
	MeshesBuilt = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "voxelstream",
		Name:      "meshes_built_total",
		Help:      "Surface meshes built by workers.",
	})
	GenDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "voxelstream",
		Name:      "generation_seconds",
		Help:      "Wall time per chunk generation job.",
		Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12),
	})
	MeshDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "voxelstream",
		Name:      "mesh_build_seconds",
		Help:      "Wall time per chunk mesh build.",
		Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 12),
	})
	WaterQueue = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "voxelstream",
		Name:      "water_queue_depth",
		Help:      "Positions queued for water automaton evaluation.",
	})
	ColdCacheHits = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "voxelstream",
		Name:      "cold_cache_hits_total",
		Help:      "Chunk requests served from the compressed eviction cache.",
	})
)

func init() {
	prometheus.MustRegister(
		ChunksLive, ChunksGenerated, ChunksEvicted, StaleResults,
		MeshesBuilt, GenDuration, MeshDuration, WaterQueue, ColdCacheHits,
	)
}

// Handler returns the HTTP handler serving the registered collectors.
func Handler() http.Handler {
	return promhttp.Handler()
}
