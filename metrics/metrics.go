// Package metrics exposes prometheus series for the generation pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// StrategySessions counts finished strategy sessions by outcome.
	StrategySessions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "strategist_strategy_sessions_total",
		Help: "Total number of strategy sessions by outcome",
	}, []string{"outcome"})

	// StrategyFragments counts non-empty fragments appended to the content buffer.
	StrategyFragments = promauto.NewCounter(prometheus.CounterOpts{
		Name: "strategist_strategy_fragments_total",
		Help: "Total number of streamed strategy fragments",
	})

	// ActiveStreams is 1 while a strategy session is streaming.
	ActiveStreams = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "strategist_strategy_active_streams",
		Help: "Number of strategy sessions currently streaming",
	})

	// VideoJobs counts finished video jobs by outcome.
	VideoJobs = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "strategist_video_jobs_total",
		Help: "Total number of video jobs by outcome",
	}, []string{"outcome"})

	// VideoPolls counts operation polls sent to the video collaborator.
	VideoPolls = promauto.NewCounter(prometheus.CounterOpts{
		Name: "strategist_video_polls_total",
		Help: "Total number of video operation polls",
	})

	// SSESubscribers is the gauge of connected live-update subscribers.
	SSESubscribers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "strategist_sse_subscribers",
		Help: "Number of connected SSE subscribers",
	})

	// SSEDropped counts messages dropped because a subscriber was not reading.
	SSEDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "strategist_sse_dropped_total",
		Help: "Total number of SSE messages dropped due to slow subscribers",
	})

	// SocialPublishes counts simulated social publishes.
	SocialPublishes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "strategist_social_publishes_total",
		Help: "Total number of social posts published",
	})
)

// Outcome labels
const (
	OutcomeCompleted = "completed"
	OutcomeError     = "error"
	OutcomeFailed    = "failed"
)
