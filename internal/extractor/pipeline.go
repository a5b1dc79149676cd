// internal/extractor/pipeline.go
package extractor

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/kkundanI/Linkedin-Post-Extractor-Website/internal/compliance"
	"github.com/kkundanI/Linkedin-Post-Extractor-Website/internal/httpclient"
)

// Strategy is one self-contained method of attempting extraction. Each has
// its own failure mode and is tried at most once per request, in a fixed
// priority order.
type Strategy interface {
	Name() string
	Attempt(ctx context.Context, postURL string) (*ExtractedContent, error)
}

// Observer receives per-strategy attempt outcomes, letting the monitoring
// layer record metrics without the pipeline depending on it.
type Observer interface {
	StrategyAttempted(strategy string, duration time.Duration, err error)
}

// Pipeline runs the extraction strategies in priority order: a strategy's
// failure of any kind is swallowed and the pipeline advances; the first
// success is returned and the caller never learns which strategy produced
// it. When every strategy fails the pipeline surfaces one aggregate error.
type Pipeline struct {
	strategies []Strategy
	observer   Observer
	logger     zerolog.Logger
}

// PipelineConfig holds the explicit configuration the pipeline needs. The
// rendering credential is passed here rather than read from the ambient
// environment so both the configured and unconfigured paths are
// deterministic under test.
type PipelineConfig struct {
	Rendered RenderedConfig
	Client   *httpclient.Client
	Robots   *compliance.Checker
}

// NewPipeline builds the standard three-strategy pipeline: rendered DOM,
// static HTML, script mining.
func NewPipeline(config PipelineConfig, observer Observer, logger zerolog.Logger) *Pipeline {
	if config.Client == nil {
		config.Client = httpclient.New(httpclient.Config{})
	}
	return &Pipeline{
		strategies: []Strategy{
			NewRenderedStrategy(config.Rendered, logger),
			NewStaticStrategy(config.Client, config.Robots, logger),
			NewScriptMineStrategy(config.Client, config.Robots, logger),
		},
		observer: observer,
		logger:   logger.With().Str("component", "pipeline").Logger(),
	}
}

// NewPipelineWithStrategies builds a pipeline over an explicit ordered
// strategy list.
func NewPipelineWithStrategies(strategies []Strategy, observer Observer, logger zerolog.Logger) *Pipeline {
	return &Pipeline{
		strategies: strategies,
		observer:   observer,
		logger:     logger.With().Str("component", "pipeline").Logger(),
	}
}

// Extract validates the request and runs the strategies sequentially,
// returning the first successful result along with the name of the
// strategy that produced it. Demo mode bypasses the strategies entirely
// and returns the fixed sample payload.
func (p *Pipeline) Extract(ctx context.Context, req ExtractRequest) (*ExtractedContent, string, error) {
	if req.DemoMode {
		return DemoContent(), "demo", nil
	}

	postURL, err := ValidatePostURL(req.URL)
	if err != nil {
		return nil, "", err
	}

	var attempts []*StrategyError
	for _, strategy := range p.strategies {
		if ctx.Err() != nil {
			return nil, "", fmt.Errorf("extraction cancelled: %w", ctx.Err())
		}

		start := time.Now()
		content, err := strategy.Attempt(ctx, postURL)
		duration := time.Since(start)
		if p.observer != nil {
			p.observer.StrategyAttempted(strategy.Name(), duration, err)
		}

		if err != nil {
			p.logger.Warn().
				Str("strategy", strategy.Name()).
				Dur("duration", duration).
				Err(err).
				Msg("strategy failed, falling through")
			attempts = append(attempts, &StrategyError{Strategy: strategy.Name(), Err: err})
			continue
		}

		if err := content.Validate(); err != nil {
			attempts = append(attempts, &StrategyError{Strategy: strategy.Name(), Err: err})
			continue
		}

		p.logger.Info().
			Str("strategy", strategy.Name()).
			Dur("duration", duration).
			Int("media", content.MediaCount()).
			Msg("extraction succeeded")
		return content, strategy.Name(), nil
	}

	return nil, "", &AllFailedError{URL: postURL, Attempts: attempts}
}
