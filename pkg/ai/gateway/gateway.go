package gateway

import (
	"context"

	"ai-storyteller-be/internal/constant"
	"ai-storyteller-be/internal/pkg/logger"
	"ai-storyteller-be/pkg/llm"
)

// Gateway wraps the LLM provider with the three sampling tiers used by the
// story engine. Trace labels are advisory only: they name the run in logs
// and never change behavior. No retries happen here; provider errors
// propagate to the caller.
type Gateway struct {
	provider     llm.LLMProvider
	logger       logger.ILogger
	traceEnabled bool
}

func NewGateway(provider llm.LLMProvider, log logger.ILogger, traceEnabled bool) *Gateway {
	return &Gateway{
		provider:     provider,
		logger:       log,
		traceEnabled: traceEnabled,
	}
}

// Invoke sends a single prompt at the given sampling temperature and
// returns the raw model text.
func (g *Gateway) Invoke(ctx context.Context, prompt string, temperature float64, traceLabel string) (string, error) {
	if g.traceEnabled {
		g.logger.Info("GATEWAY", "llm run started", map[string]interface{}{
			"run_name":    traceLabel,
			"temperature": temperature,
			"prompt_len":  len(prompt),
		})
	}

	out, err := g.provider.Generate(ctx, prompt, llm.WithTemperature(temperature))
	if err != nil {
		g.logger.Error("GATEWAY", "llm run failed", map[string]interface{}{
			"run_name": traceLabel,
			"error":    err.Error(),
		})
		return "", err
	}

	if g.traceEnabled {
		g.logger.Info("GATEWAY", "llm run finished", map[string]interface{}{
			"run_name":   traceLabel,
			"output_len": len(out),
		})
	}
	return out, nil
}

// InvokeStrict runs at temperature 0.0 for classification and judgment.
func (g *Gateway) InvokeStrict(ctx context.Context, prompt, traceLabel string) (string, error) {
	return g.Invoke(ctx, prompt, constant.TemperatureStrict, traceLabel)
}

// InvokeChat runs at the balanced temperature for short replies.
func (g *Gateway) InvokeChat(ctx context.Context, prompt, traceLabel string) (string, error) {
	return g.Invoke(ctx, prompt, constant.TemperatureChat, traceLabel)
}

// InvokeCreative runs at the high temperature for story writing and rewriting.
func (g *Gateway) InvokeCreative(ctx context.Context, prompt, traceLabel string) (string, error) {
	return g.Invoke(ctx, prompt, constant.TemperatureCreative, traceLabel)
}
