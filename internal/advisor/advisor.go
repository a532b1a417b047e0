// Package advisor delegates natural-language analysis and chat to a
// generative-language provider. Without a configured credential it degrades
// to fixed warning strings instead of failing.
package advisor

import (
	"context"
	"fmt"
	"strings"

	"github.com/whoknows1409/Finance-Tracker-AI/internal/stock"

	"github.com/rs/zerolog"
)

// Warning strings returned in degraded mode (no credential configured).
const (
	AnalysisUnconfigured = "⚠️ Gemini API key not configured. Please add your API key to use AI analysis."
	ChatUnconfigured     = "⚠️ Gemini API key not configured. Please add your API key to use AI chat."
)

// Generator is the single-call seam to the provider, one prompt in, one
// text completion out.
type Generator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

type Advisor struct {
	gen Generator // nil when no credential is configured
	log zerolog.Logger
}

func New(gen Generator, log zerolog.Logger) *Advisor {
	return &Advisor{gen: gen, log: log}
}

// Configured reports whether a provider credential is available.
func (a *Advisor) Configured() bool {
	return a.gen != nil
}

// AnalyzeQuote produces a natural-language analysis of the quote. In
// degraded mode the fixed warning is returned with a nil error.
func (a *Advisor) AnalyzeQuote(ctx context.Context, q *stock.Quote) (string, error) {
	if a.gen == nil {
		return AnalysisUnconfigured, nil
	}
	text, err := a.gen.GenerateText(ctx, analysisPrompt(q))
	if err != nil {
		a.log.Error().Err(err).Str("symbol", q.Symbol).Msg("ai analysis")
		return "", fmt.Errorf("generate analysis: %w", err)
	}
	return text, nil
}

// Chat answers a free-form user message under the fixed system instruction.
// In degraded mode the fixed warning is returned with a nil error.
func (a *Advisor) Chat(ctx context.Context, message string) (string, error) {
	if a.gen == nil {
		return ChatUnconfigured, nil
	}
	text, err := a.gen.GenerateText(ctx, systemPrompt+"\n\nUser: "+message)
	if err != nil {
		a.log.Error().Err(err).Msg("ai chat")
		return "", fmt.Errorf("generate chat response: %w", err)
	}
	return text, nil
}

const systemPrompt = `You are an intelligent financial advisor and stock analysis expert.
Help users with:
1. Stock analysis and investment advice
2. Personal finance management
3. Market insights and trends
4. Investment strategies

Provide helpful, accurate, and actionable financial guidance.
Always remind users to do their own research and consider their risk tolerance.`

func analysisPrompt(q *stock.Quote) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Analyze the following stock data for %s (%s):\n\n", q.CompanyName, q.Symbol)
	fmt.Fprintf(&b, "Current Price: $%.2f\n", q.CurrentPrice)
	fmt.Fprintf(&b, "Daily Change: $%.2f (%.2f%%)\n", q.Change, q.ChangePercent)
	fmt.Fprintf(&b, "Volume: %d\n", q.Volume)
	if q.MarketCap != nil {
		fmt.Fprintf(&b, "Market Cap: $%.0f\n", *q.MarketCap)
	} else {
		b.WriteString("Market Cap: N/A\n")
	}
	fmt.Fprintf(&b, "Sector: %s\n", q.Sector)
	if q.PERatio != nil {
		fmt.Fprintf(&b, "P/E Ratio: %.2f\n", *q.PERatio)
	} else {
		b.WriteString("P/E Ratio: N/A\n")
	}
	if q.DividendYield != nil {
		fmt.Fprintf(&b, "Dividend Yield: %.2f%%\n", *q.DividendYield*100)
	} else {
		b.WriteString("Dividend Yield: N/A\n")
	}
	b.WriteString(`
Provide a comprehensive analysis including:
1. Current market position and recent performance
2. Key financial metrics interpretation
3. Investment outlook (bullish/bearish/neutral)
4. Risk assessment
5. Actionable recommendation for retail investors

Keep the analysis professional but accessible, around 200-300 words.`)
	return b.String()
}
