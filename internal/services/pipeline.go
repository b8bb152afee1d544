package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jstittsworth/sportsdesk/internal/providers"
	"github.com/jstittsworth/sportsdesk/internal/sources"
)

// Pipeline chains the stats, voice, and scouting stages into one analysis
// run. Each stage feeds the next; any stage that cannot reach a live model
// degrades to a static result so the pipeline always completes.
type Pipeline struct {
	chains *ChainSet
	llm    *providers.LLMClient
	logger *logrus.Logger
}

func NewPipeline(chains *ChainSet, logger *logrus.Logger) *Pipeline {
	return &Pipeline{chains: chains, llm: chains.Mistral(), logger: logger}
}

// StageResult is one pipeline stage's output.
type StageResult struct {
	Agent  string                 `json:"agent"`
	Data   map[string]interface{} `json:"data"`
	Source string                 `json:"source"`
	Status string                 `json:"status"`
}

// PipelineResult is the full run record.
type PipelineResult struct {
	PipelineID     string                 `json:"pipeline_id"`
	Team           string                 `json:"team"`
	Sport          string                 `json:"sport"`
	Context        string                 `json:"context"`
	AgentsExecuted []string               `json:"agents_executed"`
	Results        map[string]StageResult `json:"results"`
	Summary        string                 `json:"summary"`
	ExecutionTime  float64                `json:"execution_time"`
	Source         string                 `json:"source"`
}

// Run executes the three stages in order and produces a combined summary.
func (p *Pipeline) Run(ctx context.Context, team, sport, runContext string) *PipelineResult {
	if runContext == "" {
		runContext = fmt.Sprintf("Complete analysis for %s", team)
	}

	result := &PipelineResult{
		PipelineID:     uuid.New().String(),
		Team:           team,
		Sport:          strings.ToUpper(sport),
		Context:        runContext,
		AgentsExecuted: []string{},
		Results:        map[string]StageResult{},
		Source:         "Multi-Agent Pipeline",
	}
	start := time.Now()

	stats := p.statsStage(ctx, team, sport)
	result.AgentsExecuted = append(result.AgentsExecuted, "stats-agent")
	result.Results["stats"] = stats

	voice := p.voiceStage(ctx, team, sport, stats)
	result.AgentsExecuted = append(result.AgentsExecuted, "voice-agent")
	result.Results["voice"] = voice

	scouting := p.scoutingStage(ctx, team, sport, stats, voice)
	result.AgentsExecuted = append(result.AgentsExecuted, "scouting-agent")
	result.Results["scouting"] = scouting

	result.Summary = p.summarize(ctx, team, sport, stats, voice, scouting)
	result.ExecutionTime = time.Since(start).Seconds()
	return result
}

func (p *Pipeline) statsStage(ctx context.Context, team, sport string) StageResult {
	res, err := p.chains.MultiSport.Execute(ctx, sources.Request{Sport: sport, Team: team, Action: "stats"})
	if err != nil {
		p.logger.WithError(err).Warn("Pipeline stats stage failed")
		return StageResult{
			Agent: "stats-agent",
			Data: map[string]interface{}{
				"wins":            45,
				"losses":          37,
				"win_percentage":  0.549,
				"recent_form":     "W-L-W-W-L",
				"key_stats":       map[string]interface{}{"points_per_game": 112.3, "defensive_rating": 108.7, "team_chemistry": "Excellent"},
			},
			Source: providers.MockSourceName,
			Status: "success",
		}
	}

	data := res.Payload.Stats.Data
	if data == nil {
		data = map[string]interface{}{"raw_data": res.Payload.Stats.RawText}
	}
	return StageResult{Agent: "stats-agent", Data: data, Source: res.Payload.Source, Status: "success"}
}

func (p *Pipeline) voiceStage(ctx context.Context, team, sport string, stats StageResult) StageResult {
	prompt := fmt.Sprintf(`Generate a natural, conversational voice summary for %s in %s based on these stats:

Stats: %v

Create a summary that sounds natural when spoken aloud. Include:
- Current season performance
- Key highlights and achievements
- Recent trends and momentum
- Next game preview

Make it engaging and suitable for voice narration.`, team, strings.ToUpper(sport), stats.Data)

	content, err := p.llm.Complete(ctx, "You are a professional sports commentator. Generate engaging voice-ready content.", prompt, 500, 0.8)
	if err != nil {
		return StageResult{
			Agent: "voice-agent",
			Data: map[string]interface{}{
				"voice_summary":      fmt.Sprintf("%s has been performing exceptionally well this season. Their recent form shows great momentum heading into the playoffs.", team),
				"estimated_duration": "45 seconds",
				"voice_style":        "Professional Sports Commentary",
			},
			Source: providers.MockSourceName,
			Status: "success",
		}
	}

	return StageResult{
		Agent: "voice-agent",
		Data: map[string]interface{}{
			"voice_summary":      content,
			"estimated_duration": "45 seconds",
			"voice_style":        "Professional Sports Commentary",
		},
		Source: p.llm.Name(),
		Status: "success",
	}
}

func (p *Pipeline) scoutingStage(ctx context.Context, team, sport string, stats, voice StageResult) StageResult {
	prompt := fmt.Sprintf(`Provide advanced scouting analysis for %s in %s:

Stats Data: %v
Voice Summary: %v

Generate comprehensive scouting insights including:
- Tactical analysis and playing style
- Key player performances and impact
- Opponent matchup advantages/disadvantages
- Coaching strategies and adjustments
- Playoff/championship prospects
- Areas for improvement

Provide actionable insights for coaches and analysts.`, team, strings.ToUpper(sport), stats.Data, voice.Data["voice_summary"])

	content, err := p.llm.Complete(ctx, "You are an expert sports scout and analyst. Provide detailed tactical and strategic insights.", prompt, 800, 0.7)
	if err != nil {
		return StageResult{
			Agent: "scouting-agent",
			Data: map[string]interface{}{
				"scouting_report": fmt.Sprintf("%s demonstrates excellent tactical discipline and team chemistry. Their recent performances show strong defensive organization and clinical finishing in key moments.", team),
				"analysis_depth":  "Advanced",
				"recommendations": "Focus on maintaining current form and tactical consistency",
				"confidence_score": "High",
			},
			Source: providers.MockSourceName,
			Status: "success",
		}
	}

	return StageResult{
		Agent: "scouting-agent",
		Data: map[string]interface{}{
			"scouting_report":  content,
			"analysis_depth":   "Advanced",
			"recommendations":  "Strategic insights provided",
			"confidence_score": "High",
		},
		Source: p.llm.Name(),
		Status: "success",
	}
}

func (p *Pipeline) summarize(ctx context.Context, team, sport string, stats, voice, scouting StageResult) string {
	prompt := fmt.Sprintf(`Create a comprehensive executive summary for %s in %s combining these insights:

Stats: %v
Voice Summary: %v
Scouting Report: %v

Generate a concise but complete summary that combines all perspectives into actionable insights.`,
		team, strings.ToUpper(sport), stats.Data, voice.Data["voice_summary"], scouting.Data["scouting_report"])

	content, err := p.llm.Complete(ctx, "You are a sports executive analyst. Create comprehensive but concise summaries.", prompt, 400, 0.6)
	if err != nil {
		return fmt.Sprintf("Complete multi-agent analysis for %s in %s: Stats analysis shows strong performance metrics, voice summary highlights key achievements, and scouting report provides strategic insights for continued success.", team, strings.ToUpper(sport))
	}
	return content
}
