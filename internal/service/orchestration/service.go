// Package orchestration runs the per-task pipeline: trace generation,
// coordination analysis, safety assessment, trust calibration, and the
// collective explanation.
package orchestration

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/ashita-ai/cohumain/internal/agent"
	"github.com/ashita-ai/cohumain/internal/attribution"
	"github.com/ashita-ai/cohumain/internal/coordination"
	"github.com/ashita-ai/cohumain/internal/explain"
	"github.com/ashita-ai/cohumain/internal/integrity"
	"github.com/ashita-ai/cohumain/internal/model"
	"github.com/ashita-ai/cohumain/internal/principles"
	"github.com/ashita-ai/cohumain/internal/safety"
	"github.com/ashita-ai/cohumain/internal/telemetry"
	"github.com/ashita-ai/cohumain/internal/trust"
)

const scope = "cohumain/orchestration"

// Settings configures a Service.
type Settings struct {
	SafetyMode model.SafetyMode
	// Allocator splits responsibility and contribution; nil means uniform.
	Allocator attribution.Allocator
	// Checker evaluates principles for agents without their own checker.
	Checker *principles.Checker
	// ParallelTraces generates traces concurrently. Output order is still
	// registry order.
	ParallelTraces bool
	// EnforceTimeouts bounds each agent's trace generation by its Timeout.
	// Agents with a non-positive Timeout are unbounded.
	EnforceTimeouts bool
}

// Input is one task submission.
type Input struct {
	Task        string
	Context     model.TaskContext
	HumanInLoop bool
}

// Service is stateless across tasks apart from the agents it is handed.
type Service struct {
	analyzer  *coordination.Analyzer
	assessor  *safety.Assessor
	explainer *explain.Explainer
	checker   *principles.Checker
	parallel  bool
	enforce   bool
	logger    *slog.Logger
	tracer    trace.Tracer

	tasksExecuted metric.Int64Counter
	decisions     metric.Int64Counter
	taskDuration  metric.Float64Histogram
}

// New creates a pipeline Service.
func New(s Settings, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if s.Checker == nil {
		s.Checker = principles.NewChecker(nil, logger)
	}
	thresholds := model.ThresholdsFor(s.SafetyMode)

	meter := telemetry.Meter(scope)
	tasks, _ := meter.Int64Counter("cohumain.tasks.executed",
		metric.WithDescription("Tasks executed, by safety status"),
	)
	decisions, _ := meter.Int64Counter("cohumain.coordination.decisions",
		metric.WithDescription("Coordination decisions, by type"),
	)
	dur, _ := meter.Float64Histogram("cohumain.task.duration",
		metric.WithDescription("Time to run the task pipeline (ms)"),
		metric.WithUnit("ms"),
	)

	return &Service{
		analyzer:      coordination.NewAnalyzer(thresholds.ConfidenceMin, logger),
		assessor:      safety.NewAssessor(s.Allocator, thresholds.ViolationTolerance),
		explainer:     explain.New(s.Allocator),
		checker:       s.Checker,
		parallel:      s.ParallelTraces,
		enforce:       s.EnforceTimeouts,
		logger:        logger,
		tracer:        telemetry.Tracer(scope),
		tasksExecuted: tasks,
		decisions:     decisions,
		taskDuration:  dur,
	}
}

// Run executes one task against agents, in order. It only fails when ctx is
// done, either before the pipeline starts or while traces are generated;
// every domain outcome is reported in the result.
func (s *Service) Run(ctx context.Context, agents []*agent.Agent, in Input) (model.TaskResult, error) {
	if err := ctx.Err(); err != nil {
		return model.TaskResult{}, fmt.Errorf("orchestration: %w", err)
	}
	if in.Context == nil {
		in.Context = model.TaskContext{}
	}
	start := time.Now()

	ctx, span := s.tracer.Start(ctx, "cohumain.task", trace.WithAttributes(
		attribute.Int("cohumain.agents", len(agents)),
		attribute.String("cohumain.stakes", string(in.Context.Stakes())),
	))
	defer span.End()

	roster := make([]model.RosterEntry, len(agents))
	for i, a := range agents {
		roster[i] = a.RosterEntry()
	}

	traces := s.generateTraces(ctx, agents, in)
	if err := ctx.Err(); err != nil {
		span.RecordError(err)
		return model.TaskResult{}, fmt.Errorf("orchestration: traces: %w", err)
	}

	_, stage := s.tracer.Start(ctx, "cohumain.coordination")
	decisions := s.analyzer.Analyze(in.Task, traces, roster)
	stage.SetAttributes(attribute.Int("cohumain.decisions", len(decisions)))
	stage.End()

	_, stage = s.tracer.Start(ctx, "cohumain.safety")
	assessment := s.assessor.Assess(traces, decisions, roster)
	stage.SetAttributes(attribute.String("cohumain.status", string(assessment.Status)))
	stage.End()

	_, stage = s.tracer.Start(ctx, "cohumain.trust")
	cal := trust.Calibrate(traces, roster, in.Context, assessment.Status)
	stage.SetAttributes(attribute.String("cohumain.automation_level", string(cal.Level)))
	stage.End()

	_, stage = s.tracer.Start(ctx, "cohumain.explain")
	collective := s.explainer.Explain(in.Task, traces, decisions, assessment, roster)
	stage.End()

	result := model.TaskResult{
		ID:                   uuid.New(),
		Task:                 in.Task,
		Success:              assessment.Status != model.StatusCritical,
		Level1Explanations:   traces,
		Level2Explanations:   decisions,
		Level3Explanation:    collective,
		SafetyAssessment:     assessment,
		AutomationLevel:      cal.Level,
		CalibratedConfidence: cal.Confidence,
		RequiresHumanReview:  assessment.InterventionRequired || in.HumanInLoop || cal.Level == model.InTheLoop,
		InterventionReason:   assessment.InterventionReason,
		ExecutionTime:        time.Since(start).Seconds(),
		Timestamp:            time.Now().UTC(),
	}
	result.ContentHash = integrity.ComputeResultHash(result)

	s.record(ctx, result, start)
	span.SetAttributes(
		attribute.String("cohumain.result_id", result.ID.String()),
		attribute.String("cohumain.status", string(assessment.Status)),
		attribute.Bool("cohumain.requires_review", result.RequiresHumanReview),
	)
	s.logger.Info("orchestration: task executed",
		"result_id", result.ID,
		"agents", len(agents),
		"decisions", len(decisions),
		"status", assessment.Status,
		"automation_level", cal.Level,
		"confidence", cal.Confidence,
		"requires_review", result.RequiresHumanReview,
	)
	return result, nil
}

// generateTraces returns one trace per agent in registry order.
func (s *Service) generateTraces(ctx context.Context, agents []*agent.Agent, in Input) []model.ReasoningTrace {
	ctx, span := s.tracer.Start(ctx, "cohumain.traces")
	defer span.End()

	traces := make([]model.ReasoningTrace, len(agents))
	if !s.parallel || len(agents) < 2 {
		for i, a := range agents {
			traces[i] = s.traceOne(ctx, a, in)
		}
		return traces
	}

	var g errgroup.Group
	for i, a := range agents {
		g.Go(func() error {
			traces[i] = s.traceOne(ctx, a, in)
			return nil
		})
	}
	_ = g.Wait() // traceOne never fails
	return traces
}

func (s *Service) traceOne(ctx context.Context, a *agent.Agent, in Input) model.ReasoningTrace {
	if s.enforce && a.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.Timeout)
		defer cancel()
	}
	tr := a.TraceWith(ctx, s.checker, in.Task, in.Context)
	if len(tr.PrincipleCheck.Errors) > 0 {
		s.logger.Warn("orchestration: principle evaluation failed",
			"agent", a.Name, "errors", tr.PrincipleCheck.Errors)
	}
	s.logger.Debug("orchestration: trace generated",
		"agent", a.Name, "confidence", tr.Confidence, "violations", len(tr.PrincipleCheck.Violations))
	return tr
}

func (s *Service) record(ctx context.Context, r model.TaskResult, start time.Time) {
	s.tasksExecuted.Add(ctx, 1, metric.WithAttributes(
		attribute.String("status", string(r.SafetyAssessment.Status)),
		attribute.String("automation_level", string(r.AutomationLevel)),
	))
	for _, d := range r.Level2Explanations {
		s.decisions.Add(ctx, 1, metric.WithAttributes(attribute.String("decision_type", string(d.DecisionType))))
	}
	s.taskDuration.Record(ctx, float64(time.Since(start).Microseconds())/1000)
}
