package compliance

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// AgentPerformance is one row of the agent performance summary.
type AgentPerformance struct {
	Agent         string  `json:"agent"`
	Role          string  `json:"role"`
	Expertise     float64 `json:"expertise"`
	Tasks         int     `json:"tasks"`
	AvgConfidence float64 `json:"avg_confidence"`
	Accuracy      float64 `json:"accuracy"`
}

// WriteSummaryTable writes rows as an aligned table with a header line.
func WriteSummaryTable(w io.Writer, rows []AgentPerformance) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "AGENT\tROLE\tEXPERTISE\tTASKS\tAVG CONFIDENCE\tACCURACY")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%.2f\t%d\t%.2f\t%.2f\n",
			r.Agent, r.Role, r.Expertise, r.Tasks, r.AvgConfidence, r.Accuracy)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("compliance: write summary table: %w", err)
	}
	return nil
}
