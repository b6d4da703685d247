// Package validate checks workflow graphs for structural problems before
// they can be saved. Findings are classified as blocking errors or advisory
// warnings and always returned as data; validation never panics, even on
// malformed graphs.
package validate

import "github.com/minseolab/loom/internal/loom"

// Severity classifies a finding.
type Severity string

const (
	// SeverityError blocks saving the workflow.
	SeverityError Severity = "error"
	// SeverityWarning is surfaced to the user but never blocks.
	SeverityWarning Severity = "warning"
)

// Finding is a single validation result.
type Finding struct {
	Severity Severity `json:"severity"`
	Rule     string   `json:"rule"`
	Message  string   `json:"message"`
	NodeID   string   `json:"node_id,omitempty"`
}

// Result is the validator's verdict over a whole workflow.
type Result struct {
	Valid    bool      `json:"valid"`
	Findings []Finding `json:"findings"`
}

// rule is one independent check. Rules never short-circuit each other; all
// findings are collected.
type rule struct {
	name  string
	apply func(*loom.Workflow) []Finding
}

func rules() []rule {
	return []rule{
		{"node_ids", checkNodeIDs},
		{"edge_endpoints", checkEdgeEndpoints},
		{"input_present", checkInputPresent},
		{"input_prompt", checkInputPrompt},
		{"trigger_config", checkTriggerConfig},
		{"multiple_inputs", checkMultipleInputs},
		{"self_loop", checkSelfLoops},
		{"edge_target", checkEdgeTargets},
		{"disconnected", checkDisconnected},
		{"agent_present", checkAgentPresent},
		{"edge_condition", checkEdgeConditions},
	}
}

// Workflow runs every rule over the graph and returns the collected
// findings. Valid is true iff no finding is an error.
func Workflow(wf *loom.Workflow) Result {
	var findings []Finding
	for _, r := range rules() {
		for _, f := range r.apply(wf) {
			f.Rule = r.name
			findings = append(findings, f)
		}
	}

	valid := true
	for _, f := range findings {
		if f.Severity == SeverityError {
			valid = false
			break
		}
	}
	return Result{Valid: valid, Findings: findings}
}
