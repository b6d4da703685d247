package validate

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/robfig/cron/v3"

	"github.com/minseolab/loom/internal/loom"
)

func errf(nodeID, format string, args ...any) Finding {
	return Finding{Severity: SeverityError, NodeID: nodeID, Message: fmt.Sprintf(format, args...)}
}

func warnf(nodeID, format string, args ...any) Finding {
	return Finding{Severity: SeverityWarning, NodeID: nodeID, Message: fmt.Sprintf(format, args...)}
}

func nodeLabel(n *loom.Node) string {
	if n.Data.Label != "" {
		return n.Data.Label
	}
	return n.ID
}

func checkNodeIDs(wf *loom.Workflow) []Finding {
	var out []Finding
	seen := make(map[string]bool, len(wf.Nodes))
	for i := range wf.Nodes {
		n := &wf.Nodes[i]
		if n.ID == "" {
			out = append(out, errf("", "node %q has no id", nodeLabel(n)))
			continue
		}
		if seen[n.ID] {
			out = append(out, errf(n.ID, "duplicate node id %q", n.ID))
		}
		seen[n.ID] = true
	}
	return out
}

// checkEdgeEndpoints reports edges pointing at nodes that do not exist.
// The synchronizer prevents this for graphs built through it; a workflow
// loaded from elsewhere may still carry the inconsistency.
func checkEdgeEndpoints(wf *loom.Workflow) []Finding {
	var out []Finding
	for _, e := range wf.Edges {
		if wf.Node(e.Source) == nil {
			out = append(out, errf("", "edge %q references unknown source node %q", e.ID, e.Source))
		}
		if wf.Node(e.Target) == nil {
			out = append(out, errf("", "edge %q references unknown target node %q", e.ID, e.Target))
		}
	}
	return out
}

func checkInputPresent(wf *loom.Workflow) []Finding {
	for i := range wf.Nodes {
		if wf.Nodes[i].Type == loom.NodeKindInput {
			return nil
		}
	}
	return []Finding{errf("", "every workflow must have an input node")}
}

func checkInputPrompt(wf *loom.Workflow) []Finding {
	var out []Finding
	for i := range wf.Nodes {
		n := &wf.Nodes[i]
		if n.Type != loom.NodeKindInput {
			continue
		}
		if strings.TrimSpace(n.Data.Prompt) == "" {
			out = append(out, errf(n.ID, "input node must have a prompt configured"))
		}
	}
	return out
}

func checkTriggerConfig(wf *loom.Workflow) []Finding {
	var out []Finding
	for i := range wf.Nodes {
		n := &wf.Nodes[i]
		if n.Type != loom.NodeKindInput {
			continue
		}
		trigger := n.Data.Trigger
		if trigger == nil {
			// Absent trigger behaves as manual.
			continue
		}
		switch trigger.Type {
		case loom.TriggerManual, "":
		case loom.TriggerWebhook:
			if trigger.Webhook == nil {
				out = append(out, errf(n.ID, "webhook trigger is missing its webhook configuration"))
			}
		case loom.TriggerSchedule:
			out = append(out, checkSchedule(n.ID, trigger.Schedule)...)
		default:
			out = append(out, errf(n.ID, "unknown trigger type %q", trigger.Type))
		}
	}
	return out
}

func checkSchedule(nodeID string, sched *loom.ScheduleConfig) []Finding {
	if sched == nil {
		return []Finding{errf(nodeID, "schedule trigger is missing its schedule configuration")}
	}
	switch sched.Mode {
	case loom.ScheduleSimple:
		switch sched.IntervalType {
		case "minutes", "hours", "days":
		default:
			return []Finding{errf(nodeID, "simple schedule has invalid interval type %q", sched.IntervalType)}
		}
		if sched.IntervalValue <= 0 {
			return []Finding{errf(nodeID, "simple schedule interval must be positive")}
		}
	case loom.ScheduleCron:
		return checkCronExpr(nodeID, sched.CronExpr, "")
	case loom.ScheduleAdvanced:
		out := checkCronExpr(nodeID, sched.CronExpr, sched.Timezone)
		if sched.StartDate != nil && sched.EndDate != nil && !sched.StartDate.Before(*sched.EndDate) {
			out = append(out, errf(nodeID, "schedule start date must be before end date"))
		}
		if sched.MaxExecutions < 0 {
			out = append(out, errf(nodeID, "schedule max executions cannot be negative"))
		}
		return out
	default:
		return []Finding{errf(nodeID, "unknown schedule mode %q", sched.Mode)}
	}
	return nil
}

// checkCronExpr validates a cron expression the same way the scheduler will
// parse it: 6-field (with seconds) first, then standard 5-field, with a
// CRON_TZ prefix for non-UTC timezones.
func checkCronExpr(nodeID, cronExpr, timezone string) []Finding {
	if strings.TrimSpace(cronExpr) == "" {
		return []Finding{errf(nodeID, "cron schedule requires a cron expression")}
	}
	if timezone != "" && timezone != "UTC" {
		cronExpr = "CRON_TZ=" + timezone + " " + cronExpr
	}
	parser6 := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	if _, err := parser6.Parse(cronExpr); err == nil {
		return nil
	}
	parser5 := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	if _, err := parser5.Parse(cronExpr); err != nil {
		return []Finding{errf(nodeID, "invalid cron expression: %v", err)}
	}
	return nil
}

func checkMultipleInputs(wf *loom.Workflow) []Finding {
	count := 0
	for i := range wf.Nodes {
		if wf.Nodes[i].Type == loom.NodeKindInput {
			count++
		}
	}
	if count > 1 {
		return []Finding{warnf("", "workflow has %d input nodes; only one will trigger execution", count)}
	}
	return nil
}

func checkSelfLoops(wf *loom.Workflow) []Finding {
	var out []Finding
	for _, e := range wf.Edges {
		if e.Source != "" && e.Source == e.Target {
			out = append(out, errf(e.Source, "node cannot connect to itself"))
		}
	}
	return out
}

// checkEdgeTargets reports edges whose target is an input node. The
// synchronizer refuses to create these, but an imported document can still
// carry one.
func checkEdgeTargets(wf *loom.Workflow) []Finding {
	var out []Finding
	for _, e := range wf.Edges {
		if e.Source == e.Target {
			continue // already reported as a self-loop
		}
		if n := wf.Node(e.Target); n != nil && n.Type == loom.NodeKindInput {
			out = append(out, errf(n.ID, "input nodes cannot receive connections"))
		}
	}
	return out
}

func checkDisconnected(wf *loom.Workflow) []Finding {
	if len(wf.Nodes) <= 1 {
		return nil
	}
	connected := make(map[string]bool, len(wf.Nodes))
	for _, e := range wf.Edges {
		connected[e.Source] = true
		connected[e.Target] = true
	}
	var out []Finding
	for i := range wf.Nodes {
		n := &wf.Nodes[i]
		if !connected[n.ID] {
			out = append(out, warnf(n.ID, "node %q is not connected to the workflow", nodeLabel(n)))
		}
	}
	return out
}

func checkAgentPresent(wf *loom.Workflow) []Finding {
	if len(wf.Nodes) <= 1 {
		return nil
	}
	for i := range wf.Nodes {
		if wf.Nodes[i].Type == loom.NodeKindAgent {
			return nil
		}
	}
	return []Finding{warnf("", "workflow should have at least one agent node")}
}

func checkEdgeConditions(wf *loom.Workflow) []Finding {
	var out []Finding
	for _, e := range wf.Edges {
		if e.Condition == "" {
			continue
		}
		if _, err := expr.Compile(e.Condition, expr.AsBool()); err != nil {
			out = append(out, errf(e.Source, "edge %q has an invalid condition: %v", e.ID, err))
		}
	}
	return out
}
