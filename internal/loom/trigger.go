package loom

import "time"

// TriggerType identifies how an input node activates its workflow.
type TriggerType string

const (
	TriggerManual   TriggerType = "manual"
	TriggerWebhook  TriggerType = "webhook"
	TriggerSchedule TriggerType = "schedule"
)

// TriggerConfig is a discriminated union: Type selects which payload field
// is meaningful. Manual triggers carry no payload.
type TriggerConfig struct {
	Type     TriggerType     `json:"type"`
	Webhook  *WebhookConfig  `json:"webhook,omitempty"`
	Schedule *ScheduleConfig `json:"schedule,omitempty"`
}

// WebhookConfig is produced by the webhook configuration dialog.
type WebhookConfig struct {
	Path         string            `json:"path,omitempty"`
	Secret       string            `json:"secret,omitempty"`
	InputMapping map[string]string `json:"input_mapping,omitempty"` // payload key → input key
}

// ScheduleMode discriminates the three schedule variants.
type ScheduleMode string

const (
	// ScheduleSimple runs every N minutes/hours/days.
	ScheduleSimple ScheduleMode = "simple"
	// ScheduleCron runs on a cron expression.
	ScheduleCron ScheduleMode = "cron"
	// ScheduleAdvanced is cron plus timezone, date range and run limits.
	ScheduleAdvanced ScheduleMode = "advanced"
)

// ScheduleConfig is produced by the schedule configuration dialog. Mode
// selects which fields apply: simple uses IntervalType/IntervalValue, cron
// uses CronExpr, advanced uses CronExpr plus the optional bounds.
type ScheduleConfig struct {
	Mode ScheduleMode `json:"mode"`

	IntervalType  string `json:"interval_type,omitempty"` // "minutes" | "hours" | "days"
	IntervalValue int    `json:"interval_value,omitempty"`

	CronExpr string `json:"cron_expr,omitempty"`

	Timezone      string     `json:"timezone,omitempty"`
	StartDate     *time.Time `json:"start_date,omitempty"`
	EndDate       *time.Time `json:"end_date,omitempty"`
	MaxExecutions int        `json:"max_executions,omitempty"`
}
