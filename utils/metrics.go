package utils

// Custom metrics names
const (
	// MetricsNameSessionActionCount session orchestration action counter
	MetricsNameSessionActionCount = "onair_session_action_total"
	// MetricsNameSweepTransitionCount reconciliation sweep transition counter
	MetricsNameSweepTransitionCount = "onair_sweep_transition_total"
)
