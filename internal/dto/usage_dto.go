package dto

// UsageSnapshot reports the daily quota state for a user. MessagesSentToday
// counts user-authored messages since local midnight; the same query semantics
// back both the pre-flight check and the context assembly.
type UsageSnapshot struct {
	MessagesSentToday int  `json:"messages_sent_today"`
	IsFreeTier        bool `json:"is_free_tier"`
	DailyLimit        int  `json:"daily_limit"`
	RemainingMessages int  `json:"remaining_messages"`
}

// QuotaCheck is the result of a pre-flight can-send check.
type QuotaCheck struct {
	Allowed bool          `json:"allowed"`
	Reason  string        `json:"reason,omitempty"`
	Usage   UsageSnapshot `json:"usage"`
}
