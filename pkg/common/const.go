package common

const (
	KEY_LAST_PRICE = "last_price:%s"
)

// Run triggers, used as metric labels and stored with run history.
const (
	TRIGGER_CONSOLE   = "console"
	TRIGGER_HTTP      = "http"
	TRIGGER_SCHEDULER = "scheduler"
)

// Collaborator names, used as metric labels.
const (
	SOURCE_MARKETAUX   = "marketaux"
	SOURCE_TRENDING    = "trending"
	SOURCE_YAHOO_CHART = "yahoo_chart"
	SOURCE_QUOTE_PAGE  = "quote_page"
	SOURCE_HISTORY     = "history"
)

const (
	OUTCOME_SUCCESS = "success"
	OUTCOME_FAILED  = "failed"
)
