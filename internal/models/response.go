package models

type SearchMetadata struct {
	TotalResults       int      `json:"total_results"`
	RouteDays          int      `json:"route_days"`
	ProvidersQueried   int      `json:"providers_queried"`
	ProvidersSucceeded int      `json:"providers_succeeded"`
	ProvidersFailed    int      `json:"providers_failed"`
	FailedProviders    []string `json:"failed_providers,omitempty"`
	RejectedRecords    int      `json:"rejected_records"`
	CacheHits          int      `json:"cache_hits"`
	SearchTimeMs       int64    `json:"search_time_ms"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Providers int    `json:"providers"`
}
