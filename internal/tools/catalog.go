package tools

import "encoding/json"

// Tool names in the demo catalog.
const (
	DatadogLogsSearch  = "datadog_logs_search"
	GitHubDeployments  = "github_deployments"
	PrometheusMetrics  = "prometheus_metrics"
	PagerDutyIncidents = "pagerduty_incidents"
)

// demoCatalog returns the canned monitoring snapshots for the demo incident:
// a deployment that shrank the database connection pool and triggered a
// cascade of 502s. The payloads are intentionally self-consistent so the
// LLM phases (or the canned script) can build a coherent causal chain.
func demoCatalog() map[string]entry {
	return map[string]entry{
		DatadogLogsSearch: {
			description: "Search application logs in Datadog",
			summary:     "Found 8 log entries | 47 errors | Error rate: 23.5%",
			payload: json.RawMessage(`{
  "query": "service:api-gateway status:error",
  "results": [
    {"timestamp": "2024-01-15T14:20:01Z", "level": "INFO", "message": "Deployment abc123 started", "service": "deploy-manager"},
    {"timestamp": "2024-01-15T14:20:45Z", "level": "INFO", "message": "Deployment abc123 completed successfully", "service": "deploy-manager"},
    {"timestamp": "2024-01-15T14:21:03Z", "level": "WARN", "message": "Connection pool exhausted, waiting for available connection", "service": "api-gateway"},
    {"timestamp": "2024-01-15T14:21:15Z", "level": "ERROR", "message": "HTTP 502 Bad Gateway - upstream connection timeout", "service": "api-gateway", "path": "/api/users", "duration_ms": 30000},
    {"timestamp": "2024-01-15T14:21:16Z", "level": "ERROR", "message": "HTTP 502 Bad Gateway - upstream connection timeout", "service": "api-gateway", "path": "/api/orders", "duration_ms": 30000},
    {"timestamp": "2024-01-15T14:21:18Z", "level": "ERROR", "message": "HTTP 502 Bad Gateway - upstream connection timeout", "service": "api-gateway", "path": "/api/users", "duration_ms": 30000},
    {"timestamp": "2024-01-15T14:22:30Z", "level": "ERROR", "message": "Database connection timeout after 30s", "service": "user-service"},
    {"timestamp": "2024-01-15T14:23:00Z", "level": "ERROR", "message": "Circuit breaker OPEN for user-service", "service": "api-gateway"}
  ],
  "summary": {
    "total_errors": 47,
    "error_rate": "23.5%",
    "first_error": "2024-01-15T14:21:15Z",
    "services_affected": ["api-gateway", "user-service"]
  }
}`),
		},
		GitHubDeployments: {
			description: "Get recent deployments from GitHub",
			summary:     "Found deployment abc123 at 2024-01-15T14:20:00Z | Changed: config/database.yaml, config/timeouts.yaml",
			payload: json.RawMessage(`{
  "recent": [
    {
      "id": "abc123",
      "timestamp": "2024-01-15T14:20:00Z",
      "author": "developer@company.com",
      "environment": "production",
      "status": "success",
      "commit_sha": "a1b2c3d4",
      "commit_message": "Reduce connection pool for cost savings",
      "files_changed": [
        {"path": "config/database.yaml", "changes": "pool_size: 10 -> pool_size: 5"},
        {"path": "config/timeouts.yaml", "changes": "connection_timeout: 30s -> connection_timeout: 10s"}
      ]
    }
  ]
}`),
		},
		PrometheusMetrics: {
			description: "Query infrastructure metrics from Prometheus",
			summary:     "CPU: 45.2% | Mem: 78.5% | Connections: 98/100 | DB pool: 5/5",
			payload: json.RawMessage(`{
  "api_gateway": {
    "cpu_percent": 45.2,
    "memory_percent": 78.5,
    "active_connections": 98,
    "max_connections": 100,
    "connection_wait_time_p99": 4500,
    "request_latency_p99": 2800
  },
  "database": {
    "active_connections": 5,
    "max_connections": 5,
    "query_latency_p99": 850,
    "connection_pool_exhausted_count": 127
  }
}`),
		},
		PagerDutyIncidents: {
			description: "Get active incidents from PagerDuty",
			summary:     "Found 1 active incident(s)",
			payload: json.RawMessage(`{
  "active": [
    {
      "id": "INC-4521",
      "title": "High error rate on api-gateway",
      "severity": "P2",
      "created_at": "2024-01-15T14:25:00Z",
      "status": "triggered"
    }
  ]
}`),
		},
	}
}
