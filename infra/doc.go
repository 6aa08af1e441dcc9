// Package infra holds the adapters around the planner core: the zerolog
// logger and the Prometheus, Pushgateway and InfluxDB metrics sinks.
// They depend only on interfaces declared under core.
package infra
