// Package metrics defines the sinks solve outcomes are reported to.
// Sinks like PromSink and InfluxSink live in infra/metrics and register
// themselves by type name; NewMetricsSink builds one from configuration and
// wraps several in a MultiSink.
package metrics
