/*
Package observability exports canopy parse activity as Prometheus metrics.

Metrics plugs into a Root through lifecycle hooks, so schemas stay free of any
monitoring dependency:

	m := observability.NewMetrics(prometheus.DefaultRegisterer)
	root, err := canopy.New(desc, canopy.WithName("order"), canopy.WithHooks(m.Hooks()))
*/
package observability
