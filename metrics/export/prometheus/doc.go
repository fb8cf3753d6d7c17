// Package prometheus renders authcore metrics in Prometheus text exposition
// format. Intended for device farms and soak rigs that scrape the client
// under test; production mobile builds do not expose an HTTP surface.
package prometheus
