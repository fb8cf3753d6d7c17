// Package internaldefs holds the shared metric name and help-text tables the
// exporters render from. It exists so the Prometheus and OTel exporters
// cannot drift apart on naming.
package internaldefs
