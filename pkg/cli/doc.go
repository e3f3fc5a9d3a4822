// Package cli provides the sabledocs command-line interface.
//
// # Commands
//
// generate: Render the configured descriptor set to the output directory
//
//	sabledocs generate --config sabledocs.toml --markdown --metrics-file sabledocs.prom
//
// compile: Build a descriptor set with source info from .proto files, no protoc needed
//
//	sabledocs compile --out descriptor.pb -I proto -I third_party pizza/v1/pizza.proto
//
// model: Print the parsed model as YAML or JSON
//
//	sabledocs model --format json
//
// serve: Generate, then serve the site with /api/search, /metrics, /healthz and /readyz.
// With --watch the site is rebuilt whenever the descriptor set file changes.
//
//	sabledocs serve --addr :8000 --watch
//
// publish: Render straight into the [s3] bucket of the configuration
//
//	SABLEDOCS_S3_BUCKET=docs sabledocs publish
//
// Every command that reads the configuration also sets up logging, Prometheus
// metrics and, when [telemetry] otlp-endpoint is set, OTLP trace export.
package cli
