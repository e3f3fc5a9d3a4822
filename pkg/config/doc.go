// Package config loads sabledocs configuration from a TOML file.
//
// Every key is optional. Absent keys keep their defaults and unknown keys are
// ignored:
//
//	module-title = "Pizza API"
//	input-descriptor-file = "descriptor.pb"
//	output-dir = "sabledocs_output"
//	repository-url = "https://github.com/example/pizza"
//	repository-branch = "main"
//	repository-type = "github"        # github, gitlab, bitbucket, none
//	member-ordering = "alphabetical"   # or preserve-original
//	hidden-packages = ["google.*"]
//
// A handful of settings can be overridden from the environment:
//
//	SABLEDOCS_INPUT, SABLEDOCS_OUTPUT_DIR, SABLEDOCS_LOG_LEVEL,
//	SABLEDOCS_S3_BUCKET, SABLEDOCS_OTLP_ENDPOINT
package config
