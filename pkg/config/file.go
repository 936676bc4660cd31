package config

import (
	"bytes"
	"text/template"
)

var configFileTmpl = template.Must(template.New("config").Parse(`# pview configuration

# Project API client configuration.
api:
  # The base URL of the project API.
  url: "{{ .API.URL }}"

  # Bearer token sent with every request. Leave empty for anonymous access.
  #token: "{{ .API.Token }}"

  # The maximum number of seconds a request can take.
  # A value of 0 means no timeout.
  timeout: {{ .API.Timeout }}

# Logging configuration.
log:
  # Log format to use. Valid values are "json", "logfmt", and "text".
  format: "{{ .Log.Format }}"
  # Time format for the log "timestamp" field.
  # Should be described in Golang's time format.
  time_format: "{{ .Log.TimeFormat }}"
  # Path to the log file. Leave empty to write to stderr.
  #path: "{{ .Log.Path }}"

# The snapshot server configuration, used by "pview serve".
http:
  # The address on which the HTTP server will listen.
  listen_addr: "{{ .HTTP.ListenAddr }}"

  # The directory holding project snapshots.
  # Relative paths are resolved against the data directory.
  data_path: "{{ .HTTP.DataPath }}"

# The stats server configuration.
stats:
  # The address on which the stats server will listen.
  listen_addr: "{{ .Stats.ListenAddr }}"
`))

func newConfigFile(cfg *Config) string {
	var b bytes.Buffer
	configFileTmpl.Execute(&b, cfg) // nolint: errcheck
	return b.String()
}
