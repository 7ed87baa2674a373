package config

// SampleConfig returns a fully commented configuration file
func SampleConfig() string {
	return `# ethio configuration
version: "1.0"

# Description assistant used by "Auto-Write with AI" and "ethio describe"
ai:
  provider: gemini            # gemini|openai|ollama
  model: gemini-2.5-flash
  endpoint: ""                # empty for the provider default
  api_key: ""                 # or set GEMINI_API_KEY / API_KEY
  timeout: 30s
  max_retries: 2

storage:
  data_dir: ~/.local/share/ethio
  db_path: ""                 # defaults to <data_dir>/ethio.db
  persist_saved: false        # keep saved listings across restarts
  thumbnail_size: 320         # longest edge of attached photos

# Replace the built-in listings with a YAML file
catalog:
  path: ""
  watch: false                # reload the file while the app is open

splash:
  step: 2
  tick_interval: 40ms
  handoff_delay: 500ms
  retry_delay: 1s
  probe_address: 1.1.1.1:53   # dialled to test connectivity
  probe_timeout: 2s

ui:
  loading_delay: 2s
  theme_hint: auto            # auto|dark|light, used until a theme is saved
  color_mode: auto            # auto|always|never
  no_emoji: false

output:
  default_format: text        # text|json|markdown|csv

log:
  file: ""                    # defaults to <data_dir>/ethio.log
  verbose: false
`
}

// MinimalSampleConfig returns a configuration with only the common settings
func MinimalSampleConfig() string {
	return `version: "1.0"
ai:
  provider: gemini
  model: gemini-2.5-flash
storage:
  persist_saved: false
ui:
  theme_hint: auto
`
}
