package output

import "github.com/leapstack-labs/exupdate/internal/extract"

// ExtractOutput is the JSON document printed by the extract command.
type ExtractOutput struct {
	RunID   string           `json:"run_id"`
	Input   string           `json:"input"`
	Output  string           `json:"output"`
	Written bool             `json:"written"`
	Message string           `json:"message"`
	Error   string           `json:"error,omitempty"`
	Summary extract.Stats    `json:"summary"`
	Preview []extract.Update `json:"preview,omitempty"`
}

// ConfigOutput is the JSON document printed by the config command.
type ConfigOutput struct {
	ConfigFile string `json:"config_file"`
	Config     any    `json:"config"`
}
