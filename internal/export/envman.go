package export

import (
	"context"

	"github.com/ariel-frischer/commitlog/internal/command"
)

// Envman stores values with `envman add`, the Bitrise step environment tool.
type Envman struct {
	runner command.Runner
}

// NewEnvman returns an envman exporter. A nil runner uses command.Exec.
func NewEnvman(runner command.Runner) *Envman {
	if runner == nil {
		runner = command.Exec{}
	}
	return &Envman{runner: runner}
}

func (e *Envman) Name() string { return NameEnvman }

// Export runs `envman add --key <key> --value <value>`. The value is passed
// as a single argument, so no shell quoting applies.
func (e *Envman) Export(ctx context.Context, key, value string) error {
	_, err := e.runner.Run(ctx, "", "envman", "add", "--key", key, "--value", value)
	return err
}
