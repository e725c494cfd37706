package slngen

import (
	"os"
	"time"

	"github.com/poppolopoppo/slngen/app"
	"github.com/poppolopoppo/slngen/internal/base"
	"github.com/poppolopoppo/slngen/internal/cmd"
	"github.com/poppolopoppo/slngen/utils"
)

var LogSlngen = base.NewLogCategory("Slngen")

/***************************************
 * Launch Command (program entry point)
 ***************************************/

// LaunchCommand runs every command found in os.Args, `generate` is used when none is named.
func LaunchCommand(prefix string) error {
	return app.WithCommandEnv(prefix, os.Args[1:], func(env *utils.CommandEnvT) error {
		err := env.Run(cmd.CommandGenerate)
		base.LogVerbose(LogSlngen, "%s finished in %v", prefix, time.Since(env.StartedAt()))
		return err
	})
}
