package app

import (
	"time"

	"github.com/poppolopoppo/slngen/internal/base"
	"github.com/poppolopoppo/slngen/utils"
)

func WithCommandEnv(prefix string, args []string, scope func(*utils.CommandEnvT) error) (err error) {
	startedAt := time.Now()
	defer base.FlushLog()

	env, err := utils.InitCommandEnv(prefix, args, startedAt)
	if err != nil {
		base.LogError(utils.LogCommand, "%v", err)
		return err
	}

	defer func() {
		if er := env.Close(); er != nil && err == nil {
			err = er
		}
	}()

	defer utils.StartProfiling()()

	if err = scope(env); err != nil {
		base.LogForwardln("")
		base.LogError(utils.LogCommand, "%v", err)
	}
	return err
}
