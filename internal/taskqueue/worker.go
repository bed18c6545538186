package taskqueue

import (
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"
)

var (
	asynqClient *asynq.Client
	asynqMux    = asynq.NewServeMux()
	asynqSrv    *asynq.Server
)

// StartWorkers starts Asynq workers
func StartWorkers(redisAddr string) {
	log.Info().Str("redis", redisAddr).Msg("starting task queue workers")
	asynqClient = asynq.NewClient(asynq.RedisClientOpt{Addr: redisAddr})
	asynqMux.HandleFunc(TypeTick, handleTickTask)
	asynqMux.HandleFunc(TypePurge, handlePurgeTask)
	asynqSrv = asynq.NewServer(asynq.RedisClientOpt{Addr: redisAddr}, asynq.Config{Concurrency: 10})
	if err := asynqSrv.Run(asynqMux); err != nil {
		log.Fatal().Err(err).Msg("failed to start task queue workers")
	}
}

// StopWorkers stops workers
func StopWorkers() {
	asynqSrv.Stop()
	asynqClient.Close()
	log.Info().Msg("task queue workers stopped")
}
