package taskqueue

import (
	"context"
	"encoding/json"
	"time"

	"smartoffice/internal/automation"
	"smartoffice/internal/db"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"
)

const (
	TypeTick  = "automation:tick"
	TypePurge = "maintenance:purge_expired"

	checkinRetention = 7 * 24 * time.Hour
)

// Global instances, initialized by the main application before the
// workers start.
var (
	engine *automation.Engine
	dbConn *db.DB
)

// SetGlobalInstances wires the engine and database into the task handlers
func SetGlobalInstances(eng *automation.Engine, database *db.DB) {
	engine = eng
	dbConn = database
}

// TickPayload carries the wall-clock minute captured when the cron
// job fired, so a delayed worker still evaluates the original minute.
type TickPayload struct {
	Time string `json:"time"`
}

// EnqueueTick enqueues an automation tick for the given wall-clock time
func EnqueueTick(now time.Time) error {
	payload, err := json.Marshal(TickPayload{Time: now.Format("15:04")})
	if err != nil {
		return err
	}
	task := asynq.NewTask(TypeTick, payload)
	info, err := asynqClient.Enqueue(task, asynq.MaxRetry(0), asynq.Timeout(30*time.Second))
	if err != nil {
		log.Error().Err(err).Msg("failed to enqueue automation tick")
		return err
	}
	log.Debug().Str("task_id", info.ID).Msg("enqueued automation tick")
	return nil
}

// EnqueuePurge enqueues the expired-data purge
func EnqueuePurge() error {
	task := asynq.NewTask(TypePurge, nil)
	_, err := asynqClient.Enqueue(task, asynq.MaxRetry(2), asynq.Timeout(30*time.Second))
	if err != nil {
		log.Error().Err(err).Msg("failed to enqueue purge task")
	}
	return err
}

// handleTickTask feeds a scheduler tick through the same engine entry
// point used by HTTP and sensor events. A failed tick is not retried;
// the next minute's tick is the natural retry.
func handleTickTask(ctx context.Context, t *asynq.Task) error {
	var payload TickPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return err
	}

	result, err := engine.ProcessEvent(ctx, map[string]any{"type": "time", "time": payload.Time})
	if err != nil {
		log.Error().Err(err).Str("time", payload.Time).Msg("tick evaluation failed")
		return err
	}

	log.Info().
		Str("time", payload.Time).
		Ints("matched", result.MatchedRuleIDs).
		Int("applied", len(result.AppliedEffects)).
		Int("skipped", len(result.Skipped)).
		Msg("tick processed")
	return nil
}

// handlePurgeTask removes expired bookings and stale wellness check-ins
func handlePurgeTask(ctx context.Context, _ *asynq.Task) error {
	now := time.Now()

	bookings, err := dbConn.DeleteExpiredBookings(ctx, now)
	if err != nil {
		return err
	}
	checkins, err := dbConn.DeleteStaleCheckins(ctx, now.Add(-checkinRetention))
	if err != nil {
		return err
	}

	if bookings > 0 || checkins > 0 {
		log.Info().Int64("bookings", bookings).Int64("checkins", checkins).Msg("purged expired records")
	}
	return nil
}
