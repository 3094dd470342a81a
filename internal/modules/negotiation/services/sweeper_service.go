package services

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/cobranzia/debt-negotiation-be/internal/core/engine"
	"github.com/cobranzia/debt-negotiation-be/internal/modules/negotiation/models"
	"github.com/cobranzia/debt-negotiation-be/internal/modules/negotiation/repositories"
	"github.com/cobranzia/debt-negotiation-be/internal/shared/utils"
)

const sweepBatchSize = 100

// SweeperService periodically marks negotiating conversations with no
// recent activity as abandoned, emitting their terminal analytics event.
type SweeperService struct {
	conversations repositories.ConversationRepo
	engine        *engine.Engine
	abandonAfter  time.Duration
	schedule      string

	cron *cron.Cron
}

func NewSweeperService(
	conversations repositories.ConversationRepo,
	eng *engine.Engine,
	abandonAfter time.Duration,
	schedule string,
) *SweeperService {
	return &SweeperService{
		conversations: conversations,
		engine:        eng,
		abandonAfter:  abandonAfter,
		schedule:      schedule,
		cron:          cron.New(cron.WithSeconds()),
	}
}

func (s *SweeperService) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, func() {
		if err := s.SweepOnce(context.Background()); err != nil {
			utils.LogError("abandonment sweep failed", err, nil)
		}
	}); err != nil {
		return err
	}
	s.cron.Start()
	utils.LogInfo("abandonment sweeper started", map[string]interface{}{
		"schedule":      s.schedule,
		"abandon_after": s.abandonAfter.String(),
	})
	return nil
}

func (s *SweeperService) Stop() {
	s.cron.Stop()
}

// SweepOnce runs a single pass over stale conversations.
func (s *SweeperService) SweepOnce(ctx context.Context) error {
	cutoff := time.Now().Add(-s.abandonAfter)
	stale, err := s.conversations.ListStale(ctx, models.StatusNegotiating, cutoff, sweepBatchSize)
	if err != nil {
		return err
	}

	for i := range stale {
		conv := stale[i]
		if err := s.engine.Abandon(ctx, &conv); err != nil {
			utils.LogError("failed to abandon conversation", err, map[string]interface{}{
				"conversation_id": conv.ID.String(),
			})
			continue
		}
	}

	if len(stale) > 0 {
		utils.LogInfo("swept stale conversations", map[string]interface{}{"count": len(stale)})
	}
	return nil
}
