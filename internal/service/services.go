package service

import (
	"github.com/Evolv11-Capstone/Evolv11-sub001/internal/ai"
	"github.com/Evolv11-Capstone/Evolv11-sub001/internal/config"
	"github.com/Evolv11-Capstone/Evolv11-sub001/internal/repository"
)

type Services struct {
	Auth       *AuthService
	Team       *TeamService
	Match      *MatchService
	Growth     *GrowthService
	Enrichment *EnrichmentService
}

// NewServices wires the service layer. aiClient may be nil (enrichment
// disabled) and notifier may be nil (no live updates).
func NewServices(repos *repository.Repositories, txm repository.TxManager, cfg *config.Config, aiClient ai.Client, notifier AttributeNotifier) *Services {
	var enrichment *EnrichmentService
	if aiClient != nil {
		enrichment = NewEnrichmentService(aiClient, repos.MatchReview)
	}

	return &Services{
		Auth:       NewAuthService(repos.User, repos.Session, cfg),
		Team:       NewTeamService(repos.Team, repos.Player, repos.Snapshot),
		Match:      NewMatchService(repos.Team, repos.Match),
		Growth:     NewGrowthService(txm, repos, enrichment, notifier),
		Enrichment: enrichment,
	}
}
