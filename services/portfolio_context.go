package services

import (
	"context"
	"time"

	"github.com/rpupo63/portfolio-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// PortfolioReader is the read side the chat context is built from.
// Experiences come most recent first, projects newest first and skills
// ordered by category.
type PortfolioReader interface {
	ListExperiences(ctx context.Context) ([]*models.Experience, error)
	ListProjects(ctx context.Context) ([]*models.Project, error)
	ListSkillsByCategory(ctx context.Context) ([]*models.Skill, error)
}

// PortfolioContext is a snapshot of every portfolio record plus derived stats
type PortfolioContext struct {
	Experiences     []*models.Experience `json:"experiences"`
	Projects        []*models.Project    `json:"projects"`
	Skills          []*models.Skill      `json:"skills"`
	TotalExperience string               `json:"totalExperience"`
}

type Aggregator struct {
	reader PortfolioReader
	now    func() time.Time
	logger zerolog.Logger
}

func NewAggregator(reader PortfolioReader) *Aggregator {
	return &Aggregator{
		reader: reader,
		now:    time.Now,
		logger: log.With().Str("component", "aggregator").Logger(),
	}
}

// WithClock replaces the time source used for the experience duration
func (a *Aggregator) WithClock(now func() time.Time) *Aggregator {
	a.now = now
	return a
}

// Build reads all collections concurrently. A failed read is logged and
// degrades to an empty context so a prompt can always be assembled.
func (a *Aggregator) Build(ctx context.Context) PortfolioContext {
	var (
		experiences []*models.Experience
		projects    []*models.Project
		skills      []*models.Skill
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		experiences, err = a.reader.ListExperiences(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		projects, err = a.reader.ListProjects(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		skills, err = a.reader.ListSkillsByCategory(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		a.logger.Error().Err(err).Msg("Error fetching portfolio data")
		return PortfolioContext{
			Experiences:     []*models.Experience{},
			Projects:        []*models.Project{},
			Skills:          []*models.Skill{},
			TotalExperience: UnableToCalculate,
		}
	}

	if experiences == nil {
		experiences = []*models.Experience{}
	}
	if projects == nil {
		projects = []*models.Project{}
	}
	if skills == nil {
		skills = []*models.Skill{}
	}

	return PortfolioContext{
		Experiences:     experiences,
		Projects:        projects,
		Skills:          skills,
		TotalExperience: TotalExperience(experiences, a.now()),
	}
}
