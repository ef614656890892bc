package poller

import (
	"testing"
	"time"

	"github.com/BearBump/SalesTrack/internal/integrations/carrier"
	pollermocks "github.com/BearBump/SalesTrack/internal/services/poller/mocks"
	"github.com/stretchr/testify/suite"
)

type PlannerSuite struct {
	suite.Suite
}

func (s *PlannerSuite) TestBackoffDelay() {
	p := NewPlanner(DefaultPlannerConfig(), nil)
	s.Equal(5*time.Minute, p.BackoffDelay(1))
	s.Equal(15*time.Minute, p.BackoffDelay(2))
	s.Equal(30*time.Minute, p.BackoffDelay(3))
	s.Equal(60*time.Minute, p.BackoffDelay(4))
	s.Equal(60*time.Minute, p.BackoffDelay(100))
	s.Equal(5*time.Minute, p.BackoffDelay(0))
}

func (s *PlannerSuite) TestNextCheckDelay_Delivered() {
	m := pollermocks.NewMockRand(s.T())
	p := NewPlanner(DefaultPlannerConfig(), m)
	s.Equal(365*24*time.Hour, p.NextCheckDelay(carrier.StatusDelivered))
}

func (s *PlannerSuite) TestNextCheckDelay_InTransit_UsesRand() {
	m := pollermocks.NewMockRand(s.T())
	// 30..120 минут: Intn получает размер диапазона в секундах.
	m.On("Intn", 5401).Return(600).Twice()

	p := NewPlanner(PlannerConfig{InTransitMinDelay: 30 * time.Minute, InTransitMaxDelay: 120 * time.Minute}, m)
	s.Equal(40*time.Minute, p.NextCheckDelay(carrier.StatusInTransit))
	s.Equal(40*time.Minute, p.NextCheckDelay(carrier.StatusOutForDelivery))
}

func (s *PlannerSuite) TestNextCheckDelay_FixedRangeSkipsRand() {
	m := pollermocks.NewMockRand(s.T())
	p := NewPlanner(PlannerConfig{InTransitMinDelay: 45 * time.Minute, InTransitMaxDelay: 45 * time.Minute}, m)
	s.Equal(45*time.Minute, p.NextCheckDelay(carrier.StatusInTransit))
}

func (s *PlannerSuite) TestDefaults() {
	cfg := NewPlanner(PlannerConfig{}, nil).Config()
	s.Equal(30*time.Minute, cfg.InTransitMinDelay)
	s.Equal(120*time.Minute, cfg.InTransitMaxDelay)
	s.Equal(90*time.Minute, cfg.UnknownDelay)
}

func (s *PlannerSuite) TestNextCheckDelay_Unknown() {
	p := NewPlanner(PlannerConfig{UnknownDelay: 90 * time.Minute}, pollermocks.NewMockRand(s.T()))
	s.Equal(90*time.Minute, p.NextCheckDelay(carrier.StatusUnknown))
	s.Equal(90*time.Minute, p.NextCheckDelay(carrier.StatusException))
}

func (s *PlannerSuite) TestDefaultsFillGaps() {
	cfg := NewPlanner(PlannerConfig{InTransitMinDelay: 10 * time.Minute, InTransitMaxDelay: time.Minute}, nil).Config()
	s.Equal(10*time.Minute, cfg.InTransitMaxDelay)
	s.Equal(5*time.Minute, cfg.Backoff1)
	s.Equal(365*24*time.Hour, cfg.DeliveredDelay)
}

func TestPlannerSuite(t *testing.T) {
	suite.Run(t, new(PlannerSuite))
}
