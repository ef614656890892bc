package leads

import "github.com/BearBump/SalesTrack/internal/models"

// TransitionPolicy is an explicit allowed-transition table. Without a policy
// every stage may move to every other stage.
type TransitionPolicy struct {
	next map[models.PipelineStage]map[models.PipelineStage]bool
}

// StrictPolicy only moves forward through the funnel; closed_lost is reachable
// from any open stage and both closed stages are final.
func StrictPolicy() *TransitionPolicy {
	p := &TransitionPolicy{next: map[models.PipelineStage]map[models.PipelineStage]bool{}}
	for i, from := range models.PipelineStages {
		allowed := map[models.PipelineStage]bool{}
		if !from.Terminal() {
			for _, to := range models.PipelineStages[i+1:] {
				allowed[to] = true
			}
			allowed[models.StageClosedLost] = true
		}
		p.next[from] = allowed
	}
	return p
}

// Allowed treats staying in place as allowed so the move is still logged.
func (p *TransitionPolicy) Allowed(from, to models.PipelineStage) bool {
	if from == "" || from == to {
		return true
	}
	nexts, ok := p.next[from]
	if !ok {
		return false
	}
	return nexts[to]
}
