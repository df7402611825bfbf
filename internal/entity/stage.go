package entity

// Stage is one column of the sales pipeline.
type Stage string

const (
	StageProspect Stage = "Prospect"
	StageContact  Stage = "Contato"
	StageProposal Stage = "Proposta"
	StageWon      Stage = "Ganho"
	StageLost     Stage = "Perdido"
)

// DefaultStage is assigned to leads created or imported without a status.
const DefaultStage = StageProspect

// StageSet is an ordered, closed set of pipeline stages.
type StageSet struct {
	stages []Stage
	titles map[Stage]string
}

// PipelineStages is the canonical five-column funnel.
var PipelineStages = NewStageSet(
	StageDef{StageProspect, "Prospect"},
	StageDef{StageContact, "Em Contato"},
	StageDef{StageProposal, "Proposta Enviada"},
	StageDef{StageWon, "Ganho"},
	StageDef{StageLost, "Perdido"},
)

type StageDef struct {
	ID    Stage
	Title string
}

func NewStageSet(defs ...StageDef) StageSet {
	s := StageSet{titles: make(map[Stage]string, len(defs))}
	for _, d := range defs {
		if _, dup := s.titles[d.ID]; dup {
			continue
		}
		s.stages = append(s.stages, d.ID)
		s.titles[d.ID] = d.Title
	}
	return s
}

func (s StageSet) Contains(st Stage) bool {
	_, ok := s.titles[st]
	return ok
}

// Stages returns the stages in pipeline order.
func (s StageSet) Stages() []Stage {
	out := make([]Stage, len(s.stages))
	copy(out, s.stages)
	return out
}

// Title returns the display name, or the raw id for unknown stages.
func (s StageSet) Title(st Stage) string {
	if t, ok := s.titles[st]; ok {
		return t
	}
	return string(st)
}

func (s StageSet) Index(st Stage) int {
	for i, v := range s.stages {
		if v == st {
			return i
		}
	}
	return -1
}

// Next returns the stage to the right of st. ok is false at the last column.
func (s StageSet) Next(st Stage) (Stage, bool) {
	i := s.Index(st)
	if i < 0 || i+1 >= len(s.stages) {
		return "", false
	}
	return s.stages[i+1], true
}

// Prev returns the stage to the left of st. ok is false at the first column.
func (s StageSet) Prev(st Stage) (Stage, bool) {
	i := s.Index(st)
	if i <= 0 {
		return "", false
	}
	return s.stages[i-1], true
}

// ParseStage validates raw against the pipeline set.
func ParseStage(raw string) (Stage, error) {
	st := Stage(raw)
	if !PipelineStages.Contains(st) {
		return "", ErrInvalidStage
	}
	return st, nil
}
