package responder

import "context"

// HeuristicProvider is the default deterministic engine. The personalized
// path is taken only when both knowledge layers resolved; otherwise it
// falls back to generic templates, with the level reflecting how much of
// the debtor's identity was available.
type HeuristicProvider struct{}

func NewHeuristicProvider() *HeuristicProvider {
	return &HeuristicProvider{}
}

func (p *HeuristicProvider) Generate(ctx context.Context, req *Request) (*Response, error) {
	if req.Debtor != nil && req.Corporate != nil {
		return p.personalized(req), nil
	}
	return p.generic(req), nil
}

func (p *HeuristicProvider) personalized(req *Request) *Response {
	responseType := intentResponseType(req.Analysis.Intent)
	return &Response{
		Content:              personalizedContent(responseType, req),
		Confidence:           fixedConfidence(TypePersonalized),
		Keywords:             req.Analysis.Keywords,
		Type:                 TypePersonalized,
		PersonalizationLevel: LevelUltraHigh,
	}
}

func (p *HeuristicProvider) generic(req *Request) *Response {
	responseType := intentResponseType(req.Analysis.Intent)

	debtorName := ""
	level := LevelMedium
	if req.Debtor != nil && req.Debtor.Personal.Name != "" {
		debtorName = req.Debtor.Personal.Name
		level = LevelHigh
	}

	return &Response{
		Content:              genericContent(responseType, debtorName, req.Proposal, req.Limits),
		Confidence:           fixedConfidence(responseType),
		Keywords:             req.Analysis.Keywords,
		Type:                 responseType,
		PersonalizationLevel: level,
	}
}
