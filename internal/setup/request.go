package setup

import "github.com/OFFIS-RIT/wikigraph/pkg/common"

// Request is a crawl submitted over HTTP or the queue. Unset fields keep the
// values of the Config it is applied to.
type Request struct {
	Seeds                []common.Seed `json:"seeds" validate:"required,min=1,dive"`
	MaxHops              *int          `json:"max_hops,omitempty" validate:"omitempty,min=0,max=5"`
	AdditionalProperties []string      `json:"additional_properties,omitempty" validate:"omitempty,dive,startswith=P"`
	Algorithms           []string      `json:"algorithms,omitempty" validate:"omitempty,dive,required"`
	StopIDs              []string      `json:"stop_ids,omitempty" validate:"omitempty,dive,startswith=Q"`
	TopN                 *int          `json:"top_n,omitempty" validate:"omitempty,min=1,max=1000"`
	LargestComponent     *bool         `json:"largest_component,omitempty"`
	SkipVisited          *bool         `json:"skip_visited,omitempty"`
	SkipFailed           *bool         `json:"skip_failed,omitempty"`
}

// Apply returns a copy of c with the fields set in r.
func (c Config) Apply(r Request) Config {
	if r.MaxHops != nil {
		c.MaxHops = *r.MaxHops
	}
	if len(r.AdditionalProperties) > 0 {
		c.ExpandProperties = append(append([]string(nil), c.ExpandProperties...), r.AdditionalProperties...)
	}
	if len(r.Algorithms) > 0 {
		c.Algorithms = r.Algorithms
	}
	if len(r.StopIDs) > 0 {
		c.StopIDs = append(append([]string(nil), c.StopIDs...), r.StopIDs...)
	}
	if r.TopN != nil {
		c.TopN = *r.TopN
	}
	if r.LargestComponent != nil {
		c.LargestComponent = *r.LargestComponent
	}
	if r.SkipVisited != nil {
		c.SkipVisited = *r.SkipVisited
	}
	if r.SkipFailed != nil {
		c.SkipFailed = *r.SkipFailed
	}
	return c
}
