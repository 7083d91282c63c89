package sim

import "github.com/san-kum/reflow/internal/growth"

// Stats summarizes the collection after a tick.
type Stats struct {
	Frame            int `json:"frame"`
	Curves           int `json:"curves"`
	Active           int `json:"active"`
	Segments         int `json:"segments"`
	MaxLength        int `json:"max_length"`
	OutOfBounds      int `json:"out_of_bounds"`
	SelfIntersection int `json:"self_intersection"`
}

// Stats computes the current population summary.
func (c *Controller) Stats() Stats {
	s := Stats{Frame: c.frame, Curves: len(c.curves)}
	for _, curve := range c.curves {
		s.Segments += curve.Len()
		switch curve.Reason {
		case growth.Growing:
			if curve.Active {
				s.Active++
			}
		case growth.MaxLength:
			s.MaxLength++
		case growth.OutOfBounds:
			s.OutOfBounds++
		case growth.SelfIntersection:
			s.SelfIntersection++
		}
	}
	return s
}
