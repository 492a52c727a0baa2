package batch

import (
	"github.com/pkg/errors"

	"Flexure/internal/calc/deflection"
)

var ErrNoItems = errors.New("no items")

type Input struct {
	Items []deflection.Input `json:"items"`
}

type Output struct {
	Results []deflection.Result `json:"results"`
}

// Calculate runs every item in order and stops at the first failure.
func Calculate(in Input) (Output, error) {
	if len(in.Items) == 0 {
		return Output{}, ErrNoItems
	}
	out := Output{Results: make([]deflection.Result, 0, len(in.Items))}
	for i, item := range in.Items {
		res, err := deflection.Calculate(item)
		if err != nil {
			return Output{}, errors.Wrapf(err, "item %d", i)
		}
		out.Results = append(out.Results, res)
	}
	return out, nil
}
