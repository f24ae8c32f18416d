package advisory

import "context"

// PlantChecker decides whether an image shows a plant before the model is
// asked about it.
type PlantChecker interface {
	IsPlant(ctx context.Context, img *Image) (bool, error)
}

// AlwaysPlant accepts every image.
type AlwaysPlant struct{}

func (AlwaysPlant) IsPlant(context.Context, *Image) (bool, error) { return true, nil }

// PlantCheckerFunc adapts a function to PlantChecker.
type PlantCheckerFunc func(ctx context.Context, img *Image) (bool, error)

func (f PlantCheckerFunc) IsPlant(ctx context.Context, img *Image) (bool, error) { return f(ctx, img) }
