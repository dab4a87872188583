package svd

// Adapter is the engine-facing boundary around the trained model. Its one
// policy decision: an id outside the training vocabulary yields a neutral
// fallback (half of the max rating scale) instead of an error, so the
// scorer never receives a missing value.
type Adapter struct {
	model *Model
}

func NewAdapter(model *Model) *Adapter {
	return &Adapter{model: model}
}

// Predict returns the estimated rating for (user, movie), clamped to the
// model's native scale. Never fails: cold-start ids fall back to neutral.
func (a *Adapter) Predict(userID, movieID int) (float64, error) {
	if !a.model.KnownUser(userID) || !a.model.KnownItem(movieID) {
		return a.model.MaxRating / 2, nil
	}
	return a.model.estimate(userID, movieID), nil
}

// UserVector returns the user's latent vector, if trained.
func (a *Adapter) UserVector(userID int) ([]float64, bool) {
	v, ok := a.model.UserFactors[userID]
	return v, ok
}

// ItemVector returns the movie's latent vector, if trained.
func (a *Adapter) ItemVector(movieID int) ([]float64, bool) {
	v, ok := a.model.ItemFactors[movieID]
	return v, ok
}
