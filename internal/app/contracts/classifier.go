package contracts

import "context"

// Prediction is the classifier's answer for one image: a primary
// class/probability pair and an optional secondary multi-class pair.
type Prediction struct {
	Class                  string
	Probabilidade          float64
	MultClass              *string
	ProbabilidadeMultClass *float64
}

// ClassifierClient submits one image to the external classifier service.
// A nil Prediction with a nil error means the service answered but produced
// no prediction; transport failures, timeouts and non-2xx statuses are errors.
type ClassifierClient interface {
	Predict(ctx context.Context, content []byte, fileName, contentType string) (*Prediction, error)
}
