package ports

import "goverdict/models"

// BatchReader loads evaluation requests from a tabular file
type BatchReader interface {
	ReadRequests() ([]models.EvaluationRequest, error)
}
