package shared

import (
	"time"
)

const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeSkipped = "skipped"
)

// Metrics hides the Prometheus collectors from the use cases.
type Metrics interface {
	SagaStep(step, outcome string)
	Compensation(step, outcome string)
	DeliveryTransition(to string, accident bool)
	ExternalCall(service, operation, outcome string, elapsed time.Duration)
}

func Outcome(err error) string {
	if err != nil {
		return OutcomeFailure
	}
	return OutcomeSuccess
}
