package retry

import "github.com/dagerber/spring-cloud-commons/message"

// Outcome is the raw result of one attempt: either a response or an error,
// never both. The controller builds one per attempt, the evaluator
// classifies it, and the context keeps only the most recent failure.
type Outcome struct {
	Response *message.Response
	Err      error
}

func SuccessOutcome(resp *message.Response) Outcome {
	return Outcome{Response: resp}
}

func FailureOutcome(err error) Outcome {
	return Outcome{Err: err}
}

// Success reports whether the attempt produced a response at the transport
// level. An error-range status code is still a transport-level success; the
// policy may reclassify it.
func (o Outcome) Success() bool {
	return o.Err == nil
}
