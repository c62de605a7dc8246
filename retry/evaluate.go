package retry

// Retryable reports whether the policy classifies the outcome as worth
// another attempt. It is pure: no mutation of the retry context, no side
// effects.
//
// Fail closed: a nil policy never retries, and a policy that panics while
// classifying (malformed outcome, broken predicate) counts as non-retryable
// rather than taking the invocation down.
func Retryable(p Policy, o Outcome) (retryable bool) {
	if p == nil {
		return false
	}
	defer func() {
		if recover() != nil {
			retryable = false
		}
	}()

	if o.Err != nil {
		return p.RetryableError(o.Err)
	}
	return p.RetryableStatusCode(o.Response.StatusCode)
}
