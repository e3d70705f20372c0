// Package retry implements the blind bounded retry policy applied
// around every remote catalog call.
package retry

// DefaultAttempts is the attempt budget used by the sync pipeline.
const DefaultAttempts = 10

// Do invokes op until it returns nil or attempts runs out, with no
// delay between attempts and no inspection of the returned errors.
//
// Exhaustion is silent: Do reports false and nothing else, so callers
// are expected to leave their result at its zero value until op
// succeeds and to treat an unchanged result as the failure signal.
func Do(attempts int, op func() error) bool {
	for i := 0; i < attempts; i++ {
		if err := op(); err == nil {
			return true
		}
	}
	return false
}
