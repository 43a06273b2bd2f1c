package assert

import "math"

// Equal checks whether expected and actual are actually equal and fails the test
// if they are not.
func Equal[V comparable](t TestingErrf, expected, actual V, msgAndArgs ...any) {
	t.Helper()

	if expected == actual {
		return
	}

	t.Errorf("not equal: expected `%#v` but got `%#v`%s",
		expected, actual, fromMsgAndArgs(msgAndArgs...),
	)
}

// InDelta fails the test when actual differs from expected by more than delta.
// NaN is never within any delta.
func InDelta(t TestingErrf, expected, actual, delta float64, msgAndArgs ...any) {
	t.Helper()

	diff := math.Abs(expected - actual)
	if !math.IsNaN(diff) && diff <= delta {
		return
	}

	t.Errorf("expected %v to be within %v of %v%s",
		actual, delta, expected, fromMsgAndArgs(msgAndArgs...),
	)
}
