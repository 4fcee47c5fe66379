package motionplan_test

import (
	"testing"

	"github.com/pkg/errors"
	"go.viam.com/test"

	"github.com/ill-paths/tasengine/motionplan"
)

func TestPlanErrorWrapsCause(t *testing.T) {
	cause := errors.New("boom")
	err := motionplan.NewPlanError(motionplan.ErrUnreachable, "search failed", cause)
	test.That(t, err.Kind(), test.ShouldEqual, motionplan.ErrUnreachable)
	test.That(t, errors.Cause(err.Unwrap()), test.ShouldEqual, cause)
	test.That(t, err.Error(), test.ShouldContainSubstring, "search failed")
}

func TestPlanErrorWithoutCause(t *testing.T) {
	err := motionplan.NewPlanError(motionplan.ErrInvalidInput, "bad input", nil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "bad input")
}

func TestErrKindString(t *testing.T) {
	test.That(t, motionplan.ErrBackendUnavailable.String(), test.ShouldEqual, "BackendUnavailable")
}
