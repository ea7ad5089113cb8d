package localsync

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResultSingleTerminalTransition(t *testing.T) {
	r := newResult()
	assert.Equal(t, Pending, r.State())

	r.resolve("v")
	assert.Equal(t, Resolved, r.State())
	assert.Equal(t, "v", r.Value())

	// Later transitions are no-ops.
	r.reject()
	r.resolve("other")
	assert.Equal(t, Resolved, r.State())
	assert.Equal(t, "v", r.Value())
}

func TestResultRejectThenResolveIsNoOp(t *testing.T) {
	r := newResult()
	r.reject()
	r.resolve("v")

	assert.Equal(t, Rejected, r.State())
	assert.Nil(t, r.Value())
}

func TestResultDoneClosesOnce(t *testing.T) {
	r := newResult()

	select {
	case <-r.Done():
		t.Fatal("done must stay open while pending")
	default:
	}

	r.resolve(1)
	r.reject() // must not close done a second time

	<-r.Done()
}

func TestResultWait(t *testing.T) {
	r := newResult()
	go r.resolve("v")
	v, err := r.Wait()
	assert.NoError(t, err)
	assert.Equal(t, "v", v)

	r2 := newResult()
	go r2.reject()
	v, err = r2.Wait()
	assert.ErrorIs(t, err, ErrRejected)
	assert.Nil(t, v)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "pending", Pending.String())
	assert.Equal(t, "resolved", Resolved.String())
	assert.Equal(t, "rejected", Rejected.String())
}
