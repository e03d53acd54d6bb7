package glock

import "testing"

func TestLockRequestDenyApprove(t *testing.T) {
	r := newLockRequest(modeShared)

	if r.Mode() != modeShared {
		t.Errorf("Mode() = %v, want modeShared", r.Mode())
	}
	if r.IsDenied() {
		t.Errorf("IsDenied() = true on a fresh request, want false")
	}

	r.Deny()
	if !r.IsDenied() {
		t.Errorf("IsDenied() = false after Deny, want true")
	}

	r.Approve()
	if r.IsDenied() {
		t.Errorf("IsDenied() = true after Approve, want false")
	}
}
