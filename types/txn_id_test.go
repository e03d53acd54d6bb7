package types

import "testing"

func TestTxnIDSerializeRoundTrip(t *testing.T) {
	want := TxnID(12345)

	got := NewTxnIDFromBytes(want.Serialize())
	if got != want {
		t.Errorf("NewTxnIDFromBytes(Serialize()) = %v, want %v", got, want)
	}
}

func TestTxnIDSerializeRoundTripNegative(t *testing.T) {
	want := InvalidTxnID

	got := NewTxnIDFromBytes(want.Serialize())
	if got != want {
		t.Errorf("NewTxnIDFromBytes(Serialize()) = %v, want %v", got, want)
	}
}
