package litl

import "testing"

func TestSysinfoString_NonEmpty(t *testing.T) {
	if sysinfoString() == "" {
		t.Fatal("sysinfoString returned an empty string")
	}
}
