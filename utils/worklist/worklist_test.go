package worklist

import "testing"

func TestWorklistFIFO(t *testing.T) {
	var order []int
	StartV([]int{1, 2}, func(next int, add func(int)) {
		order = append(order, next)
		if next == 1 {
			add(3)
			add(1 + 10)
		}
	})

	expected := []int{1, 2, 3, 11}
	if len(order) != len(expected) {
		t.Fatalf("processed %v, expected %v", order, expected)
	}
	for i := range expected {
		if order[i] != expected[i] {
			t.Errorf("processed %v, expected %v", order, expected)
			break
		}
	}
}

func TestWorklistDuplicates(t *testing.T) {
	W := Empty[string]()
	W.Add("a")
	W.Add("a")
	if W.Len() != 2 {
		t.Errorf("Len() = %d, expected 2", W.Len())
	}

	if W.GetNext() != "a" || W.GetNext() != "a" {
		t.Error("expected both duplicates to be returned")
	}
	if !W.IsEmpty() {
		t.Error("expected an empty worklist")
	}
	if W.GetNext() != "" {
		t.Error("expected the zero value from an empty worklist")
	}
}
