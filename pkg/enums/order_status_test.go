package enums

import "testing"

func TestOrderStatusIsValid(t *testing.T) {
	for _, status := range []OrderStatus{OrderStatusPending, OrderStatusCompleted, OrderStatusCancelled} {
		if !status.IsValid() {
			t.Fatalf("expected %q to be valid", status)
		}
	}
	if OrderStatus("shipped").IsValid() {
		t.Fatal("expected unknown status to be invalid")
	}
	if OrderStatus("").IsValid() {
		t.Fatal("expected empty status to be invalid")
	}
}

func TestParseOrderStatus(t *testing.T) {
	status, err := ParseOrderStatus("completed")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != OrderStatusCompleted {
		t.Fatalf("unexpected status: %q", status)
	}

	if _, err := ParseOrderStatus("Completed"); err == nil {
		t.Fatal("expected case-sensitive parse to reject capitalized value")
	}
	if _, err := ParseOrderStatus(""); err == nil {
		t.Fatal("expected empty value to be rejected")
	}
}
