package models

import "testing"

func TestOrderStatusCanTransition(t *testing.T) {
	tests := []struct {
		from OrderStatus
		to   OrderStatus
		want bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusDelivered, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusPending, true},
		{StatusConfirmed, StatusDelivered, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusPending, false},
		{StatusDelivered, StatusCancelled, false},
		{StatusDelivered, StatusPending, false},
		{StatusCancelled, StatusPending, false},
		{StatusCancelled, StatusConfirmed, false},
		{StatusCancelled, StatusCancelled, true},
		{StatusPending, LegacyStatusCompleted, false},
		{StatusPending, OrderStatus("Shipped"), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			if got := tt.from.CanTransition(tt.to); got != tt.want {
				t.Errorf("CanTransition() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOrderStatusTerminal(t *testing.T) {
	for _, s := range []OrderStatus{StatusDelivered, StatusCancelled} {
		if !s.Terminal() {
			t.Errorf("%s should be terminal", s)
		}
	}
	for _, s := range []OrderStatus{StatusPending, StatusConfirmed} {
		if s.Terminal() {
			t.Errorf("%s should not be terminal", s)
		}
	}
	if LegacyStatusCompleted.Valid() {
		t.Error("legacy Completed status must not be valid")
	}
}

func TestOrderPublicView(t *testing.T) {
	o := Order{
		ID: "o1", CustomerName: "Ravi", WhatsApp: "919876543210", HensCount: 10,
		Address: "12 Temple Street", SpecialInstructions: "Ring twice", Status: StatusConfirmed,
	}
	pub := o.Public()
	if pub.ID != "o1" || pub.CustomerName != "Ravi" || pub.HensCount != 10 || pub.Status != StatusConfirmed {
		t.Errorf("public view = %+v", pub)
	}
	if pub.WhatsApp != "********3210" {
		t.Errorf("WhatsApp = %q", pub.WhatsApp)
	}
	if got := (Order{WhatsApp: "123"}).Public().WhatsApp; got != "***" {
		t.Errorf("short number = %q", got)
	}

	ev := OrderEvent{Type: EventOrderCreated, OrderID: "o1", Order: &o, NotifyURL: "https://wa.me/x"}.Public()
	if ev.Order == nil || ev.Order.WhatsApp != pub.WhatsApp {
		t.Errorf("public event = %+v", ev)
	}
	if (OrderEvent{Type: EventOrderDeleted, OrderID: "o1"}).Public().Order != nil {
		t.Error("deleted event grew an order")
	}
}
