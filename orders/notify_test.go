package orders

import (
	"net/url"
	"strings"
	"testing"

	"broilers/models"
)

func decodeText(t *testing.T, link string) string {
	t.Helper()
	u, err := url.Parse(link)
	if err != nil {
		t.Fatalf("parse %q: %v", link, err)
	}
	return u.Query().Get("text")
}

func TestCustomerLink(t *testing.T) {
	m := Messenger{Business: "Srinivasa Broilers", Expiry: DefaultExpiry}
	o := models.Order{ID: "ORDER-1-abc", CustomerName: "Ravi", WhatsApp: "919876543210", HensCount: 10, DeliveryTime: "Morning"}

	tests := []struct {
		status  models.OrderStatus
		expired bool
		want    string
	}{
		{models.StatusPending, false, "We have received your order for 10 hens"},
		{models.StatusConfirmed, false, "has been CONFIRMED"},
		{models.StatusDelivered, false, "COMPLETED successfully"},
		{models.StatusCancelled, false, "has been CANCELLED"},
		{models.StatusCancelled, true, "not confirmed within 18 hours"},
	}

	for _, tt := range tests {
		o.Status = tt.status
		link := m.CustomerLink(o, tt.expired)
		if !strings.HasPrefix(link, "https://wa.me/919876543210?text=") {
			t.Fatalf("link = %q", link)
		}
		if strings.Contains(link, "+") {
			t.Errorf("spaces encoded as '+': %q", link)
		}
		text := decodeText(t, link)
		if !strings.Contains(text, tt.want) {
			t.Errorf("%s: text %q does not contain %q", tt.status, text, tt.want)
		}
		if !strings.HasSuffix(text, "Thank you for choosing Srinivasa Broilers.") {
			t.Errorf("%s: missing sign-off: %q", tt.status, text)
		}
	}
}

func TestConfirmedMentionsDeliveryTime(t *testing.T) {
	m := Messenger{Business: "B"}
	o := models.Order{Status: models.StatusConfirmed, DeliveryTime: "Tomorrow 7am"}
	if text := decodeText(t, m.CustomerLink(o, false)); !strings.Contains(text, "Expected delivery: Tomorrow 7am.") {
		t.Errorf("text = %q", text)
	}

	o.DeliveryTime = models.NotSpecified
	if text := decodeText(t, m.CustomerLink(o, false)); strings.Contains(text, "Expected delivery") {
		t.Errorf("placeholder delivery time shown: %q", text)
	}
}

func TestEnquiryLink(t *testing.T) {
	m := Messenger{Business: "Srinivasa Broilers"}
	link := m.EnquiryLink("919000000000", models.Order{ID: "ORDER-9-x", HensCount: 4})
	if !strings.HasPrefix(link, "https://wa.me/919000000000?text=") {
		t.Fatalf("link = %q", link)
	}
	if text := decodeText(t, link); !strings.Contains(text, "ORDER-9-x for 4 hens") {
		t.Errorf("text = %q", text)
	}
}
