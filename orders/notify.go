package orders

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"broilers/models"
)

const waBase = "https://wa.me/"

// Messenger builds pre-filled WhatsApp links for messaging customers.
type Messenger struct {
	Business string
	Expiry   time.Duration
}

// CustomerLink returns a wa.me link to the customer carrying a message
// that describes the order's current status.
func (m Messenger) CustomerLink(o models.Order, expired bool) string {
	return WhatsAppLink(o.WhatsApp, m.customerMessage(o, expired))
}

// EnquiryLink is the link a customer follows to ask the business about
// one order.
func (m Messenger) EnquiryLink(businessNumber string, o models.Order) string {
	msg := fmt.Sprintf("Hello %s, I'm enquiring about my order %s for %d hens.", m.Business, o.ID, o.HensCount)
	return WhatsAppLink(businessNumber, msg)
}

func (m Messenger) customerMessage(o models.Order, expired bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n", o.CustomerName)

	switch {
	case expired:
		fmt.Fprintf(&b, "Your order for %d hens was not confirmed within %s and has been CANCELLED.\n", o.HensCount, humanHours(m.Expiry))
		b.WriteString("Please place a new order if you still need a delivery.\n")
	case o.Status == models.StatusConfirmed:
		fmt.Fprintf(&b, "Your order for %d hens has been CONFIRMED.\n", o.HensCount)
		if o.DeliveryTime != "" && o.DeliveryTime != models.NotSpecified {
			fmt.Fprintf(&b, "Expected delivery: %s.\n", o.DeliveryTime)
		}
	case o.Status == models.StatusDelivered:
		fmt.Fprintf(&b, "Your order for %d hens has been COMPLETED successfully.\n", o.HensCount)
	case o.Status == models.StatusCancelled:
		fmt.Fprintf(&b, "Your order for %d hens has been CANCELLED.\n", o.HensCount)
	default:
		fmt.Fprintf(&b, "We have received your order for %d hens (order %s).\n", o.HensCount, o.ID)
	}

	fmt.Fprintf(&b, "Thank you for choosing %s.", m.Business)
	return b.String()
}

// WhatsAppLink encodes text the way browsers' encodeURIComponent does.
func WhatsAppLink(number, text string) string {
	return waBase + number + "?text=" + strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
}

func humanHours(d time.Duration) string {
	if d <= 0 {
		return "the allowed time"
	}
	h := d.Hours()
	if h == float64(int(h)) {
		return fmt.Sprintf("%d hours", int(h))
	}
	return d.String()
}
