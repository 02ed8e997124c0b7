package orders

import (
	"testing"

	"broilers/models"
)

func TestValidateOrder(t *testing.T) {
	tests := []struct {
		name string
		form models.OrderForm
		want map[string]string
	}{
		{
			name: "valid",
			form: models.OrderForm{CustomerName: "Ravi", HensCount: "10", WhatsApp: "9876543210"},
		},
		{
			name: "valid with country code",
			form: models.OrderForm{CustomerName: "Ravi", HensCount: "1", WhatsApp: "+91 98765 43210"},
		},
		{
			name: "everything missing",
			form: models.OrderForm{CustomerName: "  "},
			want: map[string]string{
				FieldCustomerName: "Customer name required",
				FieldHensCount:    "Number of hens required",
				FieldWhatsApp:     "Enter valid 10-digit WhatsApp number",
			},
		},
		{
			name: "short number",
			form: models.OrderForm{CustomerName: "Ravi", HensCount: "10", WhatsApp: "98765"},
			want: map[string]string{FieldWhatsApp: "Enter valid 10-digit WhatsApp number"},
		},
		{
			name: "eleven digits",
			form: models.OrderForm{CustomerName: "Ravi", HensCount: "10", WhatsApp: "98765432101"},
			want: map[string]string{FieldWhatsApp: "Enter valid 10-digit WhatsApp number"},
		},
		{
			name: "zero hens",
			form: models.OrderForm{CustomerName: "Ravi", HensCount: "0", WhatsApp: "9876543210"},
			want: map[string]string{FieldHensCount: "Number of hens must be a positive whole number"},
		},
		{
			name: "fractional hens",
			form: models.OrderForm{CustomerName: "Ravi", HensCount: "2.5", WhatsApp: "9876543210"},
			want: map[string]string{FieldHensCount: "Number of hens must be a positive whole number"},
		},
		{
			name: "negative hens",
			form: models.OrderForm{CustomerName: "Ravi", HensCount: "-3", WhatsApp: "9876543210"},
			want: map[string]string{FieldHensCount: "Number of hens must be a positive whole number"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateOrder(tt.form, "91")
			if len(tt.want) == 0 {
				if got != nil {
					t.Fatalf("expected valid form, got %v", got)
				}
				return
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for field, msg := range tt.want {
				if got[field] != msg {
					t.Errorf("%s = %q, want %q", field, got[field], msg)
				}
			}
		})
	}
}

func TestLocalNumber(t *testing.T) {
	tests := []struct {
		in   string
		cc   string
		want string
		ok   bool
	}{
		{"9876543210", "91", "9876543210", true},
		{"919876543210", "91", "9876543210", true},
		{"(987) 654-3210", "91", "9876543210", true},
		{"449876543210", "91", "", false},
		{"449876543210", "44", "9876543210", true},
		{"", "91", "", false},
	}
	for _, tt := range tests {
		got, ok := LocalNumber(tt.in, tt.cc)
		if got != tt.want || ok != tt.ok {
			t.Errorf("LocalNumber(%q, %q) = %q, %v; want %q, %v", tt.in, tt.cc, got, ok, tt.want, tt.ok)
		}
	}
}

func TestFieldErrorsMessageIsStable(t *testing.T) {
	fe := FieldErrors{FieldWhatsApp: "b", FieldCustomerName: "a"}
	if got := fe.Error(); got != "invalid order: customerName: a; whatsapp: b" {
		t.Errorf("Error() = %q", got)
	}
}
