// Package salon holds the static business knowledge the bot answers from:
// the service catalogue, price ranges, operating hours and FAQ answers.
package salon

import (
	"fmt"
	"strings"
	"time"

	"github.com/frankbeauty/salon-bot/internal/intent"
)

// Info identifies the business in outbound copy.
const (
	Name     = "Frank Beauty Spot"
	Address  = "Tom Mboya Street, Nairobi CBD"
	Phone    = "0712345678"
	TillNote = "M-Pesa (Till: 123456), cash, and debit/credit cards"
)

// ServiceInfo describes one bookable category.
type ServiceInfo struct {
	Service     intent.Service
	DisplayName string
	Description string
	Duration    string
	MinKES      int
	MaxKES      int
	DepositKES  int
}

// Catalogue lists the bookable categories in menu order.
var Catalogue = []ServiceInfo{
	{
		Service:     intent.ServiceHair,
		DisplayName: "Haircut & Styling",
		Description: "Professional haircut with styling and blow-dry",
		Duration:    "45-60 minutes",
		MinKES:      500, MaxKES: 1500, DepositKES: 500,
	},
	{
		Service:     intent.ServiceNails,
		DisplayName: "Manicure/Pedicure",
		Description: "Hand and foot care, nail shaping, cuticle care, and polish",
		Duration:    "45-60 minutes",
		MinKES:      600, MaxKES: 1500, DepositKES: 500,
	},
	{
		Service:     intent.ServiceFace,
		DisplayName: "Facial Treatment",
		Description: "Customized facial based on skin type and concerns",
		Duration:    "60-75 minutes",
		MinKES:      1200, MaxKES: 2500, DepositKES: 500,
	},
	{
		Service:     intent.ServiceMakeup,
		DisplayName: "Makeup Services",
		Description: "Professional makeup application for events and special occasions",
		Duration:    "60-90 minutes",
		MinKES:      1500, MaxKES: 3000, DepositKES: 500,
	},
	{
		Service:     intent.ServiceMassage,
		DisplayName: "Massage Therapy",
		Description: "Relaxing full-body and back massage",
		Duration:    "60 minutes",
		MinKES:      1000, MaxKES: 2500, DepositKES: 500,
	},
}

// Lookup returns the catalogue entry for a service category.
func Lookup(svc intent.Service) (ServiceInfo, bool) {
	for _, info := range Catalogue {
		if info.Service == svc {
			return info, true
		}
	}
	return ServiceInfo{}, false
}

// ServiceMenu renders the bulleted service list used in prompts.
func ServiceMenu() string {
	var b strings.Builder
	for _, info := range Catalogue {
		fmt.Fprintf(&b, "• %s - From KES %d\n", info.DisplayName, info.MinKES)
	}
	return strings.TrimRight(b.String(), "\n")
}

// PriceList renders every category with its full price range.
func PriceList() string {
	var b strings.Builder
	for _, info := range Catalogue {
		fmt.Fprintf(&b, "• %s: KES %d-%d\n", info.DisplayName, info.MinKES, info.MaxKES)
	}
	return strings.TrimRight(b.String(), "\n")
}

// OpeningHours maps lowercase weekday names to open/close times (24h "HH:MM").
var OpeningHours = map[string][2]string{
	"monday":    {"08:00", "19:00"},
	"tuesday":   {"08:00", "19:00"},
	"wednesday": {"08:00", "19:00"},
	"thursday":  {"08:00", "19:00"},
	"friday":    {"08:00", "19:00"},
	"saturday":  {"09:00", "18:00"},
	"sunday":    {"10:00", "16:00"},
}

// HoursLine is the FAQ answer for operating hours.
const HoursLine = "We're open Monday-Friday 8am-7pm, Saturday 9am-6pm, Sunday 10am-4pm"

// FAQs maps topic keys to canned answers.
var FAQs = map[string]string{
	"hours":        HoursLine,
	"appointment":  "You can book through this bot, call us at " + Phone + ", or walk in during business hours",
	"payment":      "We accept " + TillNote,
	"cancellation": "You can cancel up to 2 hours before your appointment without charge",
	"location":     Name + ", " + Address,
	"parking":      "Yes, we have secure parking available for our customers",
}

// IsOpen reports whether the salon is open at the given time.
func IsOpen(at time.Time) bool {
	day := strings.ToLower(at.Weekday().String())
	hours, ok := OpeningHours[day]
	if !ok {
		return false
	}
	clock := at.Format("15:04")
	return hours[0] <= clock && clock <= hours[1]
}
