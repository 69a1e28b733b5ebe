package intent

import "strings"

// Service is one of the salon's bookable categories.
type Service string

const (
	ServiceNone    Service = ""
	ServiceHair    Service = "hair"
	ServiceNails   Service = "nails"
	ServiceFace    Service = "face"
	ServiceMakeup  Service = "makeup"
	ServiceMassage Service = "massage"
)

// serviceOrder fixes the iteration order for extraction. When a message
// mentions several services ("haircut and nails") the first category in this
// order wins; there is no disambiguation step.
var serviceOrder = []Service{ServiceHair, ServiceNails, ServiceFace, ServiceMakeup, ServiceMassage}

var serviceSynonyms = map[Service][]string{
	ServiceHair:    {"haircut", "hair", "cut", "trim", "styling", "blow dry", "color", "colour", "coloring", "dye", "rangi", "nywele", "kukatwa"},
	ServiceNails:   {"manicure", "pedicure", "nails", "nail", "kucha", "mani", "pedi", "acrylic"},
	ServiceFace:    {"facial", "face", "skin", "uso", "glow", "scrub"},
	ServiceMakeup:  {"makeup", "make up", "beat", "foundation", "lipstick", "bridal"},
	ServiceMassage: {"massage", "masaji", "spa", "relax"},
}

// ExtractService maps free text to a service category using the same
// substring technique as Classify. Returns ServiceNone when nothing matches.
func ExtractService(text string) Service {
	lower := strings.ToLower(text)
	for _, svc := range serviceOrder {
		if containsAny(lower, serviceSynonyms[svc]) {
			return svc
		}
	}
	return ServiceNone
}
