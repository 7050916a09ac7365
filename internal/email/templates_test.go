package email

import (
	"strings"
	"testing"
)

func TestRenderHotLeadAlert(t *testing.T) {
	content, err := renderEmailTemplate("hot_lead_alert.html", hotLeadEmailData{
		baseEmailData: baseEmailData{Title: "Hot lead captured", Heading: "Hot lead captured"},
		LeadName:      "Jordan Reyes",
		BusinessName:  "Reyes Wholesale",
		Score:         85,
		Grade:         "A",
		Tier:          "hot",
		ContactEmail:  "jordan@reyes.example",
		Brands:        "Beri, Raz",
		CapturedAt:    "Aug 20, 2026 10:30 AM",
	})
	if err != nil {
		t.Fatalf("renderEmailTemplate: %v", err)
	}

	for _, want := range []string{"Jordan Reyes", "Reyes Wholesale", "<strong>85</strong>", "grade A, hot", "Beri, Raz"} {
		if !strings.Contains(content, want) {
			t.Errorf("rendered alert missing %q", want)
		}
	}
}

func TestRenderHotLeadAlertOmitsEmptyFields(t *testing.T) {
	content, err := renderEmailTemplate("hot_lead_alert.html", hotLeadEmailData{
		baseEmailData: baseEmailData{Title: "Hot lead captured", Heading: "Hot lead captured"},
		LeadName:      "Walk-in",
		Score:         72,
		Grade:         "B",
		Tier:          "hot",
	})
	if err != nil {
		t.Fatalf("renderEmailTemplate: %v", err)
	}

	for _, absent := range []string{"Business<", "Email<", "Phone<", "Brands<"} {
		if strings.Contains(content, ">"+absent) {
			t.Errorf("rendered alert should omit empty row %q", absent)
		}
	}
}
