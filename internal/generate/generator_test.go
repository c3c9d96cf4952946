package generate

import (
	"strings"
	"testing"

	"github.com/jonathan/outreach-pipeline/internal/types"
)

func TestLeadsCount(t *testing.T) {
	g := New(nil)
	leads, err := g.Leads(25, nil)
	if err != nil {
		t.Fatalf("Leads failed: %v", err)
	}
	if len(leads) != 25 {
		t.Errorf("generated %d leads, want 25", len(leads))
	}
}

func TestLeadsRejectsBadCount(t *testing.T) {
	g := New(nil)
	if _, err := g.Leads(0, nil); err == nil {
		t.Error("expected error for count 0")
	}
	if _, err := g.Leads(-5, nil); err == nil {
		t.Error("expected error for negative count")
	}
}

func TestLeadsDeterministicWithSeed(t *testing.T) {
	seed := int64(42)
	a, err := New(&seed).Leads(10, nil)
	if err != nil {
		t.Fatal(err)
	}
	b, err := New(&seed).Leads(10, nil)
	if err != nil {
		t.Fatal(err)
	}

	for i := range a {
		// IDs are always fresh; every profile field must match.
		if a[i].FullName != b[i].FullName || a[i].CompanyName != b[i].CompanyName ||
			a[i].Role != b[i].Role || a[i].Industry != b[i].Industry ||
			a[i].Email != b[i].Email || a[i].Country != b[i].Country {
			t.Fatalf("lead %d differs across seeded runs:\n%+v\n%+v", i, a[i], b[i])
		}
		if a[i].ID == b[i].ID {
			t.Errorf("lead %d reused an ID across runs", i)
		}
	}
}

func TestLeadsIndustryFilter(t *testing.T) {
	g := New(nil)
	leads, err := g.Leads(20, []string{"Finance", "Healthcare"})
	if err != nil {
		t.Fatal(err)
	}
	for _, lead := range leads {
		if lead.Industry != "Finance" && lead.Industry != "Healthcare" {
			t.Errorf("lead industry = %q, outside the requested filter", lead.Industry)
		}
	}
}

func TestLeadsUnknownIndustry(t *testing.T) {
	g := New(nil)
	if _, err := g.Leads(5, []string{"Astrology"}); err == nil {
		t.Error("expected error for unknown industry")
	}
}

func TestLeadsAreValidAndNew(t *testing.T) {
	g := New(nil)
	leads, err := g.Leads(30, nil)
	if err != nil {
		t.Fatal(err)
	}
	for _, lead := range leads {
		if lead.Status != types.StatusNew {
			t.Errorf("lead status = %s, want NEW", lead.Status)
		}
		if err := lead.Validate(); err != nil {
			t.Errorf("generated lead invalid: %v", err)
		}
		if !strings.Contains(lead.Email, "@") {
			t.Errorf("bad email: %q", lead.Email)
		}
		if !strings.HasPrefix(lead.LinkedInURL, "https://www.linkedin.com/in/") {
			t.Errorf("bad linkedin url: %q", lead.LinkedInURL)
		}
		if role := industryRoles[lead.Industry]; len(role) == 0 {
			t.Errorf("lead industry %q has no role table", lead.Industry)
		}
	}
}

func TestIndustriesStable(t *testing.T) {
	a := Industries()
	b := Industries()
	if len(a) != len(b) || len(a) == 0 {
		t.Fatalf("Industries() unstable: %v vs %v", a, b)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("Industries() order unstable: %v vs %v", a, b)
		}
	}
	for _, ind := range a {
		if _, ok := industryRoles[ind]; !ok {
			t.Errorf("industry %q missing from role table", ind)
		}
		if _, ok := companySuffixes[ind]; !ok {
			t.Errorf("industry %q missing from suffix table", ind)
		}
	}
}
