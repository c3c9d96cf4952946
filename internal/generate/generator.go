// Package generate fabricates synthetic lead records with syntactically
// valid contact data, reproducible from a seed.
package generate

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/outreach-pipeline/internal/types"
)

// industryRoles keeps generated roles consistent with their industry.
var industryRoles = map[string][]string{
	"Technology": {
		"VP of Engineering", "CTO", "VP of Product", "Director of Engineering",
		"Head of Data", "VP of Operations", "Chief Data Officer", "IT Director",
	},
	"Finance": {
		"CFO", "VP of Finance", "Director of Treasury", "Head of Risk",
		"Chief Risk Officer", "Controller", "VP of Compliance",
	},
	"Healthcare": {
		"Chief Medical Officer", "VP of Operations", "Director of IT",
		"Head of Clinical Operations", "VP of Patient Care", "Chief Operating Officer",
	},
	"Manufacturing": {
		"VP of Operations", "Director of Supply Chain", "COO", "Head of Procurement",
		"VP of Manufacturing", "Plant Manager", "Director of Quality",
	},
	"Retail": {
		"VP of Merchandising", "Director of E-commerce", "CMO",
		"Head of Retail Operations", "VP of Supply Chain", "VP of Digital",
	},
	"Logistics": {
		"VP of Logistics", "Director of Operations", "COO", "Head of Supply Chain",
		"VP of Distribution", "Director of Transportation",
	},
	"Energy": {
		"VP of Operations", "Director of Engineering", "COO", "Head of Sustainability",
		"VP of Production", "Plant Manager",
	},
	"Consulting": {
		"Managing Director", "Partner", "VP of Consulting", "Director of Strategy",
		"Head of Operations", "Practice Lead",
	},
	"Telecommunications": {
		"VP of Network Operations", "CTO", "Director of IT", "Head of Infrastructure",
		"VP of Engineering", "Chief Network Officer",
	},
	"Real Estate": {
		"VP of Development", "Director of Operations", "COO",
		"Head of Asset Management", "VP of Property Management",
	},
}

// companySuffixes gives generated company names an industry-appropriate tail.
var companySuffixes = map[string][]string{
	"Technology":         {"Tech", "Systems", "Solutions", "Labs", "Software", "Digital"},
	"Finance":            {"Capital", "Partners", "Financial", "Investments", "Holdings"},
	"Healthcare":         {"Health", "Medical", "Care", "Therapeutics", "Life Sciences"},
	"Manufacturing":      {"Industries", "Manufacturing", "Production", "Works"},
	"Retail":             {"Retail", "Stores", "Commerce", "Brands", "Markets"},
	"Logistics":          {"Logistics", "Transport", "Freight", "Distribution"},
	"Energy":             {"Energy", "Power", "Resources", "Renewables"},
	"Consulting":         {"Consulting", "Advisory", "Group", "Associates"},
	"Telecommunications": {"Telecom", "Communications", "Networks", "Mobile"},
	"Real Estate":        {"Properties", "Realty", "Development", "Estates"},
}

var countries = []string{
	"United States", "United Kingdom", "Canada", "Australia", "Germany",
	"France", "Netherlands", "Singapore", "India", "Ireland",
}

var firstNames = []string{
	"James", "Mary", "Robert", "Patricia", "John", "Jennifer", "Michael",
	"Linda", "David", "Elizabeth", "William", "Susan", "Richard", "Jessica",
	"Thomas", "Sarah", "Daniel", "Karen", "Maria", "Kevin", "Laura", "Brian",
	"Amanda", "Carlos", "Priya", "Wei", "Fatima", "Lars", "Ingrid", "Marco",
}

var lastNames = []string{
	"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller",
	"Davis", "Martinez", "Anderson", "Taylor", "Thomas", "Moore", "Jackson",
	"Martin", "Lee", "Thompson", "White", "Harris", "Clark", "Lewis", "Walker",
	"Hall", "Young", "King", "Wright", "Patel", "Chen", "Novak", "Berg",
}

var tlds = []string{".com", ".io", ".co", ".net", ".org"}

// Generator produces synthetic leads. With a seed, the produced profile
// fields are reproducible; lead IDs are always fresh UUIDs.
type Generator struct {
	rng *rand.Rand
}

// New creates a generator. A nil seed yields a time-seeded generator.
func New(seed *int64) *Generator {
	s := time.Now().UnixNano()
	if seed != nil {
		s = *seed
	}
	return &Generator{rng: rand.New(rand.NewSource(s))}
}

// Industries lists the supported industry sectors in stable order.
func Industries() []string {
	return []string{
		"Technology", "Finance", "Healthcare", "Manufacturing", "Retail",
		"Logistics", "Energy", "Consulting", "Telecommunications", "Real Estate",
	}
}

// Leads generates count leads with status NEW. When industries is
// non-empty, generation is restricted to those sectors; unknown sectors
// are rejected.
func (g *Generator) Leads(count int, industries []string) ([]types.Lead, error) {
	if count < 1 {
		return nil, fmt.Errorf("lead count must be positive, got %d", count)
	}

	pool := Industries()
	if len(industries) > 0 {
		pool = pool[:0]
		for _, ind := range industries {
			if _, ok := industryRoles[ind]; !ok {
				return nil, fmt.Errorf("unknown industry: %q", ind)
			}
			pool = append(pool, ind)
		}
	}

	now := time.Now().UTC()
	leads := make([]types.Lead, 0, count)
	for i := 0; i < count; i++ {
		industry := pool[g.rng.Intn(len(pool))]
		first := firstNames[g.rng.Intn(len(firstNames))]
		last := lastNames[g.rng.Intn(len(lastNames))]
		fullName := first + " " + last
		company := g.companyName(industry)
		domain := companyDomain(company) + tlds[g.rng.Intn(len(tlds))]

		lead := types.Lead{
			ID:          uuid.New().String(),
			FullName:    fullName,
			CompanyName: company,
			Role:        pick(g.rng, industryRoles[industry]),
			Industry:    industry,
			Website:     "https://www." + domain,
			Email:       emailAddress(first, last, domain),
			LinkedInURL: linkedInURL(first, last, g.rng),
			Country:     countries[g.rng.Intn(len(countries))],
			Status:      types.StatusNew,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		if err := lead.Validate(); err != nil {
			return nil, fmt.Errorf("generated lead failed validation: %w", err)
		}
		leads = append(leads, lead)
	}
	return leads, nil
}

// companyName builds a base name and adds an industry-appropriate suffix.
func (g *Generator) companyName(industry string) string {
	base := lastNames[g.rng.Intn(len(lastNames))]
	if g.rng.Float64() < 0.3 {
		base = base + " & " + lastNames[g.rng.Intn(len(lastNames))]
	}
	suffixes := companySuffixes[industry]
	return base + " " + suffixes[g.rng.Intn(len(suffixes))]
}

// companyDomain strips a company name down to a bare domain label.
func companyDomain(company string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(company) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func emailAddress(first, last, domain string) string {
	return strings.ToLower(first) + "." + strings.ToLower(last) + "@" + domain
}

func linkedInURL(first, last string, rng *rand.Rand) string {
	slug := strings.ToLower(first) + "-" + strings.ToLower(last)
	// Disambiguate common names the way real profiles do.
	return fmt.Sprintf("https://www.linkedin.com/in/%s-%04d", slug, rng.Intn(10000))
}

func pick(rng *rand.Rand, options []string) string {
	return options[rng.Intn(len(options))]
}
