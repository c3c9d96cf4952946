package enrich

// personaRule maps role keywords to a persona tag. Rules are ordered;
// first match wins.
type personaRule struct {
	keywords []string
	persona  string
}

var personaRules = []personaRule{
	{[]string{"operations", "ops", "coo", "operating"}, "Operations Leader"},
	{[]string{"data", "analytics", "intelligence"}, "Data Leader"},
	{[]string{"cto", "technology", "engineering", "tech", "it director"}, "Tech Leader"},
	{[]string{"cfo", "finance", "financial", "treasury", "controller"}, "Finance Leader"},
	{[]string{"supply chain", "procurement", "logistics", "sourcing"}, "Supply Chain Leader"},
	{[]string{"sales", "commercial", "revenue"}, "Sales Leader"},
	{[]string{"marketing", "cmo", "brand", "growth"}, "Marketing Leader"},
	{[]string{"ceo", "chief executive", "president", "managing director"}, "Executive Leader"},
}

var industryPainPoints = map[string][]string{
	"Technology": {
		"Scaling engineering teams efficiently",
		"Managing technical debt and legacy systems",
		"Ensuring data security and compliance",
		"Accelerating time-to-market for new features",
		"Managing cloud infrastructure costs",
	},
	"Finance": {
		"Regulatory compliance burden increasing",
		"Manual processes slowing operations",
		"Data silos preventing unified view",
		"Fraud detection and prevention",
		"Real-time reporting requirements",
	},
	"Healthcare": {
		"Patient data management challenges",
		"Interoperability between systems",
		"Cost containment pressures",
		"Care coordination difficulties",
		"Clinical workflow optimization",
	},
	"Manufacturing": {
		"Supply chain disruptions",
		"Production efficiency optimization",
		"Equipment downtime reduction",
		"Inventory management complexity",
		"Digital transformation challenges",
	},
	"Retail": {
		"Omnichannel experience consistency",
		"Inventory visibility across channels",
		"Customer data unification",
		"Seasonal demand forecasting",
		"Store operations efficiency",
	},
	"Logistics": {
		"Route optimization complexity",
		"Real-time visibility gaps",
		"Driver shortage and retention",
		"Warehouse efficiency",
		"Cross-border compliance",
	},
	"Energy": {
		"Grid modernization needs",
		"Renewable integration challenges",
		"Asset maintenance optimization",
		"Regulatory compliance costs",
		"Sustainability reporting requirements",
	},
	"Consulting": {
		"Knowledge management across teams",
		"Resource utilization optimization",
		"Project margin pressures",
		"Scaling delivery capabilities",
		"Competitive differentiation",
	},
	"Telecommunications": {
		"Network infrastructure modernization",
		"Customer churn reduction",
		"Service quality management",
		"Legacy system migration",
		"Customer experience improvement",
	},
	"Real Estate": {
		"Property management efficiency",
		"Tenant experience improvement",
		"Sustainability compliance",
		"Data-driven decision making",
		"Asset valuation accuracy",
	},
}

// personaPainPoints overlay on the industry list when the persona matches.
var personaPainPoints = map[string][]string{
	"Operations Leader": {
		"Process efficiency and standardization",
		"Cross-functional coordination challenges",
		"Operational cost optimization",
	},
	"Data Leader": {
		"Data quality and governance",
		"Democratizing data access",
		"Building data-driven culture",
	},
	"Tech Leader": {
		"Technical talent acquisition",
		"Technology stack modernization",
		"Innovation vs. maintenance balance",
	},
	"Supply Chain Leader": {
		"Supplier risk management",
		"Demand forecasting accuracy",
		"End-to-end visibility",
	},
	"Finance Leader": {
		"Cash flow optimization",
		"Financial planning accuracy",
		"Audit and compliance burden",
	},
}

var industryBuyingTriggers = map[string][]string{
	"Technology": {
		"Series B+ funding received",
		"Rapid headcount growth planned",
		"New product launch announced",
		"Digital transformation initiative",
	},
	"Finance": {
		"Regulatory changes announced",
		"M&A activity",
		"Digital banking initiative",
		"Cost reduction mandate",
	},
	"Healthcare": {
		"New facility opening",
		"EMR/EHR migration planned",
		"Telehealth expansion",
		"New leadership appointed",
	},
	"Manufacturing": {
		"New facility construction",
		"Industry 4.0 initiative",
		"Supply chain restructuring",
		"Automation investment planned",
	},
	"Retail": {
		"E-commerce expansion",
		"New store openings",
		"Omnichannel initiative",
		"Loyalty program launch",
	},
	"Logistics": {
		"Fleet expansion planned",
		"New distribution center",
		"Technology modernization",
		"Sustainability initiative",
	},
	"Energy": {
		"Renewable investment announced",
		"Grid modernization project",
		"Sustainability targets set",
		"Asset optimization initiative",
	},
	"Consulting": {
		"New practice area launch",
		"Geographic expansion",
		"Digital capabilities investment",
		"Major client win",
	},
	"Telecommunications": {
		"5G rollout",
		"Network expansion",
		"New service launch",
		"Infrastructure investment",
	},
	"Real Estate": {
		"Portfolio expansion",
		"PropTech adoption",
		"New development project",
		"Management technology upgrade",
	},
}
