package metricdoc

import "strings"

// TemplateTag is a category tag for the static template table. Independent
// of role classification: this keying is about what a department does, not
// who works in it.
type TemplateTag string

const (
	TagFinance    TemplateTag = "finance"
	TagTechnical  TemplateTag = "technical"
	TagSales      TemplateTag = "sales"
	TagProduction TemplateTag = "production"
	TagLogistics  TemplateTag = "logistics"
	TagGeneric    TemplateTag = "generic"
)

type templateRule struct {
	tag      TemplateTag
	keywords []string
}

// templateRules are checked in order; first keyword hit wins.
var templateRules = []templateRule{
	{TagFinance, []string{"finance", "accounting", "treasury", "audit", "budget", "economics"}},
	{TagTechnical, []string{"it", "information technology", "software", "infrastructure", "digital", "data", "technical", "automation"}},
	{TagSales, []string{"sales", "commercial", "retail", "customer", "marketing"}},
	{TagProduction, []string{"production", "manufacturing", "assembly", "quality"}},
	{TagLogistics, []string{"logistics", "warehouse", "supply", "transport", "procurement"}},
}

// ClassifyTemplate picks the template category for a department name.
func ClassifyTemplate(department string) TemplateTag {
	d := normalize(department)
	words := strings.Fields(d)
	for _, r := range templateRules {
		for _, kw := range r.keywords {
			if strings.Contains(kw, " ") {
				if strings.Contains(d, kw) {
					return r.tag
				}
				continue
			}
			for _, w := range words {
				if w == kw || (len(kw) > 3 && strings.Contains(w, kw)) {
					return r.tag
				}
			}
		}
	}
	return TagGeneric
}

// templates holds the full template text per category tag. Read-only.
var templates = map[TemplateTag]string{
	TagFinance: `# Performance Metrics: Finance Functions

Key indicators for finance and accounting units:
- Closing timeliness: monthly close completed within the target number of working days.
- Reporting accuracy: share of reports delivered without material restatement.
- Budget variance: actual versus planned spend per cost center.
- Receivables discipline: overdue receivables as a share of total receivables.
- Compliance: audit findings closed on schedule.

Targets are set per unit during the annual planning cycle and reviewed quarterly.`,

	TagTechnical: `# Performance Metrics: Technology Functions

Key indicators for technology and infrastructure units:
- Service availability: uptime of owned systems against the agreed service level.
- Incident response: mean time to acknowledge and mean time to restore.
- Delivery throughput: planned changes shipped per reporting period.
- Change quality: share of changes rolled back or causing incidents.
- Security hygiene: patch latency and closed vulnerability findings.

Targets are set per unit during the annual planning cycle and reviewed quarterly.`,

	TagSales: `# Performance Metrics: Sales and Commercial Functions

Key indicators for sales and commercial units:
- Revenue attainment: actual revenue against the period plan.
- Pipeline health: coverage ratio of qualified pipeline to target.
- Conversion: win rate from qualified opportunity to closed deal.
- Retention: revenue retained from the existing customer base.
- Forecast accuracy: deviation of committed forecast from actuals.

Targets are set per unit during the annual planning cycle and reviewed quarterly.`,

	TagProduction: `# Performance Metrics: Production Functions

Key indicators for production and manufacturing units:
- Output attainment: produced volume against the period plan.
- Quality: first-pass yield and defect rate per thousand units.
- Equipment effectiveness: availability, performance and quality combined.
- Safety: recordable incidents per period, target zero.
- Waste: scrap and rework as a share of production cost.

Targets are set per unit during the annual planning cycle and reviewed quarterly.`,

	TagLogistics: `# Performance Metrics: Logistics Functions

Key indicators for logistics and supply units:
- Delivery reliability: orders delivered complete and on time.
- Inventory accuracy: book-to-physical variance per cycle count.
- Turnaround: average dock-to-stock and order-to-ship times.
- Cost per shipment: fully loaded logistics cost per delivered order.
- Claims: damage and loss claims as a share of shipments.

Targets are set per unit during the annual planning cycle and reviewed quarterly.`,

	TagGeneric: `# Performance Metrics: General Business Functions

Key indicators applicable to any business unit:
- Objective attainment: progress against the unit's agreed period objectives.
- Process timeliness: share of recurring deliverables completed on schedule.
- Quality of output: rework rate on the unit's primary deliverables.
- Stakeholder satisfaction: internal customer feedback score.
- Staffing health: vacancy rate and onboarding time for open roles.

Targets are set per unit during the annual planning cycle and reviewed quarterly.`,
}

// Template returns the template text for a tag, falling back to generic.
func Template(tag TemplateTag) (string, bool) {
	t, ok := templates[tag]
	if !ok {
		return templates[TagGeneric], false
	}
	return t, true
}

// FallbackDocument is the terminal minimal document returned when even the
// template table cannot serve a request. Resolution must never be empty.
const FallbackDocument = `# Performance Metrics

No specific metric document is registered for this unit. Evaluate the unit
against its agreed period objectives, delivery timeliness and the quality
of its primary outputs until a dedicated document is registered.`
