package knowledge

const (
	ServiceResearch     = "research"
	ServiceDueDiligence = "dueDiligence"
	ServicePortfolio    = "portfolio"
	ServiceMarketTrends = "marketTrends"
	ServiceRegulatory   = "regulatory"
)

// DefaultCorpus returns the built-in marketing content. A fresh value is
// built on every call so callers may modify it before handing it to
// NewStore.
func DefaultCorpus() Corpus {
	return Corpus{
		Services: []ServiceRecord{
			{
				Key:   ServiceResearch,
				Title: "Research Enhancement",
				Description: "AI-assisted research workflows that help investment teams process filings, " +
					"transcripts and broker research faster, so analysts spend their time on judgement instead of reading.",
				Capabilities: []string{
					"Automated document analysis across 10-K, 10-Q and earnings call transcripts",
					"Thesis tracking with alerts when new evidence supports or contradicts a position",
					"Summaries of broker research with source citations",
					"Custom screening on qualitative factors",
					"Searchable institutional memory of past investment memos",
				},
				Benefits: []string{
					"Cut time spent on primary document review by up to 60%",
					"Broader coverage without adding headcount",
					"Consistent, auditable research notes",
					"Faster reaction to material disclosures",
				},
				FAQ: []FAQ{
					{
						Question: "Which document types can be analyzed?",
						Answer:   "SEC filings, transcripts, broker notes, expert network calls and your own internal memos.",
					},
					{
						Question: "Does our research data leave our environment?",
						Answer:   "No. Deployments run inside your cloud tenancy and proprietary content is never used to train shared models.",
					},
					{
						Question: "How long does onboarding take?",
						Answer:   "Most teams are live within four weeks, starting with a single strategy or sector team.",
					},
				},
			},
			{
				Key:   ServiceDueDiligence,
				Title: "Due Diligence Automation",
				Description: "Structured tooling for operational and investment due diligence that turns DDQs, " +
					"data rooms and manager materials into comparable, reviewable findings.",
				Capabilities: []string{
					"DDQ ingestion and response extraction",
					"Data room indexing with red-flag detection",
					"Side-by-side manager comparison",
					"Workflow tracking for diligence checklists",
					"Reference and background check coordination",
				},
				Benefits: []string{
					"Shorter diligence cycles on new managers and deals",
					"Fewer missed red flags through systematic review",
					"A defensible record for investment committees",
					"Reusable findings across funds and vintages",
				},
				FAQ: []FAQ{
					{
						Question: "Can it handle both operational and investment due diligence?",
						Answer:   "Yes. Templates cover ODD and IDD, and each can be tailored to your committee's checklist.",
					},
					{
						Question: "What formats do data rooms need to be in?",
						Answer:   "PDF, Office documents and spreadsheets are supported, including scanned documents via OCR.",
					},
					{
						Question: "Who reviews the flagged items?",
						Answer:   "Your team does. The system prioritises items for review and records every decision.",
					},
				},
			},
			{
				Key:   ServicePortfolio,
				Title: "Portfolio Analytics",
				Description: "Unified portfolio monitoring that consolidates positions, exposures and performance " +
					"across funds, SPVs and co-investments into one view.",
				Capabilities: []string{
					"Look-through exposure across fund structures",
					"Performance attribution and benchmark comparison",
					"Scenario analysis and stress testing",
					"Automated portfolio company KPI collection",
					"Investor-ready reporting packs",
				},
				Benefits: []string{
					"One source of truth for positions and exposures",
					"Earlier warning on concentration and liquidity risk",
					"Less manual effort preparing LP reports",
					"Faster answers to investment committee questions",
				},
				FAQ: []FAQ{
					{
						Question: "Which administrators and custodians do you integrate with?",
						Answer:   "We connect to the major fund administrators and prime brokers, and accept file drops for everything else.",
					},
					{
						Question: "Does it support private market assets?",
						Answer:   "Yes. Private holdings are tracked with valuation history and KPI submissions from portfolio companies.",
					},
					{
						Question: "How often is data refreshed?",
						Answer:   "Liquid positions refresh daily and private data updates as new submissions arrive.",
					},
				},
			},
			{
				Key:   ServiceMarketTrends,
				Title: "Market Intelligence",
				Description: "Monitoring of market trends, sentiment and alternative data that surfaces " +
					"signals relevant to your coverage universe before they become consensus.",
				Capabilities: []string{
					"News and sentiment tracking across thousands of sources",
					"Alternative data sourcing and evaluation",
					"Thematic trend dashboards",
					"Competitor and peer fund monitoring",
					"Custom alerts on sector developments",
				},
				Benefits: []string{
					"Spot emerging themes earlier",
					"Filter noise down to what matters for your book",
					"Evaluate alternative datasets before you buy them",
					"Keep the whole team on the same market picture",
				},
				FAQ: []FAQ{
					{
						Question: "Which markets and asset classes are covered?",
						Answer:   "Global equities, credit, commodities and private markets, with configurable source lists.",
					},
					{
						Question: "Can alerts be routed to our existing tools?",
						Answer:   "Alerts can be delivered by email, Slack, Teams or webhook.",
					},
					{
						Question: "Do you resell alternative data?",
						Answer:   "No. We help you evaluate and integrate vendors; contracts stay between you and the provider.",
					},
				},
			},
			{
				Key:   ServiceRegulatory,
				Title: "Regulatory Compliance",
				Description: "Compliance technology for registered advisers and fund managers covering filings, " +
					"surveillance and policy management under changing regulation.",
				Capabilities: []string{
					"Form PF and Form ADV preparation support",
					"Communications surveillance and archiving",
					"Personal trading and gifts pre-clearance",
					"Policy and procedure management with attestations",
					"Regulatory change tracking",
				},
				Benefits: []string{
					"Fewer manual steps in periodic filings",
					"Evidence ready for examinations",
					"Clear audit trail for every compliance decision",
					"Lower cost of keeping up with new rules",
				},
				FAQ: []FAQ{
					{
						Question: "Which regulators do you support?",
						Answer:   "SEC, FCA and CSSF requirements are supported out of the box, with others on request.",
					},
					{
						Question: "Does this replace our CCO?",
						Answer:   "No. It gives your compliance team better tooling; judgement stays with them.",
					},
					{
						Question: "Can you migrate our existing compliance records?",
						Answer:   "Yes. Historical attestations, logs and archives can be imported during onboarding.",
					},
				},
			},
		},
		About: About{
			CompanyInfo: "We are a technology advisory firm built by former investment professionals and engineers, " +
				"serving hedge funds, private equity, venture capital firms and family offices.",
			Differentiators: []string{
				"Team with front-office and engineering backgrounds",
				"Focused exclusively on alternative investments",
				"Deployments inside your own cloud environment",
				"Fixed-scope engagements with measurable outcomes",
			},
		},
		Demo: Demo{
			Process: "A 30-minute session with a solutions lead tailored to your strategy, " +
				"walking through the services most relevant to your team using sample data.",
			NextSteps: "Share your name, firm and areas of interest and we will send a calendar invite within one business day.",
		},
		Pricing: Pricing{
			Model:    "Annual subscription priced by modules and number of users, with implementation billed as a fixed fee.",
			Starting: "Engagements typically start at $50,000 per year for a single module.",
		},
	}
}
