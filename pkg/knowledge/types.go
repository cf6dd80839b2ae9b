package knowledge

type ResultType string

const (
	ResultTypeService ResultType = "service"
	ResultTypeGeneral ResultType = "general"
)

type GeneralKind string

const (
	KindAbout   GeneralKind = "about"
	KindDemo    GeneralKind = "demo"
	KindPricing GeneralKind = "pricing"
)

// DefaultLimit is the number of results returned when a search does not
// ask for a specific cap.
const DefaultLimit = 5

type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type ServiceRecord struct {
	Key          string   `json:"key"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Capabilities []string `json:"capabilities"`
	Benefits     []string `json:"benefits"`
	FAQ          []FAQ    `json:"faq"`
}

// GeneralInfo is implemented only by About, Demo and Pricing. Callers
// type-switch on the concrete value to reach the fields of each kind.
type GeneralInfo interface {
	Kind() GeneralKind
	Title() string
	sealed()
}

type About struct {
	CompanyInfo     string   `json:"company_info"`
	Differentiators []string `json:"differentiators"`
}

type Demo struct {
	Process   string `json:"process"`
	NextSteps string `json:"next_steps"`
}

type Pricing struct {
	Model    string `json:"model"`
	Starting string `json:"starting"`
}

func (About) Kind() GeneralKind   { return KindAbout }
func (Demo) Kind() GeneralKind    { return KindDemo }
func (Pricing) Kind() GeneralKind { return KindPricing }

func (About) Title() string   { return "About Us" }
func (Demo) Title() string    { return "Request a Demo" }
func (Pricing) Title() string { return "Pricing" }

func (About) sealed()   {}
func (Demo) sealed()    {}
func (Pricing) sealed() {}

type SearchResult struct {
	Type  ResultType `json:"type"`
	Key   string     `json:"key"`
	Title string     `json:"title"`
	Score int        `json:"score"`
}

// Weights are the points a single substring hit contributes to a
// record's relevance score.
type Weights struct {
	Title          int `json:"title"`
	Description    int `json:"description"`
	Capability     int `json:"capability"`
	Benefit        int `json:"benefit"`
	FAQQuestion    int `json:"faq_question"`
	FAQAnswer      int `json:"faq_answer"`
	Differentiator int `json:"differentiator"`
}

func DefaultWeights() Weights {
	return Weights{
		Title:          3,
		Description:    2,
		Capability:     1,
		Benefit:        1,
		FAQQuestion:    2,
		FAQAnswer:      1,
		Differentiator: 1,
	}
}

type Corpus struct {
	Services []ServiceRecord `json:"services"`
	About    About           `json:"about"`
	Demo     Demo            `json:"demo"`
	Pricing  Pricing         `json:"pricing"`
}

// Source is the read side of a knowledge corpus. Both Store and Reloader
// satisfy it.
type Source interface {
	GetServiceInfo(key string) (ServiceRecord, bool)
	GetGeneralInfo(key string) (GeneralInfo, bool)
	Services() []ServiceRecord
	SearchKnowledgeBase(query string, limit int) []SearchResult
}
