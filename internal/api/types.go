package api

import "github.com/spigell/cv-analyzer/internal/cvfile"

// AnalysisResult is the structured CV analysis returned by /api/analyze-cv-multiple.
type AnalysisResult struct {
	Podsumowanie          string   `json:"podsumowanie" yaml:"podsumowanie"`
	DopasowanieProcentowe float64  `json:"dopasowanie_procentowe" yaml:"dopasowanie_procentowe"`
	Dopasowanie           Match    `json:"dopasowanie" yaml:"dopasowanie"`
	Pytania               Question `json:"pytania" yaml:"pytania"`
	WarningMismatch       bool     `json:"warning_mismatch,omitempty" yaml:"warning_mismatch,omitempty"`
	Meta                  *Meta    `json:"meta,omitempty" yaml:"meta,omitempty"`
}

type Match struct {
	MocneStrony          []string `json:"mocne_strony" yaml:"mocne_strony"`
	ObszaryDoPoprawy     []string `json:"obszary_do_poprawy" yaml:"obszary_do_poprawy"`
	RyzykoNiedopasowania string   `json:"ryzyko_niedopasowania,omitempty" yaml:"ryzyko_niedopasowania,omitempty"`
}

type Question struct {
	KompetencjeMiekkie []string `json:"kompetencje_miekkie" yaml:"kompetencje_miekkie"`
	KompetencjeTwarde  []string `json:"kompetencje_twarde" yaml:"kompetencje_twarde"`
}

// Meta carries the server's industry and keyword diagnostics.
type Meta struct {
	KeywordOverlapPct float64 `json:"kw_overlap_pct,omitempty" yaml:"kw_overlap_pct,omitempty"`
	IndustryCV        string  `json:"industry_cv,omitempty" yaml:"industry_cv,omitempty"`
	IndustryJD        string  `json:"industry_jd,omitempty" yaml:"industry_jd,omitempty"`
	IndustryEffective string  `json:"industry_effective,omitempty" yaml:"industry_effective,omitempty"`
	RoleJD            string  `json:"role_jd,omitempty" yaml:"role_jd,omitempty"`
	ABVariant         string  `json:"ab_variant,omitempty" yaml:"ab_variant,omitempty"`
}

// AnalyzeRequest is the multipart payload of a CV analysis.
type AnalyzeRequest struct {
	CV          *cvfile.File
	URLs        []string
	Plan        string
	Description string
	Industry    string
}

// Diff is the server-computed comparison of several job descriptions.
type Diff struct {
	CommonRequirements []string            `json:"common_requirements" yaml:"common_requirements"`
	UniqueByJob        map[string][]string `json:"unique_by_job" yaml:"unique_by_job"`
	PerJob             []JobFit            `json:"per_job" yaml:"per_job"`
	RequirementsByJob  []JobRequirements   `json:"requirements_by_job" yaml:"requirements_by_job"`
	JDKeywords         []string            `json:"jd_keywords" yaml:"jd_keywords"`
}

// JobFit is one row of the per-job fit table. FitScore is nil when no CV was sent.
type JobFit struct {
	URL               string   `json:"url,omitempty" yaml:"url,omitempty"`
	Label             string   `json:"label,omitempty" yaml:"label,omitempty"`
	TotalRequirements int      `json:"total_requirements" yaml:"total_requirements"`
	FitScore          *float64 `json:"fit_score" yaml:"fit_score"`
	TopMissing        []string `json:"top_missing" yaml:"top_missing"`
}

// Name returns the URL, falling back to the label.
func (j JobFit) Name() string {
	if j.URL != "" {
		return j.URL
	}
	return j.Label
}

type JobRequirements struct {
	ID           string   `json:"id" yaml:"id"`
	Label        string   `json:"label" yaml:"label"`
	Requirements []string `json:"requirements" yaml:"requirements"`
}

// StarRequest is the STAR coach form.
type StarRequest struct {
	Situation string `json:"situation"`
	Task      string `json:"task"`
	Action    string `json:"action"`
	Result    string `json:"result"`
	Role      string `json:"role"`
	Language  string `json:"language"`
	Tone      string `json:"tone"`
	Plan      string `json:"plan"`
}

// StarResult is the coached answer with its grading.
type StarResult struct {
	Answer      string             `json:"answer" yaml:"answer" mapstructure:"answer"`
	Feedback    []string           `json:"feedback" yaml:"feedback" mapstructure:"feedback"`
	Tips        []string           `json:"tips" yaml:"tips" mapstructure:"tips"`
	RedFlags    []string           `json:"red_flags" yaml:"red_flags" mapstructure:"red_flags"`
	Grade       string             `json:"grade" yaml:"grade" mapstructure:"grade"`
	LengthChars int                `json:"length_chars" yaml:"length_chars" mapstructure:"length_chars"`
	Scores      map[string]float64 `json:"scores" yaml:"scores" mapstructure:"scores"`
}

// ContactMessage is the contact form. Website is a honeypot and must stay empty for humans.
type ContactMessage struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
	Website string `json:"website"`
}
