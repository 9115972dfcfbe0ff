package domain

// StopwordCaseMode controls how user supplied stopwords are matched against
// lowercased tokens.
type StopwordCaseMode string

const (
	// StopwordCaseFold lowercases extra stopwords before matching.
	StopwordCaseFold StopwordCaseMode = "fold"
	// StopwordCasePreserve uses extra stopwords verbatim, so an extra
	// stopword containing upper case letters never matches.
	StopwordCasePreserve StopwordCaseMode = "preserve"
)

// User facing messages for the soft conditions of the pipeline.
const (
	WarningNoText  = "No text found in the PDF."
	WarningNoWords = "No words left after removing stopwords."
)

// AnalysisRequest is one run of the pipeline. When Document is set its text
// is extracted, otherwise Text is analyzed directly.
type AnalysisRequest struct {
	Document       *UploadedFile
	Text           string
	ExtraStopwords string
	Params         RenderParameters
	IncludeImages  bool
}

// AnalysisResult carries everything the UI and API need to display.
type AnalysisResult struct {
	Filename    string           `json:"filename,omitempty"`
	Text        string           `json:"-"`
	Extraction  *ExtractedText   `json:"extraction,omitempty"`
	Error       string           `json:"error,omitempty"`
	Warning     string           `json:"warning,omitempty"`
	Stats       TokenStats       `json:"stats"`
	Frequencies *FrequencyMap    `json:"frequencies,omitempty"`
	TopWords    []WordCount      `json:"top_words"`
	Params      RenderParameters `json:"params"`
	Images      *Visualizations  `json:"images,omitempty"`
}

// Renderable reports whether visuals can be produced for this result.
func (r *AnalysisResult) Renderable() bool {
	return r != nil && r.Warning == "" && r.Frequencies.Len() > 0
}
