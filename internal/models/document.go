package models

// Format identifies one of the supported CV document formats. It is decided
// once by the detector and never changes afterwards.
type Format string

const (
	FormatPDF   Format = "pdf"
	FormatDocx  Format = "docx"
	FormatImage Format = "image"
	FormatText  Format = "text"
)

// Entity categories produced by entity extraction.
const (
	EntityPerson = "PERSON"
	EntityOrg    = "ORG"
	EntityGPE    = "GPE"
	EntityDate   = "DATE"
	EntityDegree = "DEGREE"
)

// EntityCategories lists every category a ParsedDocument carries.
var EntityCategories = []string{EntityPerson, EntityOrg, EntityGPE, EntityDate, EntityDegree}

// FileInfo identifies the input file. It is populated even when extraction
// fails, so batch callers can always report which file a record belongs to.
type FileInfo struct {
	Filename     string `json:"filename"`
	Path         string `json:"path"`
	SizeBytes    int64  `json:"sizeBytes"`
	MimeType     string `json:"mimeType"`
	LastModified string `json:"lastModified"`
}

// Link is a hyperlink annotation found on a PDF page.
type Link struct {
	URL         string    `json:"url"`
	Page        int       `json:"page"`
	Coordinates []float64 `json:"coordinates,omitempty"` // x1, y1, x2, y2
}

// Page holds the text and link annotations of a single PDF page.
type Page struct {
	Number int    `json:"pageNumber"`
	Text   string `json:"content"`
	Links  []Link `json:"links"`
}

// ContactInfo gathers the contact fields derived from the extracted text.
// Each slice is deduplicated and sorted; order carries no meaning.
type ContactInfo struct {
	Emails   []string `json:"emails"`
	Phones   []string `json:"phones"`
	LinkedIn []string `json:"linkedin"`
	GitHub   []string `json:"github"`
}

// ImageInfo records decode-time attributes of an image input.
type ImageInfo struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Format string `json:"format"`
	Mode   string `json:"mode"`
}

// ParsedDocument is the result of parsing one CV file. It is created fresh
// per parse call and not mutated after being returned.
//
// Every container field defaults to an empty (non-nil) value so consumers can
// iterate without nil checks, and so the JSON form never contains null.
type ParsedDocument struct {
	Format     Format            `json:"format"`
	RawText    string            `json:"rawText"`
	Pages      []Page            `json:"pages"`
	Paragraphs []string          `json:"paragraphs,omitempty"`
	Metadata   map[string]string `json:"metadata"`
	Hyperlinks []string          `json:"hyperlinks"`

	ContactInfo ContactInfo         `json:"contactInfo"`
	Entities    map[string][]string `json:"entities"`
	CVSections  map[string]string   `json:"cvSections"`

	ImageInfo *ImageInfo `json:"imageInfo,omitempty"`
	FileInfo  FileInfo   `json:"fileInfo"`
	Error     string     `json:"error,omitempty"`
}

// NewParsedDocument returns a document of the given format with all
// containers initialized.
func NewParsedDocument(format Format) *ParsedDocument {
	doc := &ParsedDocument{
		Format:     format,
		Pages:      []Page{},
		Metadata:   map[string]string{},
		Hyperlinks: []string{},
		ContactInfo: ContactInfo{
			Emails:   []string{},
			Phones:   []string{},
			LinkedIn: []string{},
			GitHub:   []string{},
		},
		Entities:   map[string][]string{},
		CVSections: map[string]string{},
	}
	for _, cat := range EntityCategories {
		doc.Entities[cat] = []string{}
	}
	return doc
}
