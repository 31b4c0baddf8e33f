package entity

// GenerationSource chemin de génération ayant abouti.
type GenerationSource string

const (
	SourceRemote  GenerationSource = "distant"  // service de génération externe
	SourceOverlay GenerationSource = "gabarit"  // superposition sur fond de page
	SourceBasic   GenerationSource = "standard" // mise en page locale sans fond
)

// ErrorCategory catégorie d'échec, de la plus à la moins sévère.
type ErrorCategory string

const (
	CategoryValidation ErrorCategory = "validation_error"
	CategoryNetwork    ErrorCategory = "network_error"
	CategoryTimeout    ErrorCategory = "timeout_error"
	CategoryTemplate   ErrorCategory = "template_error"
	CategoryRender     ErrorCategory = "render_error"
)

// GenerationResult issue d'une demande de génération. Variantes étanches:
// succès et échec ne sont jamais peuplés en même temps.
type GenerationResult struct {
	Success bool             `json:"success"`
	Source  GenerationSource `json:"source,omitempty"`

	// Succès local: document binaire. Succès distant: URL + métadonnées.
	Document    []byte `json:"-"`
	MIME        string `json:"mime,omitempty"`
	DocumentURL string `json:"document_url,omitempty"`
	FileName    string `json:"file_name,omitempty"`
	FileSize    int64  `json:"file_size,omitempty"`
	PageCount   int    `json:"page_count,omitempty"`

	// Échec uniquement.
	ErrorCategory ErrorCategory `json:"error_category,omitempty"`
	ErrorMessage  string        `json:"error_message,omitempty"`
	Hints         []string      `json:"hints,omitempty"`
}

// LocalSuccess résultat de succès pour un rendu local.
func LocalSuccess(source GenerationSource, doc []byte, fileName string, pages int) *GenerationResult {
	return &GenerationResult{
		Success:   true,
		Source:    source,
		Document:  doc,
		MIME:      "application/pdf",
		FileName:  fileName,
		FileSize:  int64(len(doc)),
		PageCount: pages,
	}
}

// RemoteSuccess résultat de succès pour une génération distante (le document
// reste chez le service, référencé par URL).
func RemoteSuccess(url, fileName string, size int64, pages int) *GenerationResult {
	return &GenerationResult{
		Success:     true,
		Source:      SourceRemote,
		MIME:        "application/pdf",
		DocumentURL: url,
		FileName:    fileName,
		FileSize:    size,
		PageCount:   pages,
	}
}

// Failure résultat d'échec avec catégorie et indications de dépannage éventuelles.
func Failure(cat ErrorCategory, msg string, hints ...string) *GenerationResult {
	return &GenerationResult{
		Success:       false,
		ErrorCategory: cat,
		ErrorMessage:  msg,
		Hints:         hints,
	}
}
