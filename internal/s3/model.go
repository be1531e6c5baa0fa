package s3

// DocumentType selects the bucket and key layout of an archived document
type DocumentType string

const (
	DocumentTypeBudget DocumentType = "budget"
)

// archived documents are always rendered PDFs
const pdfContentType = "application/pdf"

// Document is one rendered PDF to archive under Key
type Document struct {
	Key  string
	Data []byte
	Type DocumentType
}

func NewBudgetDocument(key string, data []byte) *Document {
	return &Document{
		Key:  key,
		Data: data,
		Type: DocumentTypeBudget,
	}
}
