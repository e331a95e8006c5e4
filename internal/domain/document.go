package domain

// Document is an uploaded piece of evidence. Only the name is kept.
type Document struct {
	Name string `json:"name"`
}

// FileRef is a file handed over by the browser. Only Name is consumed.
type FileRef struct {
	Name string `json:"name" binding:"required"`
}

// AddDocumentsRequest is the JSON form of a document upload
type AddDocumentsRequest struct {
	Files []FileRef `json:"files" binding:"dive"`
}
