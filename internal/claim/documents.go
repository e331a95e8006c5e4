package claim

import "github.com/liliang-cn/claimwizard/internal/domain"

// AddFiles appends one document per file, in file order. Names are not
// validated or deduplicated.
func AddFiles(docs []domain.Document, files []domain.FileRef) []domain.Document {
	out := make([]domain.Document, 0, len(docs)+len(files))
	out = append(out, docs...)
	for _, f := range files {
		out = append(out, domain.Document{Name: f.Name})
	}
	return out
}
