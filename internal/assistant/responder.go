// Package assistant implements the scripted chat helper.
package assistant

import "strings"

// Greeting opens every chat log
const Greeting = "Hello! I'm here to help you with your VA disability claim. How can I assist you today?"

// Canned answers
const (
	EvidenceAnswer = "For VA disability claims, you'll typically need: medical records, service records, and a current diagnosis. You can upload these in the 'Upload Evidence' section."
	PTSDAnswer     = "For PTSD claims, you'll need: a current diagnosis, evidence of the in-service stressor, and medical evidence linking your PTSD to service. Would you like more specific information?"
	StatusAnswer   = "Once you submit your claim, you can track its status on VA.gov. Would you like me to show you how to do that?"
	FallbackAnswer = "I'm here to help guide you through the claims process. What specific information do you need about VA disability claims?"
)

// Rule maps keywords to an answer
type Rule struct {
	Keywords []string
	Answer   string
}

// Rules are scanned in order; the first match wins.
var Rules = []Rule{
	{Keywords: []string{"evidence", "documents"}, Answer: EvidenceAnswer},
	{Keywords: []string{"ptsd", "trauma"}, Answer: PTSDAnswer},
	{Keywords: []string{"status", "track"}, Answer: StatusAnswer},
}

// Respond returns the answer of the first rule with a keyword contained
// in text, ignoring case, or FallbackAnswer.
func Respond(text string) string {
	lower := strings.ToLower(text)
	for _, r := range Rules {
		for _, kw := range r.Keywords {
			if strings.Contains(lower, kw) {
				return r.Answer
			}
		}
	}
	return FallbackAnswer
}
