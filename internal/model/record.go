package model

import "time"

// PreviewLength bounds the extracted-text preview stored in a processing
// record.
const PreviewLength = 200

// ProcessingRecord describes how a single file was processed. It is created
// once per moved file, written at most once as a metadata sidecar, and never
// mutated afterwards.
type ProcessingRecord struct {
	ProcessedAt       time.Time `json:"processedAt"`
	OriginalPath      string    `json:"originalPath"`
	OriginalFilename  string    `json:"originalFilename"`
	Category          string    `json:"category"`
	TargetFolder      string    `json:"targetFolder"`
	SuggestedFilename string    `json:"suggestedFilename,omitempty"`
	FinalFilename     string    `json:"finalFilename"`
	TextPreview       string    `json:"textPreview"`
}

// Preview truncates extracted text to the bounded preview length.
func Preview(text string) string {
	runes := []rune(text)
	if len(runes) <= PreviewLength {
		return text
	}
	return string(runes[:PreviewLength])
}
