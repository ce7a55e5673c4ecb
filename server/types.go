package server

import (
	"slide_illustrator/constraints"
	"slide_illustrator/generator"
)

// requestCommon carries the fields shared by every generation endpoint.
// Correlation identifiers (presentation/slide) are echoed back unchanged and
// never interpreted.
type requestCommon struct {
	Topic            string                   `json:"topic"`
	TargetLabels     []string                 `json:"target_labels,omitempty"`
	NarrativeContext []generator.SlideContext `json:"narrative_context,omitempty"`
	Tone             string                   `json:"tone,omitempty"`
	Audience         string                   `json:"audience,omitempty"`
	Theme            string                   `json:"theme,omitempty"`
	Size             string                   `json:"size,omitempty"`
	MaxRetries       *int                     `json:"max_retries,omitempty"`
	PresentationID   string                   `json:"presentation_id,omitempty"`
	SlideID          string                   `json:"slide_id,omitempty"`
	SlideNumber      *int                     `json:"slide_number,omitempty"`
}

type pyramidRequest struct {
	NumLevels        int  `json:"num_levels"`
	GenerateOverview bool `json:"generate_overview,omitempty"`
	requestCommon
}

type funnelRequest struct {
	NumStages int `json:"num_stages"`
	requestCommon
}

type circlesRequest struct {
	NumCircles int `json:"num_circles"`
	requestCommon
}

type generateResponse struct {
	Success         bool               `json:"success"`
	Markup          string             `json:"markup"`
	Content         generator.Content  `json:"content"`
	CharacterCounts map[string]int     `json:"character_counts"`
	Validation      constraints.Result `json:"validation"`
	Metadata        generator.Metadata `json:"metadata"`
	PresentationID  string             `json:"presentation_id,omitempty"`
	SlideID         string             `json:"slide_id,omitempty"`
	SlideNumber     *int               `json:"slide_number,omitempty"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type fieldInfo struct {
	Field    string `json:"field"`
	MinChars int    `json:"min_chars"`
	MaxChars int    `json:"max_chars"`
	Note     string `json:"note,omitempty"`
}

type variantInfo struct {
	Variant string      `json:"variant"`
	Fields  []fieldInfo `json:"fields"`
}
