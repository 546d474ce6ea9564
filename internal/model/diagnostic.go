package model

// ErrorCode identifies a validation rule.
type ErrorCode string

const (
	E1InvalidSceneHeading    ErrorCode = "E1"
	E2CharacterFormat        ErrorCode = "E2"
	E3DialogueFormat         ErrorCode = "E3"
	E4IncorrectParenthetical ErrorCode = "E4"
	E5NonStandardTransition  ErrorCode = "E5"
	E6InvalidBlockSequence   ErrorCode = "E6"
	E7MissingSeparation      ErrorCode = "E7"
	E8MissingSceneHeading    ErrorCode = "E8"
	E9ProductionNote         ErrorCode = "E9"
	E10CasualLanguage        ErrorCode = "E10"
	E11CharacterVariants     ErrorCode = "E11"
	E12RedundantContent      ErrorCode = "E12"
	E13OverloadedParen       ErrorCode = "E13"
)

// Diagnostic is a single validator finding. Confidence is set once at
// creation and never mutated; callers use it to decide auto-apply
// versus human review.
type Diagnostic struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`

	// Confidence in [0,1] that the suggested fix is safe to apply.
	Confidence float64 `json:"confidence"`

	// Elements holds ordered indices into the element sequence the
	// report was produced from.
	Elements []int `json:"elements"`

	// Line is the first affected source line; the report sort key.
	Line int `json:"line"`

	// SuggestedText is the proposed replacement, empty when the finding
	// is review-only.
	SuggestedText string `json:"suggested_text,omitempty"`
}

// ValidationReport is the ordered diagnostic output of one validation
// pass, sorted by (first affected source line, error code).
type ValidationReport struct {
	TotalElements int               `json:"total_elements"`
	TotalIssues   int               `json:"total_issues"`
	ByCode        map[ErrorCode]int `json:"by_code,omitempty"`
	Diagnostics   []Diagnostic      `json:"diagnostics"`
	Passed        bool              `json:"passed"`
}
