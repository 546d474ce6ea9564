// Package validate runs the formatting rule catalogue over a classified
// element sequence and produces a confidence-scored diagnostic report.
package validate

import (
	"sort"

	"go.uber.org/zap"

	"github.com/slugline/slugline/internal/model"
)

// Rule is one validation check. Check must be pure: it inspects the
// sequence and returns diagnostics without modifying any element.
type Rule struct {
	Code  model.ErrorCode
	Name  string
	Check func(elements []model.ScreenplayElement) []model.Diagnostic
}

// Engine evaluates rules in fixed table order. Report ordering does not
// depend on rule order; diagnostics are sorted before they are returned.
type Engine struct {
	rules  []Rule
	logger *zap.Logger
}

// NewEngine creates an engine with the default rule catalogue. A nil
// logger disables engine logging.
func NewEngine(logger *zap.Logger) *Engine {
	return NewEngineWithRules(logger, DefaultRules())
}

// NewEngineWithRules creates an engine over a custom rule table.
func NewEngineWithRules(logger *zap.Logger, rules []Rule) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{rules: rules, logger: logger}
}

// Validate runs every rule over the sequence. A panic inside one rule
// is contained: that rule contributes nothing and the rest still run.
func (e *Engine) Validate(elements []model.ScreenplayElement) model.ValidationReport {
	var diagnostics []model.Diagnostic
	for _, rule := range e.rules {
		diagnostics = append(diagnostics, e.runRule(rule, elements)...)
	}

	sort.SliceStable(diagnostics, func(i, j int) bool {
		if diagnostics[i].Line != diagnostics[j].Line {
			return diagnostics[i].Line < diagnostics[j].Line
		}
		return codeRank(diagnostics[i].Code) < codeRank(diagnostics[j].Code)
	})

	byCode := make(map[model.ErrorCode]int)
	for _, d := range diagnostics {
		byCode[d.Code]++
	}

	return model.ValidationReport{
		TotalElements: len(elements),
		TotalIssues:   len(diagnostics),
		ByCode:        byCode,
		Diagnostics:   diagnostics,
		Passed:        len(diagnostics) == 0,
	}
}

func (e *Engine) runRule(rule Rule, elements []model.ScreenplayElement) (diags []model.Diagnostic) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("validation rule panicked",
				zap.String("rule", rule.Name),
				zap.String("code", string(rule.Code)),
				zap.Any("panic", r))
			diags = nil
		}
	}()
	return rule.Check(elements)
}

// codeOrder fixes the tie-break order for diagnostics on the same line.
var codeOrder = []model.ErrorCode{
	model.E1InvalidSceneHeading, model.E2CharacterFormat,
	model.E3DialogueFormat, model.E4IncorrectParenthetical,
	model.E5NonStandardTransition, model.E6InvalidBlockSequence,
	model.E7MissingSeparation, model.E8MissingSceneHeading,
	model.E9ProductionNote, model.E10CasualLanguage,
	model.E11CharacterVariants, model.E12RedundantContent,
	model.E13OverloadedParen,
}

func codeRank(code model.ErrorCode) int {
	for i, c := range codeOrder {
		if c == code {
			return i
		}
	}
	return len(codeOrder)
}
