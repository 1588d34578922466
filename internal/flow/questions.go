// Package flow implements the claim intake conversation engine: the question
// flow graph, answer normalization, intent detection, and the state machine
// that drives a session from open chat through structured intake.
package flow

import (
	"fmt"
	"log/slog"

	"github.com/claimpilot/claimpilot/internal/models"
)

// QuestionCatalog holds the ordered, immutable question definitions for the
// intake flow. Catalog invariants (unique keys, ordered steps, forward-only
// conditional references) are validated once at construction.
type QuestionCatalog struct {
	questions []models.QuestionDefinition
	byKey     map[string]int // key -> index into questions
}

// NewQuestionCatalog validates the definitions and builds a catalog.
func NewQuestionCatalog(questions []models.QuestionDefinition) (*QuestionCatalog, error) {
	if len(questions) == 0 {
		return nil, fmt.Errorf("question catalog cannot be empty")
	}

	byKey := make(map[string]int, len(questions))
	for i, q := range questions {
		if err := q.Validate(); err != nil {
			return nil, fmt.Errorf("question at index %d: %w", i, err)
		}
		if _, exists := byKey[q.Key]; exists {
			return nil, fmt.Errorf("%w: %q", models.ErrDuplicateQuestionKey, q.Key)
		}
		if i > 0 && q.Step <= questions[i-1].Step {
			return nil, fmt.Errorf("question %q: step %d does not follow step %d", q.Key, q.Step, questions[i-1].Step)
		}
		byKey[q.Key] = i
	}

	// Conditional rules may only reference questions with a strictly smaller step.
	for i, q := range questions {
		if q.Conditional == nil {
			continue
		}
		depIdx, exists := byKey[q.Conditional.DependsOnKey]
		if !exists {
			return nil, fmt.Errorf("question %q: conditional references unknown key %q", q.Key, q.Conditional.DependsOnKey)
		}
		if depIdx >= i {
			return nil, fmt.Errorf("question %q: conditional must reference an earlier question, got %q", q.Key, q.Conditional.DependsOnKey)
		}
	}

	slog.Debug("QuestionCatalog created", "count", len(questions))
	return &QuestionCatalog{questions: questions, byKey: byKey}, nil
}

// Len returns the number of questions in the catalog.
func (c *QuestionCatalog) Len() int {
	return len(c.questions)
}

// ByKey returns the question with the given key.
func (c *QuestionCatalog) ByKey(key string) (*models.QuestionDefinition, bool) {
	idx, ok := c.byKey[key]
	if !ok {
		return nil, false
	}
	return &c.questions[idx], true
}

// ResolveCurrent returns the first applicable question at or after the
// session's step pointer, advancing the pointer past any question whose
// conditional rule is unmet. The advance is persisted in the session state so
// repeated calls are idempotent; the pointer never decreases. A nil result
// signals intake completion.
func (c *QuestionCatalog) ResolveCurrent(state *models.SessionState) *models.QuestionDefinition {
	for state.Step < len(c.questions) {
		q := &c.questions[state.Step]
		if q.Conditional != nil && state.Answers[q.Conditional.DependsOnKey] != q.Conditional.RequiredValue {
			slog.Debug("QuestionCatalog.ResolveCurrent: skipping conditional question",
				"key", q.Key, "dependsOn", q.Conditional.DependsOnKey, "required", q.Conditional.RequiredValue)
			state.Step++
			continue
		}
		return q
	}
	return nil
}

// DefaultQuestions returns the standard FNOL claim intake question list.
func DefaultQuestions() []models.QuestionDefinition {
	return []models.QuestionDefinition{
		{Step: 1, Key: "policyNumber", Prompt: "Please provide your policy number.", Kind: models.AnswerKindText},
		{Step: 2, Key: "contactNumber", Prompt: "What is your contact number?", Kind: models.AnswerKindText},
		{Step: 3, Key: "incidentDateTime", Prompt: "When did the incident occur? (Please provide date and time)", Kind: models.AnswerKindText},
		{Step: 4, Key: "incidentType", Prompt: "What type of incident occurred?", Kind: models.AnswerKindChoice,
			Choices: []string{"Collision", "Single Vehicle Accident", "Hit and Run", "Theft", "Vandalism", "Other"}},
		{Step: 5, Key: "location", Prompt: "Where did the incident occur? (Please provide the location)", Kind: models.AnswerKindText},
		{Step: 6, Key: "weather", Prompt: "What was the weather condition at the time of incident?", Kind: models.AnswerKindChoice,
			Choices: []string{"Clear", "Rainy", "Snowy", "Foggy", "Windy", "Other"}},
		{Step: 7, Key: "policeReport", Prompt: "Was a police report filed?", Kind: models.AnswerKindBoolean},
		{Step: 8, Key: "policeReportNumber", Prompt: "Please provide the police report number.", Kind: models.AnswerKindText,
			Conditional: &models.ConditionalRule{DependsOnKey: "policeReport", RequiredValue: "Yes"}},
		{Step: 9, Key: "vehicleDamage", Prompt: "Please describe the vehicle damage.", Kind: models.AnswerKindText},
		{Step: 10, Key: "driveable", Prompt: "Is the vehicle driveable?", Kind: models.AnswerKindBoolean},
		{Step: 11, Key: "towingRequired", Prompt: "Is towing required?", Kind: models.AnswerKindBoolean},
		{Step: 12, Key: "photosTaken", Prompt: "Were photos taken of the incident?", Kind: models.AnswerKindBoolean},
		{Step: 13, Key: "injuries", Prompt: "Were there any injuries?", Kind: models.AnswerKindChoice,
			Choices: []string{"No injuries", "Minor injuries", "Major injuries", "Fatalities"}},
		{Step: 14, Key: "driverName", Prompt: "What is the driver's name?", Kind: models.AnswerKindText},
		{Step: 15, Key: "driverRelation", Prompt: "What is the driver's relation to the policyholder?", Kind: models.AnswerKindChoice,
			Choices: []string{"Self", "Spouse", "Family Member", "Friend", "Other"}},
		{Step: 16, Key: "driverLicenseNumber", Prompt: "What is the driver's license number?", Kind: models.AnswerKindText},
		{Step: 17, Key: "drivingExperience", Prompt: "What is the driver's driving experience?", Kind: models.AnswerKindChoice,
			Choices: []string{"Less than 1 year", "1-3 years", "3-5 years", "5-10 years", "More than 10 years"}},
		{Step: 18, Key: "driverCondition", Prompt: "Was the driver in good physical and mental condition at the time of the incident?", Kind: models.AnswerKindBoolean},
		{Step: 19, Key: "consent", Prompt: "Do you consent to the processing of this claim and authorize us to investigate?", Kind: models.AnswerKindBoolean},
	}
}

// DefaultCatalog builds the catalog for the standard question list. It panics
// on validation failure since the default list is a compile-time constant.
func DefaultCatalog() *QuestionCatalog {
	catalog, err := NewQuestionCatalog(DefaultQuestions())
	if err != nil {
		panic(fmt.Sprintf("default question catalog is invalid: %v", err))
	}
	return catalog
}
