package risk

import "github.com/yigit/mentoraid/internal/app/models"

// PredictorInput is the enrollment form fed to the rule-based predictor.
// Binary fields use 1 for yes and 0 for no.
type PredictorInput struct {
	// Personal & academic
	MaritalStatus         float64 `json:"maritalStatus" example:"1"`
	ApplicationMode       float64 `json:"applicationMode" example:"1"`
	ApplicationOrder      float64 `json:"applicationOrder" example:"1"`
	Course                float64 `json:"course" example:"9500"`
	DaytimeAttendance     float64 `json:"daytimeAttendance" example:"1"`
	PreviousQualification float64 `json:"previousQualification" example:"1"`
	Nationality           float64 `json:"nationality" example:"1"`
	AgeAtEnrollment       float64 `json:"ageAtEnrollment" example:"18"`
	Gender                float64 `json:"gender" example:"1"`
	International         float64 `json:"international" example:"0"`

	// Family background
	MothersQualification float64 `json:"mothersQualification" example:"19"`
	FathersQualification float64 `json:"fathersQualification" example:"19"`
	MothersOccupation    float64 `json:"mothersOccupation" example:"90"`
	FathersOccupation    float64 `json:"fathersOccupation" example:"90"`

	// Financial & support
	Displaced         float64 `json:"displaced" example:"0"`
	SpecialNeeds      float64 `json:"specialNeeds" example:"0"`
	Debtor            float64 `json:"debtor" example:"0"`
	TuitionUpToDate   float64 `json:"tuitionUpToDate" example:"1"`
	ScholarshipHolder float64 `json:"scholarshipHolder" example:"0"`

	// Academic performance
	Curricular1stSemWithoutEval float64 `json:"curricular1stSemWithoutEval" example:"0"`
	Curricular2ndSemCredits     float64 `json:"curricular2ndSemCredits" example:"4"`
	Curricular2ndSemEnrolled    float64 `json:"curricular2ndSemEnrolled" example:"6"`
	Curricular2ndSemEvaluations float64 `json:"curricular2ndSemEvaluations" example:"6"`
	Curricular2ndSemGrade       float64 `json:"curricular2ndSemGrade" example:"14"`
	Curricular2ndSemWithoutEval float64 `json:"curricular2ndSemWithoutEval" example:"0"`

	// Economic indicators
	UnemploymentRate float64 `json:"unemploymentRate" example:"9.5"`
	InflationRate    float64 `json:"inflationRate" example:"1.8"`
	GDP              float64 `json:"gdp" example:"0.8"`
}

// Prediction is the predictor output
type Prediction struct {
	Risk           models.RiskLevel `json:"risk" example:"low"`
	Probability    int              `json:"probability" example:"2"`
	Recommendation string           `json:"recommendation"`
}

// Recommendations per predicted level
const (
	RecommendationHigh   = "URGENT: Immediate intervention required! Schedule counseling and academic support."
	RecommendationMedium = "CAUTION: Monitor closely and provide additional support. Schedule check-in meeting."
	RecommendationLow    = "GOOD: Student is on track. Continue regular monitoring and encouragement."
)

// DefaultPredictorInput returns the form defaults the dashboard starts from.
func DefaultPredictorInput() PredictorInput {
	return PredictorInput{
		MaritalStatus:               1,
		ApplicationMode:             1,
		ApplicationOrder:            1,
		Course:                      9500,
		DaytimeAttendance:           1,
		PreviousQualification:       1,
		Nationality:                 1,
		AgeAtEnrollment:             18,
		Gender:                      1,
		MothersQualification:        19,
		FathersQualification:        19,
		MothersOccupation:           90,
		FathersOccupation:           90,
		TuitionUpToDate:             1,
		Curricular2ndSemCredits:     4,
		Curricular2ndSemEnrolled:    6,
		Curricular2ndSemEvaluations: 6,
		Curricular2ndSemGrade:       14.0,
		UnemploymentRate:            9.5,
		InflationRate:               1.8,
		GDP:                         0.8,
	}
}

// Predict runs the rule-based predictor. Only a handful of the form fields
// carry weight; the rest are accepted for completeness.
func Predict(in PredictorInput) Prediction {
	score := 0.0

	switch grade := sanitize(in.Curricular2ndSemGrade); {
	case grade < 10:
		score += 35
	case grade < 12:
		score += 20
	case grade < 14:
		score += 10
	default:
		score += 2
	}

	if sanitize(in.TuitionUpToDate) == 0 {
		score += 25
	}

	switch evals := sanitize(in.Curricular2ndSemEvaluations); {
	case evals < 4:
		score += 15
	case evals < 6:
		score += 8
	}

	switch age := sanitize(in.AgeAtEnrollment); {
	case age > 23:
		score += 12
	case age > 21:
		score += 6
	}

	if sanitize(in.Debtor) == 1 {
		score += 10
	}
	if sanitize(in.ScholarshipHolder) == 1 {
		score -= 5
	}
	if sanitize(in.SpecialNeeds) == 1 {
		score += 5
	}
	if sanitize(in.Displaced) == 1 {
		score += 5
	}
	if sanitize(in.UnemploymentRate) > 12 {
		score += 5
	}
	if sanitize(in.GDP) < 0 {
		score += 5
	}

	probability := int(clampFloat(score, 0, 100))
	level := Classify(probability)

	return Prediction{
		Risk:           level,
		Probability:    probability,
		Recommendation: recommendationFor(level),
	}
}

func recommendationFor(level models.RiskLevel) string {
	switch level {
	case models.RiskHigh:
		return RecommendationHigh
	case models.RiskMedium:
		return RecommendationMedium
	default:
		return RecommendationLow
	}
}
