package candidate

type Tier string

const (
	TierExceptional  Tier = "exceptional"
	TierExcellent    Tier = "excellent"
	TierGood         Tier = "good"
	TierAverage      Tier = "average"
	TierBelowAverage Tier = "below_average"
	TierLow          Tier = "low"
)

var tiers = []struct {
	min            float64
	tier           Tier
	recommendation string
}{
	{85, TierExceptional, "Candidato excepcional - Match perfecto"},
	{75, TierExcellent, "Excelente candidato - Altamente recomendado"},
	{65, TierGood, "Buen candidato - Considerar para entrevista"},
	{50, TierAverage, "Candidato promedio - Evaluación adicional"},
	{35, TierBelowAverage, "Candidato por debajo del promedio"},
}

// Classify maps a composite score to its tier and recruiter-facing
// recommendation.
func Classify(score float64) (Tier, string) {
	for _, t := range tiers {
		if score >= t.min {
			return t.tier, t.recommendation
		}
	}
	return TierLow, "Match bajo - No recomendado"
}
