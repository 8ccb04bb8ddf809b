package scoring

import (
	"math"
	"sort"
	"strings"

	"github.com/Havertz69/rental-app/internal/models"
)

// DefaultTopK is used when FindBestMatches is asked for zero or fewer matches.
const DefaultTopK = 5

// Match is one candidate property for a tenant.
type Match struct {
	PropertyName string  `json:"property_name"`
	Location     string  `json:"location"`
	MatchScore   float64 `json:"match_score"`
	Price        float64 `json:"price"`
	PropertyID   int64   `json:"property_id"`
}

// MatchScore rates how well a property fits a tenant on a 0-1 scale: budget
// 0.4, property type 0.25, location 0.2 and the tenant's own reliability 0.15.
func MatchScore(t models.Tenant, p models.Property) float64 {
	score := 0.0

	if t.HasBudget() {
		switch {
		case t.BudgetMin <= p.Price && p.Price <= t.BudgetMax:
			score += 0.4
		case p.Price < t.BudgetMin:
			score += 0.2
		}
	}

	if t.PreferredPropertyType != "" && t.PreferredPropertyType == p.PropertyType {
		score += 0.25
	}

	if t.PreferredLocation != "" && p.Location != "" &&
		strings.Contains(strings.ToLower(p.Location), strings.ToLower(t.PreferredLocation)) {
		score += 0.2
	}

	score += t.PaymentReliabilityScore / 10.0 * 0.15

	return math.Min(score, 1.0)
}

// FindBestMatches scores every available property and returns the best topK,
// highest first. Equal scores keep their input order.
func FindBestMatches(t models.Tenant, properties []models.Property, topK int) []Match {
	if topK <= 0 {
		topK = DefaultTopK
	}

	matches := make([]Match, 0, len(properties))
	for _, p := range properties {
		if !p.Available {
			continue
		}
		matches = append(matches, Match{
			PropertyID:   p.ID,
			PropertyName: p.Name,
			MatchScore:   MatchScore(t, p),
			Price:        p.Price,
			Location:     p.Location,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].MatchScore > matches[j].MatchScore
	})

	if len(matches) > topK {
		matches = matches[:topK]
	}
	return matches
}
