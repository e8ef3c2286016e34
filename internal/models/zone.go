package models

import "time"

// RiskLevel - вычисляемый уровень риска зоны. Никогда не задается извне,
// всегда производная от плотности, тренда и открытых инцидентов.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// riskOrder задает порядок уровней для повышения/понижения.
var riskOrder = map[RiskLevel]int{
	RiskLow:      0,
	RiskMedium:   1,
	RiskHigh:     2,
	RiskCritical: 3,
}

// Rank возвращает числовой ранг уровня риска (low=0 .. critical=3).
func (r RiskLevel) Rank() int {
	return riskOrder[r]
}

// Promote повышает уровень на одну ступень, не выше critical.
func (r RiskLevel) Promote() RiskLevel {
	switch r {
	case RiskLow:
		return RiskMedium
	case RiskMedium:
		return RiskHigh
	default:
		return RiskCritical
	}
}

// Demote понижает уровень на одну ступень, не ниже low.
func (r RiskLevel) Demote() RiskLevel {
	switch r {
	case RiskCritical:
		return RiskHigh
	case RiskHigh:
		return RiskMedium
	default:
		return RiskLow
	}
}

// Zone - зона площадки с независимо отслеживаемой плотностью толпы.
// Зоны создаются при загрузке конфигурации и живут весь сеанс работы.
type Zone struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Latitude      float64   `json:"latitude"`
	Longitude     float64   `json:"longitude"`
	Capacity      int       `json:"capacity"`
	Density       float64   `json:"density"`
	History       []float64 `json:"density_history"`
	Risk          RiskLevel `json:"risk"`
	OpenIncidents int       `json:"open_incidents"`
	UpdatedAt     time.Time `json:"updated_at"`
}
