package risk

import "github.com/shenikar/crowd_safety_system/internal/models"

// Inputs - входные данные для вычисления уровня риска зоны.
// Функция Compute чистая: одинаковые входы всегда дают одинаковый результат.
type Inputs struct {
	// Density - текущая плотность толпы, 0-100%.
	Density float64
	// History - скользящее окно последних замеров плотности,
	// самый свежий замер последний. Текущий замер входит в окно.
	History []float64
	// OpenIncidents - число открытых инцидентов, отнесенных к зоне.
	OpenIncidents int
	// HasCritical - есть ли среди открытых инцидентов критический.
	HasCritical bool
	// TrendThreshold - порог отрицательного тренда для понижения уровня.
	TrendThreshold float64
}

// Baseline возвращает базовый уровень риска по плотности.
// Границы интервалов строгие, без округления:
// <50 low, [50,75) medium, [75,90) high, >=90 critical.
func Baseline(density float64) models.RiskLevel {
	switch {
	case density < 50:
		return models.RiskLow
	case density < 75:
		return models.RiskMedium
	case density < 90:
		return models.RiskHigh
	default:
		return models.RiskCritical
	}
}

// Trend возвращает тренд плотности: последний замер минус среднее
// предыдущих. Положительный тренд означает ухудшение. Для окна короче
// двух замеров тренд считается нулевым.
func Trend(history []float64) float64 {
	if len(history) < 2 {
		return 0
	}
	latest := history[len(history)-1]
	prior := history[:len(history)-1]
	var sum float64
	for _, v := range prior {
		sum += v
	}
	return latest - sum/float64(len(prior))
}

// Compute вычисляет уровень риска зоны. Порядок модификаторов:
//  1. базовый уровень по плотности;
//  2. два и более открытых инцидента повышают уровень на ступень
//     (не выше critical);
//  3. открытый критический инцидент поднимает уровень минимум до high;
//  4. при отсутствии инцидентов отрицательный тренд, по модулю не меньше
//     порога, понижает уровень на ступень (не ниже low).
func Compute(in Inputs) models.RiskLevel {
	level := Baseline(in.Density)

	if in.OpenIncidents >= 2 {
		level = level.Promote()
	}
	if in.HasCritical && level.Rank() < models.RiskHigh.Rank() {
		level = models.RiskHigh
	}
	if in.OpenIncidents == 0 && in.TrendThreshold > 0 {
		if t := Trend(in.History); t <= -in.TrendThreshold {
			level = level.Demote()
		}
	}
	return level
}
