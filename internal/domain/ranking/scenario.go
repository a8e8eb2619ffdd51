package ranking

// Scenario 為模擬器使用的排名走勢型態。
type Scenario string

const (
	ScenarioBestSeller      Scenario = "best_seller"
	ScenarioRisingStar      Scenario = "rising_star"
	ScenarioStable          Scenario = "stable"
	ScenarioDeclining       Scenario = "declining"
	ScenarioCompetitorShock Scenario = "competitor_shock"
	ScenarioNewEntry        Scenario = "new_entry"
)

// FocusScenarios 為已知重點品牌商品的固定走勢。
var FocusScenarios = map[string]Scenario{
	"Lip Sleeping Mask":                ScenarioBestSeller,
	"Lip Sleeping Mask Vanilla":        ScenarioRisingStar,
	"Water Bank Blue Hyaluronic Cream": ScenarioStable,
	"Cream Skin Refiner":               ScenarioRisingStar,
	"Water Sleeping Mask":              ScenarioBestSeller,
	"Neo Cushion Matte":                ScenarioNewEntry,
	"Lip Glowy Balm":                   ScenarioStable,
	"Radian-C Cream":                   ScenarioNewEntry,
}

// CompetitorScenarios 為非重點品牌隨機抽選的走勢。
var CompetitorScenarios = []Scenario{ScenarioStable, ScenarioRisingStar, ScenarioDeclining}
