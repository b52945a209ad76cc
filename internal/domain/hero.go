package domain

type Hero struct {
	Name    string   `json:"name"`              // e.g., "Tulen"
	Classes []string `json:"classes,omitempty"` // ["Mage", "Assassin"]
	Image   string   `json:"image,omitempty"`   // Full URL to hero portrait
}

type HeroClass string

const (
	ClassAssassin HeroClass = "Assassin"
	ClassMage     HeroClass = "Mage"
	ClassWarrior  HeroClass = "Warrior"
	ClassTank     HeroClass = "Tank"
	ClassMarksman HeroClass = "Marksman"
	ClassSupport  HeroClass = "Support"
)

// HeroStat is the aggregate view of one hero over the whole match log
type HeroStat struct {
	HeroName       string          `json:"heroName"`
	TotalGames     int             `json:"totalGames"`
	Wins           int             `json:"wins"`
	Losses         int             `json:"losses"`
	Bans           int             `json:"bans"`
	WinRate        float64         `json:"winRate"`
	PickRate       float64         `json:"pickRate"`
	BanRate        float64         `json:"banRate"`
	PositionCounts map[RoleTag]int `json:"positionCounts"`
}

// Recommendation is one ranked candidate returned by a recommendation query
type Recommendation struct {
	Name         string  `json:"name"`
	WinRate      float64 `json:"winRate"`
	MatchupScore float64 `json:"matchupScore,omitempty"`
	Games        int     `json:"games"`
	Image        string  `json:"image,omitempty"`
}
