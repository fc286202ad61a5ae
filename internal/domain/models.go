package domain

type Badge string

const (
	BadgeNone        Badge = ""
	BadgeOwned       Badge = "owned"
	BadgeNemesis     Badge = "nemesis"
	BadgeRival       Badge = "rival"
	BadgeEdge        Badge = "edge"
	BadgeSmallSample Badge = "small_sample"
)

type Manager struct {
	Key       string `json:"key"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

// Cell is the directional record of Manager against Opponent.
type Cell struct {
	Manager       string  `json:"manager"`
	Opponent      string  `json:"opponent"`
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	Ties          int     `json:"ties"`
	Games         int     `json:"games"`
	PointsFor     float64 `json:"pointsFor"`
	PointsAgainst float64 `json:"pointsAgainst"`
	Score         float64 `json:"score"`
	Badge         Badge   `json:"badge"`
	DisplayRecord string  `json:"displayRecord"`
	DisplayScore  string  `json:"displayScore"`
}

type Totals struct {
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	Ties          int     `json:"ties"`
	Games         int     `json:"games"`
	PointsFor     float64 `json:"pointsFor"`
	PointsAgainst float64 `json:"pointsAgainst"`
	Score         float64 `json:"score"`
}

type Matrix struct {
	// Order is the display order of manager keys.
	Order        []string                   `json:"order"`
	Cells        map[string]map[string]Cell `json:"cells"`
	RowTotals    map[string]Totals          `json:"rowTotals"`
	ColumnTotals map[string]Totals          `json:"columnTotals"`
	GrandTotals  Totals                     `json:"grandTotals"`
}

type WeekRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

type SeasonSummary struct {
	Season                   string  `json:"season"`
	LeagueID                 string  `json:"leagueId"`
	ManagerKey               string  `json:"managerKey"`
	Name                     string  `json:"name"`
	Rank                     int     `json:"rank"`
	Wins                     int     `json:"wins"`
	Losses                   int     `json:"losses"`
	Ties                     int     `json:"ties"`
	PointsFor                float64 `json:"pointsFor"`
	PlayoffQualified         bool    `json:"playoffQualified"`
	PlayoffQualifiedInferred bool    `json:"playoffQualifiedInferred"`
}

// WeeklyMatchup is one physical game. Winner is empty on a tie.
type WeeklyMatchup struct {
	Season   string  `json:"season"`
	Week     int     `json:"week"`
	ManagerA string  `json:"managerA"`
	ManagerB string  `json:"managerB"`
	PointsA  float64 `json:"pointsA"`
	PointsB  float64 `json:"pointsB"`
	Winner   string  `json:"winner,omitempty"`
	Margin   float64 `json:"margin"`
}

type SeasonMeta struct {
	Season               string     `json:"season"`
	LeagueID             string     `json:"leagueId"`
	PlayoffStartWeek     int        `json:"playoffStartWeek"`
	PlayoffStartInferred bool       `json:"playoffStartInferred"`
	WeekRange            *WeekRange `json:"weekRange,omitempty"`
	WeeksIncluded        []int      `json:"weeksIncluded"`
	WeeksFailed          []int      `json:"weeksFailed,omitempty"`
}

type Victim struct {
	Manager string  `json:"manager"`
	Name    string  `json:"name"`
	Record  string  `json:"record"`
	Games   int     `json:"games"`
	Score   float64 `json:"score"`
}

type Landlord struct {
	Manager      string   `json:"manager"`
	Name         string   `json:"name"`
	Victims      []Victim `json:"victims"`
	AverageScore float64  `json:"averageScore"`
	AverageGames float64  `json:"averageGames"`
}

type MostOwned struct {
	Manager       string   `json:"manager"`
	Name          string   `json:"name"`
	Owners        []Victim `json:"owners"`
	TotalGames    int      `json:"totalGames"`
	WeightedScore float64  `json:"weightedScore"`
}

type Rivalry struct {
	ManagerA string  `json:"managerA"`
	ManagerB string  `json:"managerB"`
	NameA    string  `json:"nameA"`
	NameB    string  `json:"nameB"`
	Record   string  `json:"record"`
	Games    int     `json:"games"`
	Score    float64 `json:"score"`
	Badge    Badge   `json:"badge"`
}

// Card is a storyline or hero fact produced by one rule.
type Card struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Body     string   `json:"body"`
	Managers []string `json:"managers"`
	Season   string   `json:"season,omitempty"`
	Week     int      `json:"week,omitempty"`
	Value    float64  `json:"value"`
}

type Superlatives struct {
	Manager   string `json:"manager"`
	BestCell  *Cell  `json:"best,omitempty"`
	WorstCell *Cell  `json:"worst,omitempty"`
}

type Report struct {
	ShareID         string          `json:"shareId"`
	LeagueID        string          `json:"leagueId"`
	LeagueName      string          `json:"leagueName"`
	Managers        []Manager       `json:"managers"`
	Matrix          Matrix          `json:"matrix"`
	Cells           []Cell          `json:"cells"`
	SeasonSummaries []SeasonSummary `json:"seasonSummaries"`
	WeeklyMatchups  []WeeklyMatchup `json:"weeklyMatchups"`
	Seasons         []SeasonMeta    `json:"seasons"`
	Landlord        *Landlord       `json:"landlord,omitempty"`
	MostOwned       *MostOwned      `json:"mostOwned,omitempty"`
	BiggestRivalry  *Rivalry        `json:"biggestRivalry,omitempty"`
	Storylines      []Card          `json:"storylines"`
	HeroCards       []Card          `json:"heroCards"`
	Superlatives    []Superlatives  `json:"superlatives"`
}
