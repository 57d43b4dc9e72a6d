// internal/persona/tables.go
package persona

// Option vocabularies are typed so that adding a new quiz option is a
// compile-visible change instead of a silently-defaulting string lookup.
// Every *For function is total: unknown or missing values resolve to the
// named default variant for that table.

type ProfileOption string

const (
	ProfileStudent  ProfileOption = "student"
	ProfileParent   ProfileOption = "parent"
	ProfileEmployee ProfileOption = "employee"
)

type ProblemOption string

const (
	ProblemMoneyTight    ProblemOption = "money_tight"
	ProblemNoTime        ProblemOption = "no_time"
	ProblemNoPerspective ProblemOption = "no_perspective"
)

type GoalOption string

const (
	GoalBasic   GoalOption = "basic"
	GoalComfort GoalOption = "comfort"
	GoalFreedom GoalOption = "freedom"
)

type BlockerOption string

const (
	BlockerNoCapital   BlockerOption = "no_capital"
	BlockerNoKnowledge BlockerOption = "no_knowledge"
	BlockerFearRisk    BlockerOption = "fear_risk"
)

var (
	profileStudent = ProfileRecord{
		Name:        "Struggling Student Sarah",
		Description: "Studierende mit knapper Kasse, die neben Uni und Nebenjob ein planbares Online-Einkommen aufbauen will.",
		Characteristics: []string{
			"Wenig Startkapital, viel Lernbereitschaft",
			"Flexible, aber zerstückelte Zeitfenster",
			"Digital affin, schnelle Umsetzung",
		},
	}
	profileParent = ProfileRecord{
		Name:        "Overwhelmed Parent Paul",
		Description: "Elternteil im Spagat zwischen Familie und Job, das ein Nebeneinkommen ohne feste Arbeitszeiten sucht.",
		Characteristics: []string{
			"Maximal 1-2 Stunden pro Tag",
			"Braucht Systeme statt Dauerpräsenz",
			"Hohe Verbindlichkeit, klare Priorität Familie",
		},
	}
	profileEmployee = ProfileRecord{
		Name:        "Burnt-out Employee Ben",
		Description: "Angestellter, der dem Hamsterrad entkommen und sich schrittweise ein zweites Standbein aufbauen will.",
		Characteristics: []string{
			"Stabiles Einkommen, wenig Zeit am Tag",
			"Sucht langfristigen Ausstiegsplan",
			"Bereit, abends und am Wochenende zu investieren",
		},
	}

	problemMoneyTight = ProblemRecord{
		Name:     "Monatliche Geldknappheit",
		Impact:   "Am Monatsende bleibt nichts übrig, Rücklagen sind nicht möglich.",
		Solution: "Sofort umsetzbare Einnahmequellen ohne Vorabinvestition aufbauen.",
	}
	problemNoTime = ProblemRecord{
		Name:     "Chronischer Zeitmangel",
		Impact:   "Jede zusätzliche Verpflichtung kollidiert mit Job und Familie.",
		Solution: "Automatisierte Abläufe, die mit 30-60 Minuten pro Tag funktionieren.",
	}
	problemNoPerspective = ProblemRecord{
		Name:     "Fehlende Perspektive",
		Impact:   "Der aktuelle Weg führt erkennbar nicht zu mehr Freiheit oder Einkommen.",
		Solution: "Einen klaren Schritt-für-Schritt-Plan mit messbaren Meilensteinen verfolgen.",
	}

	goalBasic = GoalRecord{
		Range:    "500-1.500€ monatlich",
		Timeline: "Erste Ergebnisse in 30-60 Tagen",
		Strategy: "Ein einzelnes, bewährtes System konsequent umsetzen.",
	}
	goalComfort = GoalRecord{
		Range:    "1.500-5.000€ monatlich",
		Timeline: "Aufbauphase von 3-6 Monaten",
		Strategy: "Erste Einnahmequelle stabilisieren, dann gezielt skalieren.",
	}
	goalFreedom = GoalRecord{
		Range:    "5.000€+ monatlich",
		Timeline: "Skalierung über 6-12 Monate",
		Strategy: "Mehrere Einnahmequellen systematisieren und Team/Tools einsetzen.",
	}

	blockerNoCapital = BlockerRecord{
		Name:     "Kein Startkapital",
		Solution: "Mit kostenlosen Tools und organischer Reichweite starten.",
		Mindset:  "Zeit und Konsequenz ersetzen am Anfang jedes Budget.",
	}
	blockerNoKnowledge = BlockerRecord{
		Name:     "Fehlendes Know-how",
		Solution: "Einem vorgefertigten Fahrplan folgen statt alles selbst zu erfinden.",
		Mindset:  "Umsetzung schlägt Perfektion.",
	}
	blockerFearRisk = BlockerRecord{
		Name:     "Angst vor dem Risiko",
		Solution: "Klein starten, ohne Kündigung und ohne finanzielle Verpflichtungen.",
		Mindset:  "Das größte Risiko ist, nichts zu verändern.",
	}
)

// profileFor resolves the first-question answer. Default: student.
func profileFor(raw string) ProfileRecord {
	switch ProfileOption(raw) {
	case ProfileStudent:
		return profileStudent
	case ProfileParent:
		return profileParent
	case ProfileEmployee:
		return profileEmployee
	default:
		return profileStudent
	}
}

// problemFor resolves the second-question answer. Default: money_tight.
func problemFor(raw string) ProblemRecord {
	switch ProblemOption(raw) {
	case ProblemMoneyTight:
		return problemMoneyTight
	case ProblemNoTime:
		return problemNoTime
	case ProblemNoPerspective:
		return problemNoPerspective
	default:
		return problemMoneyTight
	}
}

// goalFor resolves the third-question answer. Default: basic.
func goalFor(raw string) GoalRecord {
	switch GoalOption(raw) {
	case GoalBasic:
		return goalBasic
	case GoalComfort:
		return goalComfort
	case GoalFreedom:
		return goalFreedom
	default:
		return goalBasic
	}
}

// blockerFor resolves the fourth-question answer. Default: no_capital.
func blockerFor(raw string) BlockerRecord {
	switch BlockerOption(raw) {
	case BlockerNoCapital:
		return blockerNoCapital
	case BlockerNoKnowledge:
		return blockerNoKnowledge
	case BlockerFearRisk:
		return blockerFearRisk
	default:
		return blockerNoCapital
	}
}
