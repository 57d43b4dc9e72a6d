// internal/persona/strategy.go
package persona

// Funnel identifiers the selector can emit. The mapping from identifier
// to actual content lives in the funnel registry (pkg/registry).
const (
	FunnelStudent     = "magic_tool_student"
	FunnelParent      = "magic_tool_parent"
	FunnelEmployee    = "magic_tool_employee"
	FunnelPremium     = "premium_scaling"
	FunnelStarter     = "starter_basics"
	FunnelZeroCapital = "zero_capital_start"
	FunnelGeneric     = "magic_tool_generic"
)

// Strategy is the canned bundle attached to a combination rule.
type Strategy struct {
	Text              string     `json:"strategyText"`
	RecommendedFunnel string     `json:"recommendedFunnel"`
	ActionPlan        ActionPlan `json:"actionPlan"`
}

// strategyRule pairs a predicate over the raw answers with its bundle.
// Rules are evaluated in slice order and the first match wins, so the
// list must stay ordered most-specific-first. Precedence lives in this
// one ordered slice on purpose: an if/else chain would hide it.
type strategyRule struct {
	name     string
	match    func(AnswerSet) bool
	strategy Strategy
}

var strategyRules = []strategyRule{
	{
		name: "student-basic",
		match: func(a AnswerSet) bool {
			return a[QuestionProfile] == string(ProfileStudent) && a[QuestionGoal] == string(GoalBasic)
		},
		strategy: Strategy{
			Text:              "Der Studenten-Fahrplan: Mit 0€ Startkapital und 1-2 Stunden täglich zu den ersten 500€ im Monat.",
			RecommendedFunnel: FunnelStudent,
			ActionPlan: ActionPlan{
				NextSteps: []string{
					"Magic Tool einrichten und erstes Angebot wählen",
					"Täglich 60 Minuten Content nach Vorlage veröffentlichen",
					"Nach 14 Tagen die erste Kampagne auswerten und nachschärfen",
				},
				Timeline:        "30 Tage",
				ExpectedResults: "Erste Provisionen zwischen 300€ und 800€",
			},
		},
	},
	{
		name: "parent-no-time",
		match: func(a AnswerSet) bool {
			return a[QuestionProfile] == string(ProfileParent) && a[QuestionProblem] == string(ProblemNoTime)
		},
		strategy: Strategy{
			Text:              "Der Eltern-Fahrplan: Automatisierte Abläufe, die in den Abendstunden laufen und kein festes Zeitfenster brauchen.",
			RecommendedFunnel: FunnelParent,
			ActionPlan: ActionPlan{
				NextSteps: []string{
					"Magic Tool mit Automationsvorlage verbinden",
					"Wochenplan mit drei festen 30-Minuten-Blöcken anlegen",
					"E-Mail-Strecke aktivieren und erste Woche beobachten",
				},
				Timeline:        "45 Tage",
				ExpectedResults: "Planbares Nebeneinkommen von 500€ bis 1.200€",
			},
		},
	},
	{
		name: "employee-no-perspective",
		match: func(a AnswerSet) bool {
			return a[QuestionProfile] == string(ProfileEmployee) && a[QuestionProblem] == string(ProblemNoPerspective)
		},
		strategy: Strategy{
			Text:              "Der Ausstiegs-Fahrplan: Neben dem Job ein zweites Standbein aufbauen, bis das Nebeneinkommen das Gehalt ersetzt.",
			RecommendedFunnel: FunnelEmployee,
			ActionPlan: ActionPlan{
				NextSteps: []string{
					"Magic Tool einrichten und Nische festlegen",
					"Abendroutine mit 90 Minuten Umsetzung etablieren",
					"Monatsziel definieren und Fortschritt wöchentlich messen",
				},
				Timeline:        "60 Tage",
				ExpectedResults: "Stabiles Zusatzeinkommen ab 800€ monatlich",
			},
		},
	},
	{
		name: "goal-freedom",
		match: func(a AnswerSet) bool {
			return a[QuestionGoal] == string(GoalFreedom)
		},
		strategy: Strategy{
			Text:              "Der Skalierungs-Fahrplan: Mehrere Einnahmequellen systematisieren und mit Tools und Outsourcing auf 5.000€+ bringen.",
			RecommendedFunnel: FunnelPremium,
			ActionPlan: ActionPlan{
				NextSteps: []string{
					"Bestehende Einnahmequelle analysieren und Engpass finden",
					"Zweites Standbein mit dem Magic Tool aufsetzen",
					"Wiederkehrende Aufgaben automatisieren oder abgeben",
				},
				Timeline:        "90 Tage",
				ExpectedResults: "Skalierung in Richtung 5.000€+ monatlich",
			},
		},
	},
	{
		name: "goal-basic",
		match: func(a AnswerSet) bool {
			return a[QuestionGoal] == string(GoalBasic)
		},
		strategy: Strategy{
			Text:              "Der Einsteiger-Fahrplan: Ein bewährtes System, ein Angebot, ein Kanal - bis die ersten 500€ im Monat stehen.",
			RecommendedFunnel: FunnelStarter,
			ActionPlan: ActionPlan{
				NextSteps: []string{
					"Magic Tool einrichten und Startangebot übernehmen",
					"Einen einzigen Kanal wählen und täglich bespielen",
					"Ergebnisse nach 30 Tagen auswerten",
				},
				Timeline:        "30 Tage",
				ExpectedResults: "Erste Einnahmen zwischen 500€ und 1.500€",
			},
		},
	},
	{
		name: "blocker-no-capital",
		match: func(a AnswerSet) bool {
			return a[QuestionBlocker] == string(BlockerNoCapital)
		},
		strategy: Strategy{
			Text:              "Der 0€-Start-Fahrplan: Ausschließlich kostenlose Tools und organische Reichweite, kein Werbebudget nötig.",
			RecommendedFunnel: FunnelZeroCapital,
			ActionPlan: ActionPlan{
				NextSteps: []string{
					"Kostenloses Magic-Tool-Setup durchführen",
					"Organische Content-Vorlagen übernehmen und posten",
					"Erste Einnahmen reinvestieren statt auszahlen",
				},
				Timeline:        "45 Tage",
				ExpectedResults: "Erste Einnahmen ohne eigenes Startkapital",
			},
		},
	},
}

// catchAllStrategy is returned when no rule matches, including the
// entirely empty answer set.
var catchAllStrategy = Strategy{
	Text:              "Der 30-Tage-Fahrplan: Schritt für Schritt zum ersten Online-Einkommen mit dem Magic Tool.",
	RecommendedFunnel: FunnelGeneric,
	ActionPlan: ActionPlan{
		NextSteps: []string{
			"Magic Tool einrichten und Einführung ansehen",
			"Ersten Umsetzungsschritt aus dem Fahrplan abschließen",
			"Tägliche 30-Minuten-Routine festlegen",
		},
		Timeline:        "30 Tage",
		ExpectedResults: "Erste messbare Ergebnisse innerhalb eines Monats",
	},
}

// SelectStrategy scans the ordered rule list and returns the first
// matching bundle; later rules are not evaluated. The exhaustive
// catch-all guarantees a result for every input, so SelectStrategy,
// like Classify, never fails.
func SelectStrategy(answers AnswerSet) Strategy {
	for _, rule := range strategyRules {
		if rule.match(answers) {
			return rule.strategy
		}
	}
	return catchAllStrategy
}

// CatchAllFunnel exposes the fallback funnel id for callers that need
// to pre-resolve content (e.g. the funnel registry loader).
func CatchAllFunnel() string {
	return catchAllStrategy.RecommendedFunnel
}
