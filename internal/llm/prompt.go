package llm

import (
	"fmt"
	"strings"
)

// Profile describes the candidate whose letters are generated. Values come
// from configuration so the prompt never hard-codes personal details.
type Profile struct {
	Name         string
	Education    string
	Skills       string
	Experience   string
	Objective    string
	Availability string
}

// BuildLetterPrompt assembles the French cover-letter prompt shared by every
// provider. Constraints mirror what the dashboard expects: three paragraphs,
// under 320 words, no closing formula. cvText is the extracted text of the
// candidate's uploaded CV; when empty the CV section is omitted.
func BuildLetterPrompt(profile Profile, company, title, description, cvText string) string {
	var b strings.Builder

	b.WriteString("Tu es un expert en rédaction de lettres de motivation. ")
	b.WriteString("Génère une lettre personnalisée basée sur ces informations:\n\n")

	b.WriteString("**Candidat:**\n")
	fmt.Fprintf(&b, "- Nom: %s\n", profile.Name)
	fmt.Fprintf(&b, "- Formation: %s\n", profile.Education)
	fmt.Fprintf(&b, "- Compétences: %s\n", profile.Skills)
	fmt.Fprintf(&b, "- Expérience: %s\n", profile.Experience)
	fmt.Fprintf(&b, "- Objectifs: %s\n", profile.Objective)
	fmt.Fprintf(&b, "- Disponibilité: %s\n", profile.Availability)
	if cv := strings.TrimSpace(cvText); cv != "" {
		fmt.Fprintf(&b, "\n**Extrait du CV:**\n%s\n", cv)
	}

	b.WriteString("\n**Offre:**\n")
	fmt.Fprintf(&b, "- Entreprise: %s\n", company)
	fmt.Fprintf(&b, "- Poste: %s\n", title)
	fmt.Fprintf(&b, "- Description: %s\n", description)

	b.WriteString(`
**Contraintes:**
- Langue: Français
- Format: 3 paragraphes
- Max 320 mots
- Ton: Professionnel, enthousiaste et déterminé
- Pas de formule de politesse finale (pas de "Cordialement")

**Instructions:**
La lettre DOIT expliquer pourquoi cette entreprise et ce poste correspondent au projet professionnel du candidat. Rends la lettre personnelle, ambitieuse et motivée, tout en gardant un ton professionnel.
`)

	return b.String()
}
