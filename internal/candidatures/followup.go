package candidatures

import (
	"fmt"
	"strings"
	"time"
)

// FollowUpTemplate is one of the fixed follow-up schedules. The day offset
// from "today" determines the date written into the candidature's notes.
type FollowUpTemplate struct {
	Key     string
	Title   string
	Days    int
	Message string
}

var followUpTemplates = []FollowUpTemplate{
	{
		Key:   "initial",
		Title: "Relance 1",
		Days:  7,
		Message: "Bonjour,\n\nJe suis revenu vers vous concernant ma candidature pour le poste de {poste}. " +
			"Je reste très motivé par cette opportunité au sein de {entreprise}.\n\nCordialement",
	},
	{
		Key:   "second",
		Title: "Relance 2",
		Days:  21,
		Message: "Bonjour,\n\nJ'espère que vous avez bien reçu ma candidature pour {poste}. " +
			"Je suis toujours très intéressé par cette position et reste à votre disposition pour discuter davantage.\n\nCordialement",
	},
	{
		Key:   "final",
		Title: "Relance 3",
		Days:  35,
		Message: "Bonjour,\n\nComme suite à ma candidature pour le poste de {poste} chez {entreprise}, " +
			"je tenais à vous recontacter pour connaître l'avancement du processus de sélection.\n\nJe reste à votre écoute.\nCordialement",
	},
}

// FollowUpTemplates returns the fixed templates in schedule order.
func FollowUpTemplates() []FollowUpTemplate {
	out := make([]FollowUpTemplate, len(followUpTemplates))
	copy(out, followUpTemplates)
	return out
}

// FollowUpTemplateByKey resolves a template by its key.
func FollowUpTemplateByKey(key string) (FollowUpTemplate, bool) {
	for _, t := range followUpTemplates {
		if t.Key == key {
			return t, true
		}
	}
	return FollowUpTemplate{}, false
}

// Render substitutes the {poste} and {entreprise} placeholders.
func (t FollowUpTemplate) Render(title, company string) string {
	msg := strings.ReplaceAll(t.Message, "{poste}", title)
	return strings.ReplaceAll(msg, "{entreprise}", company)
}

// DateFrom computes the follow-up date from a reference day.
func (t FollowUpTemplate) DateFrom(now time.Time) string {
	return now.AddDate(0, 0, t.Days).Format("2006-01-02")
}

// appendFollowUpNote appends the scheduling note to existing notes with a
// blank-line separator, preserving prior content.
func appendFollowUpNote(notes, date string) string {
	note := fmt.Sprintf("Relance prévue pour %s", date)
	if strings.TrimSpace(notes) == "" {
		return note
	}
	return notes + "\n\n" + note
}
