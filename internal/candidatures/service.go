package candidatures

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"candidature-backend/internal/shared/metrics"
	"candidature-backend/internal/shared/telemetry"
)

// LetterGenerator produces a cover letter for an offer. cvText may be empty
// when the candidature has no CV attached.
type LetterGenerator interface {
	GenerateLetter(ctx context.Context, company, title, description, cvText string) (string, error)
}

// Mailer sends an application email.
type Mailer interface {
	SendApplication(ctx context.Context, to, company, title, letter string) error
}

// CVTextSource loads the extracted text of an uploaded CV by its storage key.
type CVTextSource interface {
	Text(ctx context.Context, key string) (string, error)
}

// Service drives the candidature lifecycle: which side effects accompany
// each status transition.
type Service struct {
	Repo    Repo
	Letters LetterGenerator
	Mail    Mailer
	CVTexts CVTextSource

	// Now is overridable in tests; defaults to time.Now.
	Now func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// ListResult bundles the dashboard read: all candidatures plus counts.
type ListResult struct {
	Candidatures []Candidature
	Stats        map[Status]int
	Total        int
}

// List returns all candidatures newest-first with per-status counts.
func (s *Service) List(ctx context.Context) (ListResult, error) {
	items, err := s.Repo.List(ctx)
	if err != nil {
		return ListResult{}, err
	}
	stats := make(map[Status]int)
	for _, c := range items {
		stats[c.Status]++
	}
	return ListResult{Candidatures: items, Stats: stats, Total: len(items)}, nil
}

// CreateInput carries the fields for a manual creation, typically a promotion
// from a scraped company or saved search.
type CreateInput struct {
	Company      string
	Title        string
	Platform     string
	Location     string
	URL          string
	Description  string
	ContactEmail string
	Notes        string
}

// Create inserts a candidature in identified status. Returns ErrDuplicateURL
// when the URL is already tracked.
func (s *Service) Create(ctx context.Context, in CreateInput) (Candidature, error) {
	if strings.TrimSpace(in.Company) == "" || strings.TrimSpace(in.Title) == "" {
		return Candidature{}, fmt.Errorf("%w: entreprise and poste are required", ErrInvalidInput)
	}
	if strings.TrimSpace(in.URL) == "" {
		return Candidature{}, fmt.Errorf("%w: url is required", ErrInvalidInput)
	}

	c := Candidature{
		ID:           uuid.NewString(),
		Company:      in.Company,
		Title:        in.Title,
		Platform:     ParsePlatform(in.Platform),
		Location:     in.Location,
		URL:          strings.TrimSpace(in.URL),
		Description:  TruncateDescription(in.Description),
		ContactEmail: in.ContactEmail,
		Status:       StatusIdentified,
		Notes:        in.Notes,
		Date:         s.now().Format("2006-01-02"),
	}
	if err := s.Repo.Create(ctx, c); err != nil {
		return Candidature{}, err
	}
	return c, nil
}

// UpdateInput holds the partial fields accepted by a manual edit. Nil
// pointers leave the field untouched.
type UpdateInput struct {
	Status       *string
	Notes        *string
	ContactEmail *string
	CV           *string
}

// Update applies a manual edit. Status jumps outside the canonical flow are
// allowed but logged.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Candidature, error) {
	c, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return Candidature{}, err
	}

	if in.Status != nil {
		next, err := ParseStatus(*in.Status)
		if err != nil {
			return Candidature{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		if next != c.Status && !IsCanonicalTransition(c.Status, next) {
			telemetry.Info("candidature.status_jump", map[string]any{
				"candidature_id": c.ID,
				"from":           string(c.Status),
				"to":             string(next),
			})
		}
		c.Status = next
	}
	if in.Notes != nil {
		c.Notes = *in.Notes
	}
	if in.ContactEmail != nil {
		c.ContactEmail = strings.TrimSpace(*in.ContactEmail)
	}
	if in.CV != nil {
		c.CV = in.CV
	}

	if err := s.Repo.Update(ctx, c); err != nil {
		return Candidature{}, err
	}
	return c, nil
}

// Delete removes a candidature permanently.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.Repo.Delete(ctx, id)
}

// GenerateLetter asks the LLM collaborator for a cover letter, stores it and
// advances the status to letter_generated. LLM failures propagate untouched.
// When a CV is attached its extracted text enriches the prompt; a failed CV
// lookup only degrades the prompt, never the generation.
func (s *Service) GenerateLetter(ctx context.Context, id string) (Candidature, error) {
	c, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return Candidature{}, err
	}

	letter, err := s.Letters.GenerateLetter(ctx, c.Company, c.Title, c.Description, s.cvText(ctx, c))
	if err != nil {
		return Candidature{}, err
	}

	c.CoverLetter = &letter
	c.Status = StatusLetterGenerated
	if err := s.Repo.Update(ctx, c); err != nil {
		return Candidature{}, err
	}
	metrics.IncLettersGenerated()
	return c, nil
}

func (s *Service) cvText(ctx context.Context, c Candidature) string {
	if s.CVTexts == nil || c.CV == nil || strings.TrimSpace(*c.CV) == "" {
		return ""
	}
	text, err := s.CVTexts.Text(ctx, strings.TrimSpace(*c.CV))
	if err != nil {
		telemetry.Error("candidature.cv_text_failed", map[string]any{
			"candidature_id": c.ID,
			"cv":             *c.CV,
			"error":          err.Error(),
		})
		return ""
	}
	return text
}

// SendApplication emails the stored cover letter to the recipient and
// advances the status to applied. The letter must exist first: sending
// before generation fails with ErrLetterMissing and produces no side effect.
func (s *Service) SendApplication(ctx context.Context, id, recipient string) (Candidature, error) {
	recipient = strings.TrimSpace(recipient)
	if recipient == "" {
		return Candidature{}, fmt.Errorf("%w: email_destinataire is required", ErrInvalidInput)
	}

	c, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return Candidature{}, err
	}
	if c.CoverLetter == nil || strings.TrimSpace(*c.CoverLetter) == "" {
		return Candidature{}, ErrLetterMissing
	}

	if err := s.Mail.SendApplication(ctx, recipient, c.Company, c.Title, *c.CoverLetter); err != nil {
		return Candidature{}, err
	}

	c.ContactEmail = recipient
	c.Status = StatusApplied
	if err := s.Repo.Update(ctx, c); err != nil {
		return Candidature{}, err
	}
	metrics.IncEmailsSent()
	return c, nil
}

// ScheduleFollowUp computes the follow-up date from the chosen template and
// appends a scheduling note. Status is not changed.
func (s *Service) ScheduleFollowUp(ctx context.Context, id, templateKey string) (Candidature, error) {
	tmpl, ok := FollowUpTemplateByKey(templateKey)
	if !ok {
		return Candidature{}, fmt.Errorf("%w: unknown follow-up template %q", ErrInvalidInput, templateKey)
	}

	c, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return Candidature{}, err
	}

	c.Notes = appendFollowUpNote(c.Notes, tmpl.DateFrom(s.now()))
	if err := s.Repo.Update(ctx, c); err != nil {
		return Candidature{}, err
	}
	return c, nil
}
