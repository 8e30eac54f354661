package candidatures

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

type fakeLetters struct {
	letter     string
	err        error
	calls      int
	lastCVText string
}

func (f *fakeLetters) GenerateLetter(ctx context.Context, company, title, description, cvText string) (string, error) {
	f.calls++
	f.lastCVText = cvText
	if f.err != nil {
		return "", f.err
	}
	return f.letter, nil
}

type fakeCVTexts struct {
	text string
	err  error
	keys []string
}

func (f *fakeCVTexts) Text(ctx context.Context, key string) (string, error) {
	f.keys = append(f.keys, key)
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

type fakeMailer struct {
	err   error
	sent  []string
	calls int
}

func (f *fakeMailer) SendApplication(ctx context.Context, to, company, title, letter string) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, to)
	return nil
}

func newTestService() (*Service, *fakeLetters, *fakeMailer) {
	letters := &fakeLetters{letter: "Madame, Monsieur, ma lettre."}
	mail := &fakeMailer{}
	svc := &Service{
		Repo:    NewMemoryRepo(),
		Letters: letters,
		Mail:    mail,
		Now:     func() time.Time { return time.Date(2025, time.March, 1, 9, 0, 0, 0, time.UTC) },
	}
	return svc, letters, mail
}

func mustCreate(t *testing.T, svc *Service, url string) Candidature {
	t.Helper()
	c, err := svc.Create(context.Background(), CreateInput{
		Company: "Acme",
		Title:   "Développeur Go",
		URL:     url,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	return c
}

func TestCreateStartsIdentified(t *testing.T) {
	svc, _, _ := newTestService()
	c := mustCreate(t, svc, "https://jobs.example/1")

	if c.Status != StatusIdentified {
		t.Fatalf("expected identified, got %s", c.Status)
	}
	if c.Date != "2025-03-01" {
		t.Fatalf("expected date 2025-03-01, got %s", c.Date)
	}
	if c.ID == "" {
		t.Fatal("expected generated id")
	}
}

func TestCreateValidation(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Create(context.Background(), CreateInput{Title: "Dev", URL: "https://x"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("missing company: expected ErrInvalidInput, got %v", err)
	}
	_, err = svc.Create(context.Background(), CreateInput{Company: "Acme", Title: "Dev"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("missing url: expected ErrInvalidInput, got %v", err)
	}
}

func TestCreateDuplicateURL(t *testing.T) {
	svc, _, _ := newTestService()
	mustCreate(t, svc, "https://jobs.example/1")

	_, err := svc.Create(context.Background(), CreateInput{
		Company: "Autre",
		Title:   "Autre poste",
		URL:     "https://jobs.example/1",
	})
	if !errors.Is(err, ErrDuplicateURL) {
		t.Fatalf("expected ErrDuplicateURL, got %v", err)
	}
}

func TestListStats(t *testing.T) {
	svc, _, _ := newTestService()
	mustCreate(t, svc, "https://jobs.example/1")
	second := mustCreate(t, svc, "https://jobs.example/2")

	applied := string(StatusApplied)
	if _, err := svc.Update(context.Background(), second.ID, UpdateInput{Status: &applied}); err != nil {
		t.Fatalf("update: %v", err)
	}

	result, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if result.Total != 2 {
		t.Fatalf("expected total 2, got %d", result.Total)
	}
	if result.Stats[StatusIdentified] != 1 || result.Stats[StatusApplied] != 1 {
		t.Fatalf("unexpected stats: %v", result.Stats)
	}
}

func TestUpdateRejectsUnknownStatus(t *testing.T) {
	svc, _, _ := newTestService()
	c := mustCreate(t, svc, "https://jobs.example/1")

	bogus := "bogus"
	_, err := svc.Update(context.Background(), c.ID, UpdateInput{Status: &bogus})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestUpdateAllowsStatusJump(t *testing.T) {
	svc, _, _ := newTestService()
	c := mustCreate(t, svc, "https://jobs.example/1")

	// identified -> interview skips the canonical flow but must persist.
	interview := string(StatusInterview)
	updated, err := svc.Update(context.Background(), c.ID, UpdateInput{Status: &interview})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Status != StatusInterview {
		t.Fatalf("expected interview, got %s", updated.Status)
	}
}

func TestGenerateLetterAdvancesStatus(t *testing.T) {
	svc, letters, _ := newTestService()
	c := mustCreate(t, svc, "https://jobs.example/1")

	updated, err := svc.GenerateLetter(context.Background(), c.ID)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if letters.calls != 1 {
		t.Fatalf("expected 1 LLM call, got %d", letters.calls)
	}
	if updated.Status != StatusLetterGenerated {
		t.Fatalf("expected letter_generated, got %s", updated.Status)
	}
	if updated.CoverLetter == nil || *updated.CoverLetter == "" {
		t.Fatal("expected stored letter")
	}
}

func TestGenerateLetterIncludesCVText(t *testing.T) {
	svc, letters, _ := newTestService()
	cvTexts := &fakeCVTexts{text: "Expérience chez Globex."}
	svc.CVTexts = cvTexts
	c := mustCreate(t, svc, "https://jobs.example/1")

	cvKey := "abc123_cv.pdf"
	if _, err := svc.Update(context.Background(), c.ID, UpdateInput{CV: &cvKey}); err != nil {
		t.Fatalf("attach cv: %v", err)
	}

	if _, err := svc.GenerateLetter(context.Background(), c.ID); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(cvTexts.keys) != 1 || cvTexts.keys[0] != cvKey {
		t.Fatalf("expected lookup for %q, got %v", cvKey, cvTexts.keys)
	}
	if letters.lastCVText != "Expérience chez Globex." {
		t.Fatalf("cv text must reach the generator, got %q", letters.lastCVText)
	}
}

func TestGenerateLetterWithoutCVSkipsLookup(t *testing.T) {
	svc, letters, _ := newTestService()
	cvTexts := &fakeCVTexts{text: "ignored"}
	svc.CVTexts = cvTexts
	c := mustCreate(t, svc, "https://jobs.example/1")

	if _, err := svc.GenerateLetter(context.Background(), c.ID); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(cvTexts.keys) != 0 {
		t.Fatalf("no lookup expected without an attached cv, got %v", cvTexts.keys)
	}
	if letters.lastCVText != "" {
		t.Fatalf("expected empty cv text, got %q", letters.lastCVText)
	}
}

func TestGenerateLetterCVLookupFailureDegrades(t *testing.T) {
	svc, letters, _ := newTestService()
	svc.CVTexts = &fakeCVTexts{err: errors.New("file gone")}
	c := mustCreate(t, svc, "https://jobs.example/1")

	cvKey := "abc123_cv.pdf"
	if _, err := svc.Update(context.Background(), c.ID, UpdateInput{CV: &cvKey}); err != nil {
		t.Fatalf("attach cv: %v", err)
	}

	updated, err := svc.GenerateLetter(context.Background(), c.ID)
	if err != nil {
		t.Fatalf("generation must survive a cv lookup failure: %v", err)
	}
	if updated.Status != StatusLetterGenerated {
		t.Fatalf("expected letter_generated, got %s", updated.Status)
	}
	if letters.lastCVText != "" {
		t.Fatalf("expected empty cv text on lookup failure, got %q", letters.lastCVText)
	}
}

func TestGenerateLetterFailureLeavesStatus(t *testing.T) {
	svc, letters, _ := newTestService()
	letters.err = errors.New("provider down")
	c := mustCreate(t, svc, "https://jobs.example/1")

	if _, err := svc.GenerateLetter(context.Background(), c.ID); err == nil {
		t.Fatal("expected error")
	}

	stored, err := svc.Repo.GetByID(context.Background(), c.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.Status != StatusIdentified {
		t.Fatalf("status must not advance on failure, got %s", stored.Status)
	}
	if stored.CoverLetter != nil {
		t.Fatal("no letter must be stored on failure")
	}
}

func TestSendApplicationRequiresLetter(t *testing.T) {
	svc, _, mail := newTestService()
	c := mustCreate(t, svc, "https://jobs.example/1")

	_, err := svc.SendApplication(context.Background(), c.ID, "hr@acme.test")
	if !errors.Is(err, ErrLetterMissing) {
		t.Fatalf("expected ErrLetterMissing, got %v", err)
	}
	if mail.calls != 0 {
		t.Fatal("mailer must not be called without a letter")
	}
}

func TestSendApplicationAdvancesStatus(t *testing.T) {
	svc, _, mail := newTestService()
	c := mustCreate(t, svc, "https://jobs.example/1")
	if _, err := svc.GenerateLetter(context.Background(), c.ID); err != nil {
		t.Fatalf("generate: %v", err)
	}

	updated, err := svc.SendApplication(context.Background(), c.ID, "  hr@acme.test  ")
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if updated.Status != StatusApplied {
		t.Fatalf("expected applied, got %s", updated.Status)
	}
	if updated.ContactEmail != "hr@acme.test" {
		t.Fatalf("expected trimmed recipient stored, got %q", updated.ContactEmail)
	}
	if len(mail.sent) != 1 || mail.sent[0] != "hr@acme.test" {
		t.Fatalf("unexpected recipients: %v", mail.sent)
	}
}

func TestSendApplicationMailFailureLeavesStatus(t *testing.T) {
	svc, _, mail := newTestService()
	c := mustCreate(t, svc, "https://jobs.example/1")
	if _, err := svc.GenerateLetter(context.Background(), c.ID); err != nil {
		t.Fatalf("generate: %v", err)
	}
	mail.err = errors.New("smtp down")

	if _, err := svc.SendApplication(context.Background(), c.ID, "hr@acme.test"); err == nil {
		t.Fatal("expected error")
	}

	stored, _ := svc.Repo.GetByID(context.Background(), c.ID)
	if stored.Status != StatusLetterGenerated {
		t.Fatalf("status must stay letter_generated, got %s", stored.Status)
	}
}

func TestScheduleFollowUpAppendsNote(t *testing.T) {
	svc, _, _ := newTestService()
	c := mustCreate(t, svc, "https://jobs.example/1")

	notes := "Contact via LinkedIn."
	if _, err := svc.Update(context.Background(), c.ID, UpdateInput{Notes: &notes}); err != nil {
		t.Fatalf("update: %v", err)
	}

	updated, err := svc.ScheduleFollowUp(context.Background(), c.ID, "initial")
	if err != nil {
		t.Fatalf("follow-up: %v", err)
	}
	if !strings.Contains(updated.Notes, "Contact via LinkedIn.") {
		t.Fatalf("prior notes lost: %q", updated.Notes)
	}
	if !strings.Contains(updated.Notes, "Relance prévue pour 2025-03-08") {
		t.Fatalf("missing follow-up note: %q", updated.Notes)
	}
	if updated.Status != StatusIdentified {
		t.Fatalf("follow-up must not change status, got %s", updated.Status)
	}
}

func TestScheduleFollowUpUnknownTemplate(t *testing.T) {
	svc, _, _ := newTestService()
	c := mustCreate(t, svc, "https://jobs.example/1")

	if _, err := svc.ScheduleFollowUp(context.Background(), c.ID, "weekly"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestDeleteUnknownID(t *testing.T) {
	svc, _, _ := newTestService()
	if err := svc.Delete(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
