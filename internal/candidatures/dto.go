package candidatures

// listResponse is the dashboard payload: records plus per-status counts.
type listResponse struct {
	Candidatures []Candidature  `json:"candidatures"`
	Stats        map[Status]int `json:"stats"`
	Total        int            `json:"total"`
}

type createRequest struct {
	Company      string `json:"entreprise"`
	Title        string `json:"poste"`
	Platform     string `json:"plateforme"`
	Location     string `json:"localisation"`
	URL          string `json:"url"`
	Description  string `json:"description"`
	ContactEmail string `json:"email"`
	Notes        string `json:"notes"`
}

type updateRequest struct {
	Status       *string `json:"statut"`
	Notes        *string `json:"notes"`
	ContactEmail *string `json:"email"`
	CV           *string `json:"cv"`
}

type generateLetterRequest struct {
	CandidatureID string `json:"candidature_id"`
}

type generateLetterResponse struct {
	Letter        string `json:"lettre"`
	CandidatureID string `json:"candidature_id"`
	Status        Status `json:"statut"`
}

type sendEmailRequest struct {
	CandidatureID string `json:"candidature_id"`
	Recipient     string `json:"email_destinataire"`
}

type sendEmailResponse struct {
	Message       string `json:"message"`
	CandidatureID string `json:"candidature_id"`
	Status        Status `json:"statut"`
}

type followUpRequest struct {
	Template string `json:"template"`
}
