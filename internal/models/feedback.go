package models

// FeedbackRequest is the public feedback form submission, captcha-protected.
type FeedbackRequest struct {
	Name           string `json:"name" binding:"required,max=100"`
	Email          string `json:"email" binding:"required,email,max=255"`
	Message        string `json:"message" binding:"required,max=10000"`
	RecaptchaToken string `json:"recaptchaToken" binding:"required,min=20"`
}

// ConnectRequest asks for an introduction between the signed-in user and a
// profile owner; delivered through the connection email function.
type ConnectRequest struct {
	RecipientEmail string `json:"recipient_email" binding:"required,email,max=255"`
	Subject        string `json:"subject" binding:"required,max=200"`
	Message        string `json:"message" binding:"required,max=10000"`
}

// NewsletterRequest is the newsletter signup form submission.
type NewsletterRequest struct {
	Email string `json:"email" binding:"required,email,max=255"`
}

// EmailPayload is the JSON body accepted by the serverless email functions.
type EmailPayload struct {
	From    string   `json:"from"`
	Subject string   `json:"subject"`
	Message string   `json:"message"`
	To      []string `json:"to"`
}

// FeedbackResponse is the submission result returned to the client.
type FeedbackResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}
