package i18n

// DefaultMessages returns built-in translations for all supported locales.
// These can be overridden by loading JSON files from a directory.
func DefaultMessages() map[Locale]map[string]string {
	return map[Locale]map[string]string{
		LocalePl: plMessages,
		LocaleEn: enMessages,
	}
}

var plMessages = map[string]string{
	// Common errors
	"error.not_found":    "Nie znaleziono zasobu",
	"error.unauthorized": "Wymagane uwierzytelnienie",
	"error.forbidden":    "Brak dostępu",
	"error.bad_request":  "Nieprawidłowe żądanie",
	"error.internal":     "Wystąpił błąd wewnętrzny serwera",
	"error.validation":   "Nieprawidłowe dane wejściowe",

	// Messages
	"message.not_found":          "Nie znaleziono wiadomości",
	"message.sent":               "Wiadomość została wysłana",
	"message.marked_read":        "Wiadomość została oznaczona jako przeczytana",
	"message.subject_required":   "Temat wiadomości jest wymagany",
	"message.body_required":      "Treść wiadomości jest wymagana",
	"message.recipient_required": "Odbiorca wiadomości jest wymagany",

	// Message priority labels (used by the CSV export)
	"priority.low":    "Niski",
	"priority.normal": "Normalny",
	"priority.high":   "Wysoki",

	// Message status labels
	"status.sent": "Wysłana",
	"status.read": "Przeczytana",

	// Announcements
	"announcement.not_found":    "Nie znaleziono komunikatu",
	"announcement.already_read": "Komunikat został już potwierdzony",

	// Users
	"user.not_found": "Nie znaleziono użytkownika",
}

var enMessages = map[string]string{
	// Common errors
	"error.not_found":    "Resource not found",
	"error.unauthorized": "Authentication required",
	"error.forbidden":    "Access denied",
	"error.bad_request":  "Bad request",
	"error.internal":     "Internal server error",
	"error.validation":   "Invalid input",

	// Messages
	"message.not_found":          "Message not found",
	"message.sent":               "Message has been sent",
	"message.marked_read":        "Message marked as read",
	"message.subject_required":   "Message subject is required",
	"message.body_required":      "Message body is required",
	"message.recipient_required": "Message recipient is required",

	// Message priority labels
	"priority.low":    "Low",
	"priority.normal": "Normal",
	"priority.high":   "High",

	// Message status labels
	"status.sent": "Sent",
	"status.read": "Read",

	// Announcements
	"announcement.not_found":    "Announcement not found",
	"announcement.already_read": "Announcement already confirmed",

	// Users
	"user.not_found": "User not found",
}
