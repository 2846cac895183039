package controllers

// Тексты ошибок в ответах.
const (
	msgInvalidBody   = "Invalid request body"
	msgAliasInUse    = "Alias already in use"
	msgNotFound      = "URL not found"
	msgExpired       = "URL has expired"
	msgServerError   = "Server error"
	msgLinkDeleted   = "URL deleted successfully"
	msgNotFoundRoute = "Not found"
)
