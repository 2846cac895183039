package sslcert

import "errors"

// Ошибки.
var (
	ErrCertExpired     = errors.New("certificate is expired")                 // Срок действия сертификата истек.
	ErrCertNotValidYet = errors.New("certificate is not valid yet")           // Сертификат еще не вступил в силу.
	ErrBlankPEM        = errors.New("pem is blank")                           // Пустые данные в PEM-файле.
	ErrKeyMismatch     = errors.New("private key does not match certificate") // Ключ от другого сертификата.
)
