// Package mongostore предоставляет реализацию репозитория коротких ссылок для MongoDB.
//
// Документы хранятся в коллекции urls, уникальность shortUrl и alias обеспечивают индексы,
// созданные при подключении (см. db.NewMongoConnection).
package mongostore
