// Package models содержит доменную модель пользователя системы.
// Структура используется в бизнес-логике и при работе с хранилищем.
package models

// User представляет учётную запись с доступом к управлению каталогом.
// JSON-ключи совпадают с форматом файла users.json.
type User struct {
	Username     string `json:"username"`     // Имя пользователя (уникальное, с учётом регистра)
	PasswordHash string `json:"passwordHash"` // bcrypt-хэш пароля
}
