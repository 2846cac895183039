package services

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// GeneratedCodeBytes количество случайных байт в сгенерированном коде (6 hex символов).
const GeneratedCodeBytes = 3

// CodeGenerator генерирует кандидата на короткий код.
type CodeGenerator func() (string, error)

// GenerateHexCode возвращает 6 символов в нижнем регистре из 3 случайных байт.
func GenerateHexCode() (string, error) {
	b := make([]byte, GeneratedCodeBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	return hex.EncodeToString(b), nil
}
