package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const characters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// GenerateToken gera um identificador opaco mais longo, usado em handles de acesso
func GenerateToken(size int) (string, error) {
	return gonanoid.Generate(characters, size)
}
