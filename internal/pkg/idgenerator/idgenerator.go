// nolint: gochecknoglobals
package idgenerator

import gonanoid "github.com/matoous/go-nanoid/v2"

const (
	RequestIDLength = 15
	ProcessIDLength = 5
)

// alphabet used in ID generation.
var alphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

func RequestID() string {
	return gonanoid.MustGenerate(alphabet, RequestIDLength)
}

func Random(length int) string {
	return gonanoid.MustGenerate(alphabet, length)
}
