package utils

import "time"

// ISOMillis é o formato dos timestamps gravados (UTC, milissegundos)
const ISOMillis = "2006-01-02T15:04:05.000Z07:00"

// Timestamp formata t em UTC com milissegundos, como "2025-03-15T17:00:00.000Z"
func Timestamp(t time.Time) string {
	return t.UTC().Format(ISOMillis)
}
