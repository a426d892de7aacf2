package repository

import (
	"errors"
	"os"
)

var errJobAlreadyExists = errors.New("job already exists")

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
