package httpcors

import (
	"github.com/rs/cors"
)

func Settings() *cors.Cors {
	c := cors.New(cors.Options{
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowedOrigins:   []string{"*"}, // Установите конкретные домены, если нужно ограничить доступ
		AllowCredentials: true,
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		ExposedHeaders:   []string{"Authorization"},
	})
	return c
}
