package middleware

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/treinofacil/trainsheet-api/internal/models"
	"github.com/treinofacil/trainsheet-api/internal/repository"
)

// Buffered channel for async logging
var logChannel chan models.RequestLog

// Initializes the request logger worker. Logs are batched and flushed either
// when the batch fills or every 5 seconds.
func InitRequestLogger(repo *repository.RequestLogRepository, bufferSize int) {
	logChannel = make(chan models.RequestLog, bufferSize)

	go func() {
		batch := make([]models.RequestLog, 0, 100)
		ticker := time.NewTicker(5 * time.Second)
		defer ticker.Stop()

		for {
			select {
			case entry := <-logChannel:
				batch = append(batch, entry)

				if len(batch) >= 100 {
					insertBatch(repo, batch)
					batch = make([]models.RequestLog, 0, 100)
				}
			case <-ticker.C:
				if len(batch) > 0 {
					insertBatch(repo, batch)
					batch = make([]models.RequestLog, 0, 100)
				}
			}
		}
	}()
}

func insertBatch(repo *repository.RequestLogRepository, logs []models.RequestLog) {
	if err := repo.CreateBatch(context.Background(), logs); err != nil {
		log.Printf("failed to insert request logs: %v", err)
	}
}

// Logs all HTTP requests
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start)

		// Extract user ID if authenticated
		var userID *uuid.UUID
		if idStr := c.GetString("user_id"); idStr != "" {
			if id, err := uuid.Parse(idStr); err == nil {
				userID = &id
			}
		}

		logEntry := models.RequestLog{
			Timestamp:      start,
			UserID:         userID,
			Method:         c.Request.Method,
			Path:           c.Request.URL.Path,
			StatusCode:     c.Writer.Status(),
			ResponseTimeMs: int(duration.Milliseconds()),
			IPAddress:      c.ClientIP(),
			UserAgent:      c.Request.UserAgent(),
		}

		select {
		case logChannel <- logEntry:
			// Successfully queued
		default:
			// Channel full, skip logging to avoid blocking
			log.Println("request log channel full, skipping entry")
		}
	}
}
