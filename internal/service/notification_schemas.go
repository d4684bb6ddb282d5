package service

import (
	"encoding/json"
	"fmt"

	"github.com/qri-io/jsonschema"

	"github.com/indievia/indievia-backend/internal/models"
)

const uuidPattern = `^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`

var notificationSchemaSources = map[models.NotificationKind]string{
	models.NotificationNewReview: `{
		"type": "object",
		"required": ["review_id", "client_id", "client_name", "rating"],
		"properties": {
			"review_id": {"type": "string", "pattern": "` + uuidPattern + `"},
			"client_id": {"type": "string", "pattern": "` + uuidPattern + `"},
			"client_name": {"type": "string"},
			"rating": {"type": "integer", "minimum": 1, "maximum": 5}
		}
	}`,
	models.NotificationReviewReply: `{
		"type": "object",
		"required": ["review_id", "professional_id", "professional_name"],
		"properties": {
			"review_id": {"type": "string", "pattern": "` + uuidPattern + `"},
			"professional_id": {"type": "string", "pattern": "` + uuidPattern + `"},
			"professional_name": {"type": "string"},
			"professional_slug": {"type": "string"}
		}
	}`,
	models.NotificationReportOutcome: `{
		"type": "object",
		"required": ["report_id", "review_id", "status"],
		"properties": {
			"report_id": {"type": "string", "pattern": "` + uuidPattern + `"},
			"review_id": {"type": "string", "pattern": "` + uuidPattern + `"},
			"status": {"type": "string", "minLength": 1}
		}
	}`,
	models.NotificationBanOutcome: `{
		"type": "object",
		"required": ["review_id", "reason"],
		"properties": {
			"review_id": {"type": "string", "pattern": "` + uuidPattern + `"},
			"reason": {"type": "string", "minLength": 1}
		}
	}`,
}

// NotificationSchemas скомпилированные схемы metadata по типам уведомлений.
type NotificationSchemas map[models.NotificationKind]*jsonschema.Schema

// CompileNotificationSchemas компилирует схемы metadata.
func CompileNotificationSchemas() (NotificationSchemas, error) {
	schemas := make(NotificationSchemas, len(notificationSchemaSources))
	for kind, src := range notificationSchemaSources {
		rs := &jsonschema.Schema{}
		if err := json.Unmarshal([]byte(src), rs); err != nil {
			return nil, fmt.Errorf("compile notification schema %s: %w", kind, err)
		}
		schemas[kind] = rs
	}
	return schemas, nil
}
