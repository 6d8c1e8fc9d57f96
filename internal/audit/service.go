package audit

import (
	"encoding/json"
	"fmt"
	stdlog "log"

	"procurement-backend/internal/auth"
	"procurement-backend/internal/database"
	"procurement-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type LogOptions struct {
	UserID      uint
	UserName    string
	EntityType  string
	EntityID    uint
	Action      models.AuditAction
	Description string
	Before      any
	After       any
}

func WriteLog(opts LogOptions) error {
	// jsonb columns need the JSON literal "null", not an empty string
	beforeStr := "null"
	afterStr := "null"

	if opts.Before != nil {
		if b, err := json.Marshal(opts.Before); err == nil {
			beforeStr = string(b)
		}
	}
	if opts.After != nil {
		if b, err := json.Marshal(opts.After); err == nil {
			afterStr = string(b)
		}
	}

	entry := models.AuditLog{
		UserID:      opts.UserID,
		UserName:    opts.UserName,
		EntityType:  opts.EntityType,
		EntityID:    opts.EntityID,
		Action:      opts.Action,
		Description: opts.Description,
		BeforeData:  beforeStr,
		AfterData:   afterStr,
	}

	if err := database.DB.Create(&entry).Error; err != nil {
		return fmt.Errorf("could not write audit log: %w", err)
	}
	return nil
}

// WriteFromCtx fills the actor fields from the authenticated request and
// writes the log. Audit failures are logged, never propagated; a mutation
// must not fail because its audit row could not be written.
func WriteFromCtx(c *fiber.Ctx, opts LogOptions) {
	if database.DB == nil {
		return
	}
	if userID, ok := c.Locals(auth.CtxUserIDKey).(uint); ok {
		opts.UserID = userID
		var user models.User
		if err := database.DB.Select("name").First(&user, userID).Error; err == nil {
			opts.UserName = user.Name
		}
	}
	if err := WriteLog(opts); err != nil {
		stdlog.Printf("audit: %v", err)
	}
}
