package handlers

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/amazoniatrade/marketplace/internal/logging"
	"github.com/amazoniatrade/marketplace/internal/mykafka"
)

// publish sends a domain event with a bounded timeout. Failures are logged
// and swallowed: events never fail the request that produced them.
func publish(c echo.Context, producer *mykafka.Producer, topic, key string, event map[string]interface{}) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := producer.PublishEvent(ctx, topic, key, event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka publish failed", "topic", topic, "error", err)
	}
}

func fail(c echo.Context, code int, msg string) error {
	return c.JSON(code, echo.Map{"ok": false, "message": msg})
}
